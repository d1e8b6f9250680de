// Package parcel models cages moving through the warehouse FIFO buffers.
//
// The package includes:
//   - Parcel: the aggregate root with its Enter / Exit / Move lifecycle
//   - State: the derived lifecycle position (Pending, Active, Deleted)
//   - Placement: buffer, lane and profile of an active parcel
//   - Buffer and Profile: the enumerations with their entry rules and weights
//
// Key business rules:
//   - at most one active parcel per tracking ID
//   - a removed parcel's row is reused when its label is scanned in again
//   - the profile value is derived from the profile (P=250, M=80, G=10, otherwise 0)
//   - SAL parcels never carry a size profile
package parcel
