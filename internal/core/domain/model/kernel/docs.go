// Package kernel holds the value objects shared by the parcel and audit models:
//   - UUID: internal identifier of stored rows
//   - TrackingID: the label scanned by operators (CG000001, or a custom printed label)
//   - Clock: the time source, bound to the warehouse timezone in production
package kernel
