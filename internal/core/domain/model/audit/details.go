package audit

import (
	"fmt"

	"fifo/internal/core/domain/model/parcel"
)

// EntryDetails summarizes a parcel entering a buffer lane. The profile is
// always named, N/A included.
func EntryDetails(p *parcel.Parcel) string {
	return fmt.Sprintf("Cage %s entered buffer %s on lane %s with profile %s",
		p.TrackingID(), p.Buffer(), p.Lane(), p.Profile())
}

// ExitDetails summarizes a parcel leaving the queue. It must be built from the
// parcel as it was before removal.
func ExitDetails(p *parcel.Parcel) string {
	return fmt.Sprintf("Cage %s was removed from buffer %s on lane %s with profile %s",
		p.TrackingID(), p.Buffer(), p.Lane(), p.Profile())
}

// MoveDetails summarizes a lane change.
func MoveDetails(p *parcel.Parcel, fromLane string) string {
	return fmt.Sprintf("Cage %s was moved from lane %s to %s", p.TrackingID(), fromLane, p.Lane())
}
