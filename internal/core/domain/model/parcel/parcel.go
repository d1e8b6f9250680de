package parcel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel was not created by
	// NewParcel, NewPendingParcel or RestoreParcel.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel, NewPendingParcel or RestoreParcel")
)

// Parcel is the aggregate root of the FIFO queue: one row per cage label.
//
// A stored row may be a pending placeholder, an active parcel waiting in a
// buffer lane, or a soft-removed parcel whose slot can be reused by a later
// entry with the same tracking ID. Mutation only happens through Enter, Exit
// and Move, which consult State for the allowed transitions.
type Parcel struct {
	id             kernel.UUID
	trackingID     kernel.TrackingID
	placement      Placement
	entryTimestamp *time.Time
	createdAt      time.Time
	updatedAt      time.Time
	deletedAt      *time.Time
	state          State
	guard          guard.ConstructorGuard
}

// NewParcel creates an active parcel for a tracking ID never seen before.
func NewParcel(id kernel.UUID, trackingID kernel.TrackingID, placement Placement, now time.Time) (*Parcel, error) {
	p := &Parcel{
		state: StateActive,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		p.setPlacement(placement),
	); err != nil {
		return nil, err
	}

	p.entryTimestamp = &now
	return p, nil
}

// NewPendingParcel creates a placeholder reserving a pre-printed label.
func NewPendingParcel(id kernel.UUID, trackingID kernel.TrackingID) (*Parcel, error) {
	p := &Parcel{
		placement: pendingPlacement(),
		state:     StatePending,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel rebuilds a parcel from persistence. The state is derived from
// the stored buffer and removal marker.
func RestoreParcel(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	buffer Buffer,
	lane string,
	profile Profile,
	entryTimestamp *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
	deletedAt *time.Time,
) (*Parcel, error) {
	p := &Parcel{
		entryTimestamp: entryTimestamp,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		deletedAt:      deletedAt,
		state:          DeriveState(buffer, deletedAt),
		guard:          guard.NewConstructorGuard(),
	}

	if strings.TrimSpace(lane) == "" {
		lane = UndefinedLane
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingID(trackingID),
		buffer.Validate(),
		profile.Validate(),
	); err != nil {
		return nil, err
	}

	p.placement = Placement{
		buffer:  buffer,
		lane:    lane,
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}
	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID {
	return p.id
}

func (p *Parcel) TrackingID() kernel.TrackingID {
	return p.trackingID
}

func (p *Parcel) Buffer() Buffer {
	return p.placement.Buffer()
}

func (p *Parcel) Lane() string {
	return p.placement.Lane()
}

func (p *Parcel) Profile() Profile {
	return p.placement.Profile()
}

// ProfileValue is the backlog weight derived from the profile.
func (p *Parcel) ProfileValue() int {
	return p.placement.Profile().Value()
}

// EntryTimestamp is nil for pending placeholders.
func (p *Parcel) EntryTimestamp() *time.Time {
	return p.entryTimestamp
}

func (p *Parcel) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Parcel) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Parcel) DeletedAt() *time.Time {
	return p.deletedAt
}

// SetPersistedTimestamps records the creation and update times assigned by the
// store. A zero createdAt keeps the current value.
func (p *Parcel) SetPersistedTimestamps(createdAt, updatedAt time.Time) {
	if !createdAt.IsZero() {
		p.createdAt = createdAt
	}
	p.updatedAt = updatedAt
}

func (p *Parcel) State() State {
	return p.state
}

func (p *Parcel) IsActive() bool {
	return p.state == StateActive
}

// Enter activates a pending placeholder or resurrects a removed parcel in the
// given placement. An already active parcel is reported as a duplicate.
func (p *Parcel) Enter(placement Placement, now time.Time) error {
	if err := placement.Validate(); err != nil {
		return err
	}

	next, err := p.state.Enter()
	if err != nil {
		return errs.NewObjectAlreadyExistsErrorWithCause("trackingID", p.trackingID.String(), err)
	}

	p.state = next
	p.placement = placement
	p.entryTimestamp = &now
	p.deletedAt = nil
	return nil
}

// Exit soft-removes an active parcel. Only active parcels can be addressed.
func (p *Parcel) Exit(now time.Time) error {
	next, err := p.state.Exit()
	if err != nil {
		return errs.NewObjectNotFoundErrorWithCause("parcel", p.id.String(), err)
	}

	p.state = next
	p.deletedAt = &now
	return nil
}

// Move relocates an active parcel to another lane of the same buffer.
// It reports false, without changing anything, when the lane does not change.
func (p *Parcel) Move(lane string) (bool, error) {
	lane = strings.TrimSpace(lane)
	if lane == "" {
		return false, errs.NewValueIsRequiredError("lane")
	}

	if _, err := p.state.Move(); err != nil {
		return false, errs.NewObjectNotFoundErrorWithCause("parcel", p.id.String(), err)
	}

	if lane == p.placement.lane {
		return false, nil
	}

	p.placement.lane = lane
	return true, nil
}

// Describe is a one-line summary used in logs.
func (p *Parcel) Describe() string {
	return fmt.Sprintf("%s [%s] %s/%s", p.trackingID, p.state, p.placement.buffer, p.placement.lane)
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingID(trackingID kernel.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	p.trackingID = trackingID
	return nil
}

func (p *Parcel) setPlacement(placement Placement) error {
	if err := placement.Validate(); err != nil {
		return err
	}
	p.placement = placement
	return nil
}
