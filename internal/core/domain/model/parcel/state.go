package parcel

import (
	"errors"
	"fmt"
	"time"
)

// ErrTransitionIsNotAllowed wraps every rejected lifecycle transition.
var ErrTransitionIsNotAllowed = errors.New("parcel state transition is not allowed")

// State is the lifecycle position of a stored parcel row.
//
//	(absent) ──> Pending ──> Active ──> Deleted
//	   │                     ▲  │ (move)   │
//	   └─────────────────────┘  └──┘       │
//	                         ▲             │
//	                         └─────────────┘ (re-entry)
//
// State is the only place that interprets the soft-removal marker; callers
// ask the state instead of checking deleted_at or the buffer themselves.
type State int

const (
	StateUnknown State = iota
	StatePending
	StateActive
	StateDeleted
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown: "Unknown",
		StatePending: "Pending",
		StateActive:  "Active",
		StateDeleted: "Deleted",
	}
}

// DeriveState computes the state of a stored row from its buffer and removal marker.
func DeriveState(buffer Buffer, deletedAt *time.Time) State {
	switch {
	case deletedAt != nil:
		return StateDeleted
	case buffer == BufferPending:
		return StatePending
	case buffer.IsOperational():
		return StateActive
	default:
		return StateUnknown
	}
}

func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Enter activates a pending placeholder or resurrects a deleted row.
func (s State) Enter() (State, error) {
	if s != StatePending && s != StateDeleted {
		return StateUnknown, fmt.Errorf("%w: %s cannot enter", ErrTransitionIsNotAllowed, s)
	}
	return StateActive, nil
}

// Exit soft-removes an active parcel.
func (s State) Exit() (State, error) {
	if s != StateActive {
		return StateUnknown, fmt.Errorf("%w: %s cannot exit", ErrTransitionIsNotAllowed, s)
	}
	return StateDeleted, nil
}

// Move keeps an active parcel active in another lane.
func (s State) Move() (State, error) {
	if s != StateActive {
		return StateUnknown, fmt.Errorf("%w: %s cannot move", ErrTransitionIsNotAllowed, s)
	}
	return StateActive, nil
}
