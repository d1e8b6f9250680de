package audit

import (
	"errors"
	"strings"
	"time"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Entry is one append-only audit log record.
type Entry struct {
	id        kernel.UUID
	actor     Actor
	action    Action
	details   string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewEntry creates an audit record. A zero actor is replaced by SystemActor.
func NewEntry(id kernel.UUID, actor Actor, action Action, details string, now time.Time) (*Entry, error) {
	if actor.IsZero() {
		actor = SystemActor()
	}

	e := &Entry{
		actor:     actor,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setAction(action),
		e.setDetails(details),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEntry rebuilds a stored audit record.
func RestoreEntry(id kernel.UUID, actor Actor, action Action, details string, createdAt time.Time) (*Entry, error) {
	return NewEntry(id, actor, action, details, createdAt)
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) Actor() Actor {
	return e.actor
}

func (e *Entry) Action() Action {
	return e.action
}

func (e *Entry) Details() string {
	return e.details
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setAction(action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	e.action = action
	return nil
}

func (e *Entry) setDetails(details string) error {
	details = strings.TrimSpace(details)
	if details == "" {
		return errs.NewValueIsRequiredError("details")
	}
	e.details = details
	return nil
}
