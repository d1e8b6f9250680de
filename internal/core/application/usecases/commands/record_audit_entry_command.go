package commands

import (
	"errors"
	"strings"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

var ErrRecordAuditEntryCommandIsNotConstructed = errors.New(
	"RecordAuditEntryCommand must be created via NewRecordAuditEntryCommand constructor",
)

// RecordAuditEntryCommand appends a manual audit entry, for example a
// correction noted by a supervisor.
type RecordAuditEntryCommand struct { //nolint:recvcheck //using for validation
	action  audit.Action
	details string

	guard guard.ConstructorGuard
}

func NewRecordAuditEntryCommand(action, details string) (RecordAuditEntryCommand, error) {
	cmd := RecordAuditEntryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAction(action),
		cmd.setDetails(details),
	); err != nil {
		return RecordAuditEntryCommand{}, err
	}

	return cmd, nil
}

func (c RecordAuditEntryCommand) Validate() error {
	return c.guard.Validate(ErrRecordAuditEntryCommandIsNotConstructed)
}

func (c RecordAuditEntryCommand) Action() audit.Action {
	return c.action
}

func (c RecordAuditEntryCommand) Details() string {
	return c.details
}

func (c *RecordAuditEntryCommand) setAction(raw string) error {
	action, err := audit.ParseAction(raw)
	if err != nil {
		return err
	}
	c.action = action
	return nil
}

func (c *RecordAuditEntryCommand) setDetails(details string) error {
	details = strings.TrimSpace(details)
	if details == "" {
		return errs.NewValueIsRequiredError("details")
	}
	c.details = details
	return nil
}
