package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

var ErrListAuditEntriesQueryIsNotConstructed = errors.New(
	"ListAuditEntriesQuery must be created via NewListAuditEntriesQuery constructor",
)

// AuditEntriesFilter narrows the audit log. Zero fields do not filter.
// Username and DisplayName match case-insensitive substrings; From and To are
// both inclusive.
type AuditEntriesFilter struct {
	Username    string
	DisplayName string
	Action      string
	From        *time.Time
	To          *time.Time
}

type ListAuditEntriesQuery struct {
	username    string
	displayName string
	action      audit.Action
	from        *time.Time
	to          *time.Time

	guard guard.ConstructorGuard
}

func NewListAuditEntriesQuery(filter AuditEntriesFilter) (ListAuditEntriesQuery, error) {
	q := ListAuditEntriesQuery{
		username:    strings.TrimSpace(filter.Username),
		displayName: strings.TrimSpace(filter.DisplayName),
		from:        filter.From,
		to:          filter.To,
		guard:       guard.NewConstructorGuard(),
	}

	if raw := strings.TrimSpace(filter.Action); raw != "" {
		action, err := audit.ParseAction(raw)
		if err != nil {
			return ListAuditEntriesQuery{}, err
		}
		q.action = action
	}

	if q.from != nil && q.to != nil && q.to.Before(*q.from) {
		return ListAuditEntriesQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"to", fmt.Errorf("%s is before %s", q.to.Format(time.RFC3339), q.from.Format(time.RFC3339)))
	}

	return q, nil
}

func (q ListAuditEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListAuditEntriesQueryIsNotConstructed)
}

type AuditEntryResponse struct {
	ID              string
	Username        string
	UserDisplayName string
	Action          string
	Details         string
	CreatedAt       time.Time
}
