package queries

import (
	"context"

	"fifo/internal/core/domain/model/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListAuditEntriesQueryHandler struct {
	db *gorm.DB
}

func NewListAuditEntriesQueryHandler(db *gorm.DB) ListAuditEntriesQueryHandler {
	return ListAuditEntriesQueryHandler{db: db}
}

// Handle returns the matching entries, newest first.
func (h ListAuditEntriesQueryHandler) Handle(
	ctx context.Context,
	query ListAuditEntriesQuery,
) ([]AuditEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	tx := h.db.WithContext(ctx).
		Table("audit_logs").
		Select("id", "username", "user_display_name", "action", "details", "created_at")
	if query.username != "" {
		tx = tx.Where("username ILIKE ?", "%"+escapeLike(query.username)+"%")
	}
	if query.displayName != "" {
		tx = tx.Where("user_display_name ILIKE ?", "%"+escapeLike(query.displayName)+"%")
	}
	if query.action != audit.ActionUnknown {
		tx = tx.Where("action = ?", query.action.String())
	}
	if query.from != nil {
		tx = tx.Where("created_at >= ?", *query.from)
	}
	if query.to != nil {
		tx = tx.Where("created_at <= ?", *query.to)
	}

	rows, err := tx.Order("created_at DESC").Order("id").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]AuditEntryResponse, 0)
	for rows.Next() {
		var (
			entry AuditEntryResponse
			id    uuid.UUID
		)

		err = rows.Scan(
			&id,
			&entry.Username,
			&entry.UserDisplayName,
			&entry.Action,
			&entry.Details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entry.ID = id.String()

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
