// Package http exposes the FIFO use cases over a JSON API served by echo.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fifo/internal/core/application/usecases/commands"
	"fifo/internal/core/application/usecases/queries"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type (
	EnterParcelHandler interface {
		Handle(ctx context.Context, cmd commands.EnterParcelCommand) (*parcel.Parcel, error)
	}

	ExitParcelHandler interface {
		Handle(ctx context.Context, cmd commands.ExitParcelCommand) error
		HandleByTrackingID(ctx context.Context, cmd commands.ExitParcelByTrackingIDCommand) error
	}

	MoveParcelHandler interface {
		Handle(ctx context.Context, cmd commands.MoveParcelCommand) (*parcel.Parcel, error)
	}

	ConfirmTrackingIDsHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmTrackingIDsCommand) error
	}

	RecordAuditEntryHandler interface {
		Handle(ctx context.Context, cmd commands.RecordAuditEntryCommand) error
	}

	GenerateTrackingIDsHandler interface {
		Handle(ctx context.Context, query queries.GenerateTrackingIDsQuery) (queries.GenerateTrackingIDsQueryResponse, error)
	}

	LookupTrackingIDHandler interface {
		Handle(ctx context.Context, query queries.LookupTrackingIDQuery) (queries.LookupTrackingIDQueryResponse, error)
	}

	ListActiveParcelsHandler interface {
		Handle(ctx context.Context, query queries.ListActiveParcelsQuery) ([]queries.ActiveParcelResponse, error)
	}

	DashboardMetricsHandler interface {
		Handle(ctx context.Context, query queries.GetDashboardMetricsQuery) (queries.GetDashboardMetricsQueryResponse, error)
	}

	ListAuditEntriesHandler interface {
		Handle(ctx context.Context, query queries.ListAuditEntriesQuery) ([]queries.AuditEntryResponse, error)
	}
)

// Handlers groups the use cases served by Server.
type Handlers struct {
	EnterParcel         EnterParcelHandler
	ExitParcel          ExitParcelHandler
	MoveParcel          MoveParcelHandler
	ConfirmTrackingIDs  ConfirmTrackingIDsHandler
	RecordAuditEntry    RecordAuditEntryHandler
	GenerateTrackingIDs GenerateTrackingIDsHandler
	LookupTrackingID    LookupTrackingIDHandler
	ListActiveParcels   ListActiveParcelsHandler
	DashboardMetrics    DashboardMetricsHandler
	ListAuditEntries    ListAuditEntriesHandler

	// Clock backs GET /public/time. Nil means the system clock.
	Clock kernel.Clock
}

// Server translates HTTP requests into commands and queries.
// loc is used to interpret calendar dates in audit log filters.
type Server struct {
	handlers Handlers
	loc      *time.Location
	logger   *slog.Logger
}

func NewServer(handlers Handlers, loc *time.Location, logger *slog.Logger) *Server {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		handlers: handlers,
		loc:      loc,
		logger:   logger.With("component", "http"),
	}
}

// GenerateTrackingIDs handles POST /api/v1/tracking-ids/generate.
func (s *Server) GenerateTrackingIDs(ctx echo.Context) error {
	var req GenerateTrackingIDsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewGenerateTrackingIDsQuery(req.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.GenerateTrackingIDs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, GenerateTrackingIDsResponse{
		Requested:   resp.Requested,
		TrackingIDs: resp.TrackingIDs,
	})
}

// ConfirmTrackingIDs handles POST /api/v1/tracking-ids/confirm.
func (s *Server) ConfirmTrackingIDs(ctx echo.Context) error {
	var req ConfirmTrackingIDsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmTrackingIDsCommand(req.TrackingIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.ConfirmTrackingIDs.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// LookupTrackingID handles GET /api/v1/tracking-ids/:trackingId.
func (s *Server) LookupTrackingID(ctx echo.Context) error {
	query, err := queries.NewLookupTrackingIDQuery(ctx.Param("trackingId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	resp, err := s.handlers.LookupTrackingID.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TrackingIDResponse{TrackingID: resp.TrackingID})
}

// EnterParcel handles POST /api/v1/parcels/entry.
func (s *Server) EnterParcel(ctx echo.Context) error {
	var req EnterParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewEnterParcelCommand(req.TrackingID, req.Buffer, req.Lane, req.Profile)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.handlers.EnterParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, parcelFromDomain(p))
}

// ExitParcel handles DELETE /api/v1/parcels/:id.
func (s *Server) ExitParcel(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewExitParcelCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.ExitParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ExitParcelByTrackingID handles POST /api/v1/parcels/exit.
func (s *Server) ExitParcelByTrackingID(ctx echo.Context) error {
	var req ExitParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewExitParcelByTrackingIDCommand(req.TrackingID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.ExitParcel.HandleByTrackingID(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MoveParcel handles PUT /api/v1/parcels/:id/move.
func (s *Server) MoveParcel(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var req MoveParcelRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMoveParcelCommand(id, req.Lane)
	if err != nil {
		return s.fail(ctx, err)
	}

	p, err := s.handlers.MoveParcel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelFromDomain(p))
}

// ListActiveParcels handles GET /api/v1/parcels.
func (s *Server) ListActiveParcels(ctx echo.Context) error {
	items, err := s.handlers.ListActiveParcels.Handle(ctx.Request().Context(), queries.NewListActiveParcelsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Parcel, len(items))
	for i, item := range items {
		response[i] = parcelFromQuery(item)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDashboardMetrics handles GET /api/v1/dashboard/metrics.
func (s *Server) GetDashboardMetrics(ctx echo.Context) error {
	m, err := s.handlers.DashboardMetrics.Handle(ctx.Request().Context(), queries.NewGetDashboardMetricsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DashboardMetrics{
		BacklogCount:   m.BacklogCount,
		BacklogValue:   m.BacklogValue,
		Counts:         m.Counts,
		Values:         m.Values,
		AvgWaitSeconds: m.AvgWaitSeconds,
	})
}

// ListAuditEntries handles GET /api/v1/audit-logs. startDate and endDate are
// calendar days in the service timezone; the end day is included.
func (s *Server) ListAuditEntries(ctx echo.Context) error {
	filter := queries.AuditEntriesFilter{
		Username:    ctx.QueryParam("username"),
		DisplayName: ctx.QueryParam("displayName"),
		Action:      ctx.QueryParam("action"),
	}

	if raw := strings.TrimSpace(ctx.QueryParam("startDate")); raw != "" {
		start, err := time.ParseInLocation(dateLayout, raw, s.loc)
		if err != nil {
			return badRequest(ctx, "startDate must be YYYY-MM-DD")
		}
		filter.From = &start
	}

	if raw := strings.TrimSpace(ctx.QueryParam("endDate")); raw != "" {
		day, err := time.ParseInLocation(dateLayout, raw, s.loc)
		if err != nil {
			return badRequest(ctx, "endDate must be YYYY-MM-DD")
		}
		end := day.AddDate(0, 0, 1).Add(-time.Microsecond)
		filter.To = &end
	}

	query, err := queries.NewListAuditEntriesQuery(filter)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.handlers.ListAuditEntries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]AuditEntry, len(entries))
	for i, e := range entries {
		response[i] = AuditEntry{
			ID:              e.ID,
			Username:        e.Username,
			UserDisplayName: e.UserDisplayName,
			Action:          e.Action,
			Details:         e.Details,
			CreatedAt:       e.CreatedAt.In(s.loc),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RecordAuditEntry handles POST /api/v1/audit-logs.
func (s *Server) RecordAuditEntry(ctx echo.Context) error {
	var req RecordAuditEntryRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordAuditEntryCommand(req.Action, req.Details)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.RecordAuditEntry.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ServerTime handles GET /public/time. Browsers use it to show the warehouse
// clock instead of their own.
func (s *Server) ServerTime(ctx echo.Context) error {
	now := time.Now()
	if s.handlers.Clock != nil {
		now = s.handlers.Clock.Now()
	}

	return ctx.JSON(http.StatusOK, ServerTime{
		ServerTime: now.In(s.loc),
		Timezone:   s.loc.String(),
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
