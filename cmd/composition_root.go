package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpin "fifo/internal/adapters/in/http"
	"fifo/internal/adapters/in/ws"
	"fifo/internal/adapters/out/postgres"
	"fifo/internal/adapters/out/postgres/parcelrepo"
	"fifo/internal/adapters/out/queuelog"
	"fifo/internal/core/application/audit"
	"fifo/internal/core/application/usecases/commands"
	"fifo/internal/core/application/usecases/queries"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/core/domain/services"
	"fifo/internal/core/ports"
	"fifo/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	clock      *kernel.ZonedClock
	hub        *ws.Hub
	uowFactory *postgres.GormUnitOfWorkFactory
	recorder   *audit.Recorder
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	clock, err := kernel.NewZonedClock(config.Timezone)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("timezone %q: %w", config.Timezone, err)
	}

	hub := ws.NewHub(logger)
	observers := QueueObservers{queuelog.NewObserver(logger), hub}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		clock:      clock,
		hub:        hub,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, observers),
		recorder:   audit.NewRecorder(httpin.ContextIdentityResolver{}, clock),
	}, nil
}

func (c *CompositionRoot) Location() *time.Location {
	return c.clock.Location()
}

func (c *CompositionRoot) CreateEnterParcelCommandHandler() *commands.EnterParcelCommandHandler {
	h := commands.NewEnterParcelCommandHandler(c.createUoWFactory(), c.recorder, c.clock)
	return &h
}

func (c *CompositionRoot) CreateExitParcelCommandHandler() *commands.ExitParcelCommandHandler {
	h := commands.NewExitParcelCommandHandler(c.createUoWFactory(), c.recorder, c.clock)
	return &h
}

func (c *CompositionRoot) CreateMoveParcelCommandHandler() *commands.MoveParcelCommandHandler {
	h := commands.NewMoveParcelCommandHandler(c.createUoWFactory(), c.recorder)
	return &h
}

func (c *CompositionRoot) CreateConfirmTrackingIDsCommandHandler() *commands.ConfirmTrackingIDsCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewConfirmTrackingIDsCommandHandler(f)
	return &h
}

func (c *CompositionRoot) CreateRecordAuditEntryCommandHandler() *commands.RecordAuditEntryCommandHandler {
	var f commands.AuditUoWFactory = FuncAuditUoWFactory(func() commands.AuditUoW {
		return c.uowFactory.Create()
	})
	h := commands.NewRecordAuditEntryCommandHandler(f, c.recorder)
	return &h
}

func (c *CompositionRoot) CreateGenerateTrackingIDsQueryHandler() queries.GenerateTrackingIDsQueryHandler {
	return queries.NewGenerateTrackingIDsQueryHandler(c.createParcelReader(), services.NewTrackingIDAllocator())
}

func (c *CompositionRoot) CreateLookupTrackingIDQueryHandler() queries.LookupTrackingIDQueryHandler {
	return queries.NewLookupTrackingIDQueryHandler(c.createParcelReader())
}

func (c *CompositionRoot) CreateListActiveParcelsQueryHandler() queries.ListActiveParcelsQueryHandler {
	return queries.NewListActiveParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardMetricsQueryHandler() queries.GetDashboardMetricsQueryHandler {
	return queries.NewGetDashboardMetricsQueryHandler(c.CreateListActiveParcelsQueryHandler(), c.clock)
}

func (c *CompositionRoot) CreateListAuditEntriesQueryHandler() queries.ListAuditEntriesQueryHandler {
	return queries.NewListAuditEntriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		EnterParcel:         c.CreateEnterParcelCommandHandler(),
		ExitParcel:          c.CreateExitParcelCommandHandler(),
		MoveParcel:          c.CreateMoveParcelCommandHandler(),
		ConfirmTrackingIDs:  c.CreateConfirmTrackingIDsCommandHandler(),
		RecordAuditEntry:    c.CreateRecordAuditEntryCommandHandler(),
		GenerateTrackingIDs: c.CreateGenerateTrackingIDsQueryHandler(),
		LookupTrackingID:    c.CreateLookupTrackingIDQueryHandler(),
		ListActiveParcels:   c.CreateListActiveParcelsQueryHandler(),
		DashboardMetrics:    c.CreateGetDashboardMetricsQueryHandler(),
		ListAuditEntries:    c.CreateListAuditEntriesQueryHandler(),
		Clock:               c.clock,
	}, c.Location(), c.logger)
}

func (c *CompositionRoot) CreateEcho() *echo.Echo {
	e := httpin.NewEcho(c.CreateHTTPServer(), c.logger)
	e.GET("/ws", c.hub.Serve)
	return e
}

// Hub is shared by the /ws route and the unit of work observer.
func (c *CompositionRoot) Hub() *ws.Hub {
	return c.hub
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetDashboardMetricsQueryHandler(), c.config.MetricsSnapshotSchedule, c.logger)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// createParcelReader serves read-only lookups outside any unit of work.
func (c *CompositionRoot) createParcelReader() *parcelrepo.GormParcelRepository {
	return parcelrepo.NewGormParcelRepository(c.gormDB, nil)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncAuditUoWFactory func() commands.AuditUoW

func (f FuncAuditUoWFactory) Create() commands.AuditUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// QueueObservers fans a committed change out to every observer in order.
type QueueObservers []ports.QueueObserver

func (o QueueObservers) QueueChanged(ctx context.Context, parcels []*parcel.Parcel) {
	for _, observer := range o {
		observer.QueueChanged(ctx, parcels)
	}
}
