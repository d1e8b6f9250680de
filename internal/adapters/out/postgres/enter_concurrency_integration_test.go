package postgres_test

import (
	"context"
	"errors"
	"sync"
	"time"

	postgres_adapter "fifo/internal/adapters/out/postgres"
	appaudit "fifo/internal/core/application/audit"
	"fifo/internal/core/application/usecases/commands"
	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/errs"
)

type commandUoWFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f commandUoWFactory) Create() commands.UoW {
	return f.factory.Create()
}

func (suite *UnitOfWorkIntegrationTestSuite) enterHandler() *commands.EnterParcelCommandHandler {
	clock := kernel.FixedClock{At: time.Now()}
	h := commands.NewEnterParcelCommandHandler(
		commandUoWFactory{factory: suite.factory},
		appaudit.NewRecorder(nil, clock),
		clock,
	)
	return &h
}

func (suite *UnitOfWorkIntegrationTestSuite) enterCommand(label string) commands.EnterParcelCommand {
	cmd, err := commands.NewEnterParcelCommand(label, "RTS", "R-01", "P")
	suite.Require().NoError(err)
	return cmd
}

// enterConcurrently runs two Enter commands for label at the same moment.
func (suite *UnitOfWorkIntegrationTestSuite) enterConcurrently(label string) []error {
	handler := suite.enterHandler()
	cmd := suite.enterCommand(label)

	start := make(chan struct{})
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, results[i] = handler.Handle(context.Background(), cmd)
		}()
	}
	close(start)
	wg.Wait()
	return results
}

func (suite *UnitOfWorkIntegrationTestSuite) seedRemoved(label string) {
	ctx := context.Background()
	p := newActive(label)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
	suite.Require().NoError(p.Exit(time.Now()))
	suite.Require().NoError(uow.ParcelRepository().SoftDelete(ctx, p))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) assertOneWinner(label string, results []error) {
	var succeeded, duplicates int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrObjectAlreadyExists):
			duplicates++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, duplicates)

	var live, entries int64
	suite.Require().NoError(suite.pg.DB.Table("parcels").
		Where("tracking_id = ? AND deleted_at IS NULL", label).Count(&live).Error)
	suite.Require().NoError(suite.pg.DB.Table("audit_logs").
		Where("action = ?", audit.ActionEntry.String()).Count(&entries).Error)
	suite.Equal(int64(1), live)
	suite.Equal(int64(1), entries)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEnter_ConcurrentOnNewTrackingID_OneWins() {
	results := suite.enterConcurrently("CG000101")

	suite.assertOneWinner("CG000101", results)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestEnter_ConcurrentOnRemovedTrackingID_OneWins() {
	suite.seedRemoved("CG000102")

	results := suite.enterConcurrently("CG000102")

	suite.assertOneWinner("CG000102", results)

	var rows int64
	suite.Require().NoError(suite.pg.DB.Table("parcels").
		Where("tracking_id = ?", "CG000102").Count(&rows).Error)
	suite.Equal(int64(1), rows, "the removed row is reused, not duplicated")
}

// An insert held open in another transaction makes the handler miss the row on
// lookup; the live-row unique index then rejects its insert once the other commits.
func (suite *UnitOfWorkIntegrationTestSuite) TestEnter_InsertBlockedByUncommittedRow_IsDuplicate() {
	ctx := context.Background()
	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	suite.Require().NoError(holder.ParcelRepository().Add(ctx, newActive("CG000103")))

	handler, cmd := suite.enterHandler(), suite.enterCommand("CG000103")
	done := make(chan error, 1)
	go func() {
		_, err := handler.Handle(ctx, cmd)
		done <- err
	}()

	select {
	case err := <-done:
		suite.FailNowf("enter did not wait for the open transaction", "%v", err)
	case <-time.After(300 * time.Millisecond):
	}
	suite.Require().NoError(holder.Commit(ctx))

	select {
	case err := <-done:
		suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	case <-time.After(10 * time.Second):
		suite.FailNow("enter never returned")
	}

	var live int64
	suite.Require().NoError(suite.pg.DB.Table("parcels").
		Where("tracking_id = ? AND deleted_at IS NULL", "CG000103").Count(&live).Error)
	suite.Equal(int64(1), live)
}

// A resurrection held open keeps the row locked; the second Enter waits on the
// lock and then sees the row as live.
func (suite *UnitOfWorkIntegrationTestSuite) TestEnter_WaitsOnRowLockOfRemovedRow() {
	ctx := context.Background()
	suite.seedRemoved("CG000104")
	trackingID, err := kernel.NewTrackingID("CG000104")
	suite.Require().NoError(err)

	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	p, err := holder.ParcelRepository().FindGlobalForUpdate(ctx, trackingID)
	suite.Require().NoError(err)
	suite.Require().NoError(p.Enter(suite.enterCommand("CG000104").Placement(), time.Now()))
	suite.Require().NoError(holder.ParcelRepository().Update(ctx, p))

	handler, cmd := suite.enterHandler(), suite.enterCommand("CG000104")
	done := make(chan error, 1)
	go func() {
		_, err := handler.Handle(ctx, cmd)
		done <- err
	}()

	select {
	case err := <-done:
		suite.FailNowf("enter did not wait for the row lock", "%v", err)
	case <-time.After(300 * time.Millisecond):
	}
	suite.Require().NoError(holder.Commit(ctx))

	select {
	case err := <-done:
		suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	case <-time.After(10 * time.Second):
		suite.FailNow("enter never returned")
	}
}
