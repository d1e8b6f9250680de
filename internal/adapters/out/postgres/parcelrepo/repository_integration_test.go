package parcelrepo_test

import (
	"context"
	"testing"
	"time"

	"fifo/internal/adapters/out/postgres/parcelrepo"
	"fifo/internal/adapters/out/postgres/pgtest"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Container
	repository *parcelrepo.GormParcelRepository
	tracker    *MockAggregateTracker
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.pg = pg
	suite.Require().NoError(err)
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = parcelrepo.NewGormParcelRepository(suite.pg.DB, suite.tracker)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ParcelRepositoryIntegrationTestSuite) label(raw string) kernel.TrackingID {
	id, err := kernel.NewTrackingID(raw)
	suite.Require().NoError(err)
	return id
}

func (suite *ParcelRepositoryIntegrationTestSuite) active(raw string, buffer parcel.Buffer, lane string, profile parcel.Profile) *parcel.Parcel {
	placement, err := parcel.NewPlacement(buffer, lane, profile)
	suite.Require().NoError(err)
	p, err := parcel.NewParcel(kernel.NewUUID(), suite.label(raw), placement, time.Now().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return p
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAllFields() {
	ctx := context.Background()
	p := suite.active("CG000001", parcel.BufferEHA, "E-03", parcel.ProfileG)

	suite.Require().NoError(suite.repository.Add(ctx, p))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", p.ID(), p)

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(p))
	suite.Equal("CG000001", got.TrackingID().String())
	suite.Equal(parcel.BufferEHA, got.Buffer())
	suite.Equal("E-03", got.Lane())
	suite.Equal(parcel.ProfileG, got.Profile())
	suite.Equal(10, got.ProfileValue())
	suite.Equal(parcel.StateActive, got.State())
	suite.Require().NotNil(got.EntryTimestamp())
	suite.True(p.EntryTimestamp().Equal(*got.EntryTimestamp()))
	suite.False(got.CreatedAt().IsZero())
	suite.Nil(got.DeletedAt())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_SecondLiveRowIsRejected() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.active("CG000002", parcel.BufferSAL, "S-1", parcel.ProfileUnspecified)))

	err := suite.repository.Add(ctx, suite.active("CG000002", parcel.BufferRTS, "R-1", parcel.ProfileP))

	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_RemovedRowDoesNotBlockNewLiveRow() {
	ctx := context.Background()
	old := suite.active("CG000003", parcel.BufferSAL, "S-1", parcel.ProfileUnspecified)
	suite.Require().NoError(suite.repository.Add(ctx, old))
	suite.Require().NoError(old.Exit(time.Now()))
	suite.Require().NoError(suite.repository.SoftDelete(ctx, old))

	fresh := suite.active("CG000003", parcel.BufferRTS, "R-1", parcel.ProfileP)
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	got, err := suite.repository.FindGlobal(ctx, suite.label("CG000003"))
	suite.Require().NoError(err)
	suite.True(got.IsEqual(fresh), "the live row is preferred")
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestFindGlobal_PrefersMostRecentlyUpdatedRemovedRow() {
	ctx := context.Background()
	first := suite.active("CG000004", parcel.BufferSAL, "S-1", parcel.ProfileUnspecified)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(first.Exit(time.Now()))
	suite.Require().NoError(suite.repository.SoftDelete(ctx, first))

	second := suite.active("CG000004", parcel.BufferSAL, "S-2", parcel.ProfileUnspecified)
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(second.Exit(time.Now()))
	suite.Require().NoError(suite.repository.SoftDelete(ctx, second))

	got, err := suite.repository.FindGlobal(ctx, suite.label("CG000004"))
	suite.Require().NoError(err)
	suite.True(got.IsEqual(second))
	suite.Equal(parcel.StateDeleted, got.State())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestFindGlobal_Unknown_ReturnsNotFound() {
	_, err := suite.repository.FindGlobal(context.Background(), suite.label("CG999999"))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestExistsGlobal_IncludesRemovedAndPendingRows() {
	ctx := context.Background()
	removed := suite.active("CG000005", parcel.BufferSAL, "S-1", parcel.ProfileUnspecified)
	suite.Require().NoError(suite.repository.Add(ctx, removed))
	suite.Require().NoError(removed.Exit(time.Now()))
	suite.Require().NoError(suite.repository.SoftDelete(ctx, removed))

	pending, err := parcel.NewPendingParcel(kernel.NewUUID(), suite.label("CG000006"))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AddBatch(ctx, []*parcel.Parcel{pending}))

	for _, raw := range []string{"CG000005", "CG000006"} {
		exists, err := suite.repository.ExistsGlobal(ctx, suite.label(raw))
		suite.Require().NoError(err)
		suite.True(exists, raw)
	}

	exists, err := suite.repository.ExistsGlobal(ctx, suite.label("CG000007"))
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAddBatch_PendingPlaceholders() {
	ctx := context.Background()
	var batch []*parcel.Parcel
	for i := 1; i <= 3; i++ {
		p, err := parcel.NewPendingParcel(kernel.NewUUID(), kernel.SequentialTrackingID(i))
		suite.Require().NoError(err)
		batch = append(batch, p)
	}

	suite.Require().NoError(suite.repository.AddBatch(ctx, batch))

	got, err := suite.repository.FindGlobal(ctx, kernel.SequentialTrackingID(2))
	suite.Require().NoError(err)
	suite.Equal(parcel.StatePending, got.State())
	suite.Equal(parcel.BufferPending, got.Buffer())
	suite.Equal(parcel.UndefinedLane, got.Lane())
	suite.Nil(got.EntryTimestamp())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAddBatch_ConflictStoresNothing() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.active("CG000002", parcel.BufferSAL, "S-1", parcel.ProfileUnspecified)))

	var batch []*parcel.Parcel
	for i := 1; i <= 3; i++ {
		p, err := parcel.NewPendingParcel(kernel.NewUUID(), kernel.SequentialTrackingID(i))
		suite.Require().NoError(err)
		batch = append(batch, p)
	}

	err := suite.repository.AddBatch(ctx, batch)

	suite.Require().ErrorIs(err, errs.ErrBatchPersistence)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	for _, n := range []int{1, 3} {
		exists, existsErr := suite.repository.ExistsGlobal(ctx, kernel.SequentialTrackingID(n))
		suite.Require().NoError(existsErr)
		suite.False(exists)
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_ResurrectClearsRemovalMarker() {
	ctx := context.Background()
	p := suite.active("CG000008", parcel.BufferRTS, "R-1", parcel.ProfileM)
	suite.Require().NoError(suite.repository.Add(ctx, p))
	suite.Require().NoError(p.Exit(time.Now()))
	suite.Require().NoError(suite.repository.SoftDelete(ctx, p))

	placement, err := parcel.NewPlacement(parcel.BufferSAL, "S-9", parcel.ProfileUnspecified)
	suite.Require().NoError(err)
	suite.Require().NoError(p.Enter(placement, time.Now()))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StateActive, got.State())
	suite.Nil(got.DeletedAt())
	suite.Equal(parcel.BufferSAL, got.Buffer())
	suite.Equal(parcel.ProfileNotApplicable, got.Profile())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAdd_WritesStoreTimestampsBack() {
	ctx := context.Background()
	p := suite.active("CG000012", parcel.BufferRTS, "R-2", parcel.ProfileP)
	suite.Require().True(p.CreatedAt().IsZero())

	suite.Require().NoError(suite.repository.Add(ctx, p))

	suite.False(p.CreatedAt().IsZero())
	suite.False(p.UpdatedAt().IsZero())

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.WithinDuration(got.CreatedAt(), p.CreatedAt(), time.Millisecond)
	suite.WithinDuration(got.UpdatedAt(), p.UpdatedAt(), time.Millisecond)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_RefreshesUpdatedAtAndKeepsCreatedAt() {
	ctx := context.Background()
	p := suite.active("CG000013", parcel.BufferEHA, "E-1", parcel.ProfileM)
	suite.Require().NoError(suite.repository.Add(ctx, p))
	createdAt, firstUpdate := p.CreatedAt(), p.UpdatedAt()

	time.Sleep(5 * time.Millisecond)
	moved, err := p.Move("E-2")
	suite.Require().NoError(err)
	suite.Require().True(moved)
	suite.Require().NoError(suite.repository.Update(ctx, p))

	suite.Equal(createdAt, p.CreatedAt())
	suite.True(p.UpdatedAt().After(firstUpdate))

	got, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.WithinDuration(got.UpdatedAt(), p.UpdatedAt(), time.Millisecond)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestAddBatch_WritesStoreTimestampsBack() {
	ctx := context.Background()
	pending, err := parcel.NewPendingParcel(kernel.NewUUID(), kernel.SequentialTrackingID(14))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.AddBatch(ctx, []*parcel.Parcel{pending}))

	suite.False(pending.CreatedAt().IsZero())
	suite.False(pending.UpdatedAt().IsZero())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFound() {
	p := suite.active("CG000009", parcel.BufferRTS, "R-1", parcel.ProfileM)

	err := suite.repository.Update(context.Background(), p)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestSoftDelete_Twice_ReturnsNotFound() {
	ctx := context.Background()
	p := suite.active("CG000010", parcel.BufferRTS, "R-1", parcel.ProfileM)
	suite.Require().NoError(suite.repository.Add(ctx, p))
	suite.Require().NoError(p.Exit(time.Now()))
	suite.Require().NoError(suite.repository.SoftDelete(ctx, p))

	err := suite.repository.SoftDelete(ctx, p)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestSoftDelete_WithoutExit_IsRejected() {
	ctx := context.Background()
	p := suite.active("CG000011", parcel.BufferRTS, "R-1", parcel.ProfileM)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	err := suite.repository.SoftDelete(ctx, p)

	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	p := suite.active("CG000012", parcel.BufferEHA, "E-1", parcel.ProfileP)
	suite.Require().NoError(suite.repository.Add(ctx, p))

	tx := suite.pg.DB.Begin()
	defer tx.Rollback()
	repo := parcelrepo.NewGormParcelRepository(tx, nil)

	got, err := repo.GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)
	suite.True(got.IsEqual(p))

	byLabel, err := repo.FindGlobalForUpdate(ctx, p.TrackingID())
	suite.Require().NoError(err)
	suite.True(byLabel.IsEqual(p))
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
