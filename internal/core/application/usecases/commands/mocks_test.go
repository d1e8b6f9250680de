package commands_test

import (
	"context"
	"strings"
	"time"

	appaudit "fifo/internal/core/application/audit"
	"fifo/internal/core/application/usecases/commands"
	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 4, 7, 14, 30, 0, 0, time.UTC)

func newRecorder() *appaudit.Recorder {
	return appaudit.NewRecorder(nil, kernel.FixedClock{At: fixedNow})
}

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) parcelResult(args mock.Arguments) (*parcel.Parcel, error) {
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}

func (m *MockParcelRepository) ExistsGlobal(ctx context.Context, id kernel.TrackingID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockParcelRepository) FindGlobal(ctx context.Context, id kernel.TrackingID) (*parcel.Parcel, error) {
	return m.parcelResult(m.Called(ctx, id))
}

func (m *MockParcelRepository) FindGlobalForUpdate(ctx context.Context, id kernel.TrackingID) (*parcel.Parcel, error) {
	return m.parcelResult(m.Called(ctx, id))
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return m.parcelResult(m.Called(ctx, id))
}

func (m *MockParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return m.parcelResult(m.Called(ctx, id))
}

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) AddBatch(ctx context.Context, ps []*parcel.Parcel) error {
	return m.Called(ctx, ps).Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockParcelRepository) SoftDelete(ctx context.Context, p *parcel.Parcel) error {
	return m.Called(ctx, p).Error(0)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Add(ctx context.Context, e *audit.Entry) error {
	return m.Called(ctx, e).Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	return m.Called().Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) AuditLogRepository() ports.AuditLogRepository {
	return m.Called().Get(0).(ports.AuditLogRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	return m.Called().Get(0).(commands.ParcelUoW)
}

type MockAuditUoWFactory struct{ mock.Mock }

func (m *MockAuditUoWFactory) Create() commands.AuditUoW {
	return m.Called().Get(0).(commands.AuditUoW)
}

// entryWith matches an audit entry by action and a fragment of its details.
func entryWith(action audit.Action, fragment string) any {
	return mock.MatchedBy(func(e *audit.Entry) bool {
		return e.Action() == action && strings.Contains(e.Details(), fragment)
	})
}

func activeParcel(label string, buffer parcel.Buffer, lane string, profile parcel.Profile) *parcel.Parcel {
	id, err := kernel.NewTrackingID(label)
	if err != nil {
		panic(err)
	}
	placement, err := parcel.NewPlacement(buffer, lane, profile)
	if err != nil {
		panic(err)
	}
	p, err := parcel.NewParcel(kernel.NewUUID(), id, placement, fixedNow.Add(-time.Hour))
	if err != nil {
		panic(err)
	}
	return p
}
