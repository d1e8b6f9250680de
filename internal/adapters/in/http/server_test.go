package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	fifohttp "fifo/internal/adapters/in/http"
	"fifo/internal/core/application/usecases/commands"
	"fifo/internal/core/application/usecases/queries"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEnterParcelHandler struct{ mock.Mock }

func (m *MockEnterParcelHandler) Handle(ctx context.Context, cmd commands.EnterParcelCommand) (*parcel.Parcel, error) {
	args := m.Called(ctx, cmd)
	p, _ := args.Get(0).(*parcel.Parcel)
	return p, args.Error(1)
}

type MockExitParcelHandler struct{ mock.Mock }

func (m *MockExitParcelHandler) Handle(ctx context.Context, cmd commands.ExitParcelCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockExitParcelHandler) HandleByTrackingID(ctx context.Context, cmd commands.ExitParcelByTrackingIDCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockConfirmHandler struct{ mock.Mock }

func (m *MockConfirmHandler) Handle(ctx context.Context, cmd commands.ConfirmTrackingIDsCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAuditListHandler struct{ mock.Mock }

func (m *MockAuditListHandler) Handle(ctx context.Context, q queries.ListAuditEntriesQuery) ([]queries.AuditEntryResponse, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]queries.AuditEntryResponse)
	return items, args.Error(1)
}

type stubDashboard struct{}

func (stubDashboard) Handle(context.Context, queries.GetDashboardMetricsQuery) (queries.GetDashboardMetricsQueryResponse, error) {
	return queries.GetDashboardMetricsQueryResponse{
		BacklogCount:   2,
		BacklogValue:   260,
		Counts:         map[string]int{"RTS": 1, "EHA": 1, "SAL": 0},
		Values:         map[string]int{"RTS": 250, "EHA": 10, "SAL": 0},
		AvgWaitSeconds: map[string]float64{"RTS": 30, "EHA": 45},
	}, nil
}

func serve(t *testing.T, handlers fifohttp.Handlers, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := fifohttp.NewEcho(fifohttp.NewServer(handlers, time.UTC, nil), nil)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func activeParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	id, err := kernel.NewTrackingID("CG000001")
	require.NoError(t, err)
	placement, err := parcel.NewPlacement(parcel.BufferRTS, "R-01", parcel.ProfileP)
	require.NoError(t, err)
	p, err := parcel.NewParcel(kernel.NewUUID(), id, placement, time.Date(2025, 4, 7, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestHealth(t *testing.T) {
	rec := serve(t, fifohttp.Handlers{}, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServerTime_UsesWarehouseClock(t *testing.T) {
	at := time.Date(2025, 5, 12, 12, 30, 0, 0, time.UTC)
	handlers := fifohttp.Handlers{Clock: kernel.FixedClock{At: at}}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	e := fifohttp.NewEcho(fifohttp.NewServer(handlers, loc, nil), nil)
	req := httptest.NewRequest(http.MethodGet, "/public/time", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"serverTime":"2025-05-12T09:30:00-03:00","timezone":"America/Sao_Paulo"}`, rec.Body.String())
}

func TestEnterParcel_Created(t *testing.T) {
	p := activeParcel(t)
	enter := new(MockEnterParcelHandler)
	enter.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.EnterParcelCommand) bool {
		return cmd.TrackingID().String() == "CG000001" && cmd.Placement().Lane() == "R-01"
	})).Return(p, nil).Once()

	rec := serve(t, fifohttp.Handlers{EnterParcel: enter}, http.MethodPost, "/api/v1/parcels/entry",
		`{"trackingId":"cg000001","buffer":"RTS","lane":"R-01","profile":"P"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body fifohttp.Parcel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CG000001", body.TrackingID)
	assert.Equal(t, 250, body.ProfileValue)
	assert.Equal(t, "P", body.Profile)
	enter.AssertExpectations(t)
}

func TestEnterParcel_ValidationIsBadRequest(t *testing.T) {
	enter := new(MockEnterParcelHandler)

	rec := serve(t, fifohttp.Handlers{EnterParcel: enter}, http.MethodPost, "/api/v1/parcels/entry",
		`{"trackingId":"CG000001","buffer":"EHA","lane":"E-1"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	enter.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestEnterParcel_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate active", errs.NewObjectAlreadyExistsError("trackingID", "CG000001"), http.StatusConflict},
		{"not found", errs.NewObjectNotFoundError("parcel", "x"), http.StatusNotFound},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enter := new(MockEnterParcelHandler)
			enter.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := serve(t, fifohttp.Handlers{EnterParcel: enter}, http.MethodPost, "/api/v1/parcels/entry",
				`{"trackingId":"CG000001","buffer":"SAL","lane":"S-1"}`, nil)

			assert.Equal(t, tt.want, rec.Code)
			var body fifohttp.Error
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.want, body.Code)
			if tt.want == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "connection refused")
			}
		})
	}
}

func TestEnterParcel_ForwardsCallerIdentity(t *testing.T) {
	var resolved string
	enter := new(MockEnterParcelHandler)
	enter.On("Handle", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		actor, ok := fifohttp.ContextIdentityResolver{}.CurrentActor(args.Get(0).(context.Context))
		if ok {
			resolved = actor.Username() + "/" + actor.DisplayName()
		}
	}).Return(activeParcel(t), nil).Once()

	rec := serve(t, fifohttp.Handlers{EnterParcel: enter}, http.MethodPost, "/api/v1/parcels/entry",
		`{"trackingId":"CG000001","buffer":"SAL","lane":"S-1"}`,
		map[string]string{fifohttp.UserHeader: "jdoe", fifohttp.DisplayNameHeader: "Jane Doe"})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "jdoe/Jane Doe", resolved)
}

func TestExitParcel(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("removed", func(t *testing.T) {
		exit := new(MockExitParcelHandler)
		exit.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExitParcelCommand) bool {
			return cmd.ParcelID().IsEqual(id)
		})).Return(nil).Once()

		rec := serve(t, fifohttp.Handlers{ExitParcel: exit}, http.MethodDelete, "/api/v1/parcels/"+id.String(), "", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		exit.AssertExpectations(t)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serve(t, fifohttp.Handlers{ExitParcel: new(MockExitParcelHandler)}, http.MethodDelete, "/api/v1/parcels/nope", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("already removed by label", func(t *testing.T) {
		exit := new(MockExitParcelHandler)
		exit.On("HandleByTrackingID", mock.Anything, mock.Anything).
			Return(errs.NewObjectAlreadyRemovedError("trackingID", "CG000001")).Once()

		rec := serve(t, fifohttp.Handlers{ExitParcel: exit}, http.MethodPost, "/api/v1/parcels/exit",
			`{"trackingId":"CG000001"}`, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestConfirmTrackingIDs_BatchFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"label taken", errs.NewBatchPersistenceError(2, errs.NewObjectAlreadyExistsError("trackingID", "CG000002")), http.StatusConflict},
		{"store failure", errs.NewBatchPersistenceError(2, errors.New("disk full")), http.StatusInternalServerError},
		{"ok", nil, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confirm := new(MockConfirmHandler)
			confirm.On("Handle", mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := serve(t, fifohttp.Handlers{ConfirmTrackingIDs: confirm}, http.MethodPost, "/api/v1/tracking-ids/confirm",
				`{"trackingIds":["CG000001","CG000002"]}`, nil)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestConfirmTrackingIDs_EmptyListIsBadRequest(t *testing.T) {
	confirm := new(MockConfirmHandler)

	rec := serve(t, fifohttp.Handlers{ConfirmTrackingIDs: confirm}, http.MethodPost, "/api/v1/tracking-ids/confirm",
		`{"trackingIds":[]}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	confirm.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetDashboardMetrics(t *testing.T) {
	rec := serve(t, fifohttp.Handlers{DashboardMetrics: stubDashboard{}}, http.MethodGet, "/api/v1/dashboard/metrics", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"backlogCount": 2,
		"backlogValue": 260,
		"counts": {"RTS": 1, "EHA": 1, "SAL": 0},
		"values": {"RTS": 250, "EHA": 10, "SAL": 0},
		"avgWaitSeconds": {"RTS": 30, "EHA": 45}
	}`, rec.Body.String())
}

func TestListAuditEntries_DateRangeCoversWholeEndDay(t *testing.T) {
	list := new(MockAuditListHandler)
	list.On("Handle", mock.Anything, mock.Anything).Return([]queries.AuditEntryResponse{}, nil).Once()

	rec := serve(t, fifohttp.Handlers{ListAuditEntries: list}, http.MethodGet,
		"/api/v1/audit-logs?username=jdoe&action=ENTRY&startDate=2025-04-07&endDate=2025-04-07", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	list.AssertExpectations(t)
}

func TestListAuditEntries_BadInput(t *testing.T) {
	for _, target := range []string{
		"/api/v1/audit-logs?startDate=07/04/2025",
		"/api/v1/audit-logs?action=RENAME",
		"/api/v1/audit-logs?startDate=2025-04-08&endDate=2025-04-07",
	} {
		rec := serve(t, fifohttp.Handlers{ListAuditEntries: new(MockAuditListHandler)}, http.MethodGet, target, "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
