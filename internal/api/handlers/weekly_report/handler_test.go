package weekly_report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/service/reports"
	"github.com/m04kA/SMC-LessonBooking/internal/service/reports/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) WeeklyReport(ctx context.Context, grant adminauth.Grant, today types.Date) (*models.WeeklyReportResponse, error) {
	args := m.Called(ctx, grant, today)
	resp, _ := args.Get(0).(*models.WeeklyReportResponse)
	return resp, args.Error(1)
}

func do(svc ReportService, target string) *httptest.ResponseRecorder {
	clock := domain.NewFixedClock(time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	rec := httptest.NewRecorder()
	NewHandler(svc, clock, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_DefaultsToToday(t *testing.T) {
	svc := &serviceMock{}
	svc.On("WeeklyReport", mock.Anything, mock.Anything, types.MustParseDate("2026-10-17")).Return(&models.WeeklyReportResponse{
		WeekStart:   types.MustParseDate("2026-10-12"),
		WeekEnd:     types.MustParseDate("2026-10-18"),
		TotalSlots:  72,
		BookedCount: 4,
		LoadPercent: 6,
		TopClients:  []models.ClientResponse{},
		PerDayLoad:  []models.DayLoadResponse{},
	}, nil)

	rec := do(svc, "/api/v1/admin/reports/weekly")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"weekStart":"2026-10-12","weekEnd":"2026-10-18","totalSlots":72,"bookedCount":4,
		"loadPercent":6,"presentCount":0,"absentCount":0,"topClients":[],"perDayLoad":[]}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_ExplicitDate(t *testing.T) {
	svc := &serviceMock{}
	svc.On("WeeklyReport", mock.Anything, mock.Anything, types.MustParseDate("2026-10-05")).
		Return(&models.WeeklyReportResponse{}, nil)

	rec := do(svc, "/api/v1/admin/reports/weekly?date=2026-10-05")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("invalid date", func(t *testing.T) {
		svc := &serviceMock{}
		rec := do(svc, "/api/v1/admin/reports/weekly?date=yesterday")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "WeeklyReport", mock.Anything, mock.Anything, mock.Anything)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthorized", adminauth.ErrUnauthorized, http.StatusUnauthorized},
		{"internal", reports.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("WeeklyReport", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, do(svc, "/api/v1/admin/reports/weekly").Code)
		})
	}
}
