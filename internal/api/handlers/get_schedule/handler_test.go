package get_schedule

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
	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule"
	"github.com/m04kA/SMC-LessonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) GetWeekSchedule(ctx context.Context, grant adminauth.Grant, date types.Date) (*models.WeekScheduleResponse, error) {
	args := m.Called(ctx, grant, date)
	resp, _ := args.Get(0).(*models.WeekScheduleResponse)
	return resp, args.Error(1)
}

func do(svc ScheduleService, target string) *httptest.ResponseRecorder {
	clock := domain.NewFixedClock(time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	rec := httptest.NewRecorder()
	NewHandler(svc, clock, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetWeekSchedule", mock.Anything, mock.Anything, types.MustParseDate("2026-10-19")).Return(&models.WeekScheduleResponse{
		Days: []models.DayScheduleResponse{
			{Date: types.MustParseDate("2026-10-19"), WholeDay: true, DisabledSlots: []string{}},
			{Date: types.MustParseDate("2026-10-20"), DisabledSlots: []string{"14:00-14:30"}},
		},
	}, nil)

	rec := do(svc, "/api/v1/admin/overrides?date=2026-10-19")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"days":[
		{"date":"2026-10-19","wholeDay":true,"disabledSlots":[]},
		{"date":"2026-10-20","wholeDay":false,"disabledSlots":["14:00-14:30"]}
	]}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_DefaultsToToday(t *testing.T) {
	svc := &serviceMock{}
	svc.On("GetWeekSchedule", mock.Anything, mock.Anything, types.MustParseDate("2026-10-17")).
		Return(&models.WeekScheduleResponse{Days: []models.DayScheduleResponse{}}, nil)

	rec := do(svc, "/api/v1/admin/overrides")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	t.Run("invalid date", func(t *testing.T) {
		svc := &serviceMock{}
		assert.Equal(t, http.StatusBadRequest, do(svc, "/api/v1/admin/overrides?date=2026/10/19").Code)
		svc.AssertNotCalled(t, "GetWeekSchedule", mock.Anything, mock.Anything, mock.Anything)
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthorized", adminauth.ErrUnauthorized, http.StatusUnauthorized},
		{"internal", schedule.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("GetWeekSchedule", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			assert.Equal(t, tt.status, do(svc, "/api/v1/admin/overrides").Code)
		})
	}
}
