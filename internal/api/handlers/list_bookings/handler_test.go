package list_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) ListForPhone(ctx context.Context, phone string, from types.Date) (*models.BookingListResponse, error) {
	args := m.Called(ctx, phone, from)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

func newTestHandler(svc *serviceMock) *Handler {
	clock := domain.NewFixedClock(time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	return NewHandler(svc, clock, logger.Nop())
}

func TestHandle_DefaultsFromToToday(t *testing.T) {
	svc := &serviceMock{}
	svc.On("ListForPhone", mock.Anything, "+998901234567", types.MustParseDate("2026-10-17")).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil)

	rec := httptest.NewRecorder()
	newTestHandler(svc).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?phone=%2B998901234567", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_ExplicitFrom(t *testing.T) {
	svc := &serviceMock{}
	svc.On("ListForPhone", mock.Anything, "+1", types.MustParseDate("2026-10-12")).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil)

	rec := httptest.NewRecorder()
	newTestHandler(svc).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?phone=%2B1&from=2026-10-12", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing phone", query: ""},
		{name: "blank phone", query: "?phone=%20%20"},
		{name: "bad from", query: "?phone=%2B1&from=17.10.2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			rec := httptest.NewRecorder()
			newTestHandler(svc).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings"+tt.query, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "ListForPhone", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "invalid input", err: bookings.ErrInvalidInput, code: http.StatusBadRequest},
		{name: "storage", err: fmt.Errorf("%w: db down", bookings.ErrInternal), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("ListForPhone", mock.Anything, "+1", mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			newTestHandler(svc).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings?phone=%2B1", nil))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
