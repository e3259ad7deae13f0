package set_attendance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-LessonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) SetAttendance(ctx context.Context, grant adminauth.Grant, bookingID int64, attendance string) error {
	return m.Called(ctx, grant, bookingID, attendance).Error(0)
}

func do(svc BookingService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/admin/bookings/{bookingId}/attendance", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &serviceMock{}
	svc.On("SetAttendance", mock.Anything, mock.Anything, int64(4), "present").Return(nil)

	rec := do(svc, "/admin/bookings/4/attendance", `{"attendance":"present"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":4,"attendance":"present"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthorized", adminauth.ErrUnauthorized, http.StatusUnauthorized},
		{"invalid attendance", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"internal", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("SetAttendance", mock.Anything, mock.Anything, int64(4), "late").Return(tt.err)

			rec := do(svc, "/admin/bookings/4/attendance", `{"attendance":"late"}`)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "bad id", path: "/admin/bookings/x/attendance", body: `{"attendance":"present"}`},
		{name: "empty body", path: "/admin/bookings/4/attendance", body: ""},
		{name: "unknown field", path: "/admin/bookings/4/attendance", body: `{"present":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceMock{}

			rec := do(svc, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			svc.AssertNotCalled(t, "SetAttendance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
