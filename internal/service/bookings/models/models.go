package models

import (
	"time"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// BookingResponse бронирование для слоя представления
type BookingResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Date       types.Date `json:"date"`
	Slot       string     `json:"slot"`
	Status     string     `json:"status"`
	Attendance *string    `json:"attendance,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует доменную модель
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Phone:     b.Phone,
		Date:      b.Date,
		Slot:      string(b.Slot),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
	if b.Attendance != domain.AttendanceUnset {
		a := string(b.Attendance)
		resp.Attendance = &a
	}
	return resp
}

// FromDomainBookingList конвертирует список доменных моделей
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
