package create_booking

import (
	"time"

	createBooking "github.com/m04kA/SMC-LessonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name  string     `json:"name"`
	Phone string     `json:"phone"`
	Date  types.Date `json:"date"` // "2026-10-12"
	Slot  string     `json:"slot"` // "14:00-14:30"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Date      types.Date `json:"date"`
	Slot      string     `json:"slot"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Name:  r.Name,
		Phone: r.Phone,
		Date:  r.Date,
		Slot:  r.Slot,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		Name:      resp.Name,
		Phone:     resp.Phone,
		Date:      resp.Date,
		Slot:      string(resp.Slot),
		Status:    string(resp.Status),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
