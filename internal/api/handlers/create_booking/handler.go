package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-LessonBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-LessonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите имя, телефон, дату и слот из расписания"
	msgSlotNotAvailable   = "выбранный слот недоступен"
	msgAlreadyBookedToday = "на этот день у вас уже есть запись"
	msgWeeklyLimit        = "на этой неделе у вас уже три записи"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, slot=%s", req.Date, req.Slot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrAlreadyBookedToday):
			h.logger.Warn("POST /bookings - Already booked: phone=%s, date=%s", req.Phone, req.Date)
			handlers.RespondConflict(w, msgAlreadyBookedToday)

		case errors.Is(err, createBooking.ErrWeeklyLimitExceeded):
			h.logger.Warn("POST /bookings - Weekly limit: phone=%s, date=%s", req.Phone, req.Date)
			handlers.RespondConflict(w, msgWeeklyLimit)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: phone=%s, error=%v", req.Phone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
