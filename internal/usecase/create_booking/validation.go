package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LessonBooking/internal/domain"
)

// validateRequest проверяет входные данные до обращения к хранилищу
// и нормализует имя и телефон
func validateRequest(grid domain.SlotGrid, req *Request) (domain.Slot, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.Phone == "" {
		return "", fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	slot, err := grid.Parse(strings.TrimSpace(req.Slot))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return slot, nil
}

// outcomeOf сопоставляет ошибку usecase исходу для метрик
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeCreated
	case errors.Is(err, ErrInvalidInput):
		return outcomeInvalidInput
	case errors.Is(err, ErrSlotNotAvailable):
		return outcomeSlotTaken
	case errors.Is(err, ErrAlreadyBookedToday):
		return outcomeBookedToday
	case errors.Is(err, ErrWeeklyLimitExceeded):
		return outcomeWeeklyLimit
	default:
		return outcomeInternalFailed
	}
}
