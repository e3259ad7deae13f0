package get_week_availability

import (
	getWeekAvailability "github.com/m04kA/SMC-LessonBooking/internal/usecase/get_week_availability"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// WeekAvailabilityResponse HTTP response model
type WeekAvailabilityResponse struct {
	Days []DayAvailability `json:"days"`
}

// DayAvailability доступность слотов одного дня
type DayAvailability struct {
	Date    types.Date         `json:"date"`
	Weekday string             `json:"weekday"`
	Slots   []SlotAvailability `json:"slots"`
}

// SlotAvailability модель временного слота
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeekAvailability.Response) *WeekAvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]SlotAvailability, len(day.Slots))
		for j, s := range day.Slots {
			slots[j] = SlotAvailability{Slot: string(s.Slot), Available: s.Available}
		}
		days[i] = DayAvailability{
			Date:    day.Date,
			Weekday: day.Date.Weekday().String(),
			Slots:   slots,
		}
	}
	return &WeekAvailabilityResponse{Days: days}
}
