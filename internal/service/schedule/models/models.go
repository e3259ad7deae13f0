package models

import (
	"github.com/m04kA/SMC-LessonBooking/internal/domain"
	"github.com/m04kA/SMC-LessonBooking/pkg/types"
)

// OverrideInput одно переопределение: без слота закрывается весь день
type OverrideInput struct {
	Date types.Date `json:"date"`
	Slot *string    `json:"slot,omitempty"`
}

// SetOverridesRequest полный новый набор переопределений
type SetOverridesRequest struct {
	Overrides []OverrideInput `json:"overrides"`
}

// SetOverridesResponse результат замены набора
type SetOverridesResponse struct {
	Removed int64 `json:"removed"`
	Stored  int   `json:"stored"`
}

// DayScheduleResponse переопределения одного дня
type DayScheduleResponse struct {
	Date          types.Date `json:"date"`
	WholeDay      bool       `json:"wholeDay"`
	DisabledSlots []string   `json:"disabledSlots"`
}

// WeekScheduleResponse переопределения на неделю
type WeekScheduleResponse struct {
	Days []DayScheduleResponse `json:"days"`
}

// FromDomainSchedule конвертирует доменное расписание
func FromDomainSchedule(days []domain.DaySchedule) *WeekScheduleResponse {
	resp := &WeekScheduleResponse{Days: make([]DayScheduleResponse, 0, len(days))}
	for _, d := range days {
		slots := make([]string, 0, len(d.DisabledSlots))
		for _, s := range d.DisabledSlots {
			slots = append(slots, string(s))
		}
		resp.Days = append(resp.Days, DayScheduleResponse{
			Date:          d.Date,
			WholeDay:      d.WholeDay,
			DisabledSlots: slots,
		})
	}
	return resp
}
