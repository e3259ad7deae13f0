package models

import "github.com/m04kA/SMC-LessonBooking/pkg/types"

// ClientResponse клиент с числом бронирований
type ClientResponse struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayLoadResponse загрузка одного рабочего дня
type DayLoadResponse struct {
	Date        types.Date `json:"date"`
	Weekday     string     `json:"weekday"`
	Booked      int        `json:"booked"`
	LoadPercent int        `json:"loadPercent"`
}

// WeeklyReportResponse недельный отчет
type WeeklyReportResponse struct {
	WeekStart    types.Date        `json:"weekStart"`
	WeekEnd      types.Date        `json:"weekEnd"`
	TotalSlots   int               `json:"totalSlots"`
	BookedCount  int               `json:"bookedCount"`
	LoadPercent  int               `json:"loadPercent"`
	PresentCount int               `json:"presentCount"`
	AbsentCount  int               `json:"absentCount"`
	TopClients   []ClientResponse  `json:"topClients"`
	PerDayLoad   []DayLoadResponse `json:"perDayLoad"`
}
