package domain

// Business rules
const (
	SlotDurationMinutes = 30

	// BookableDaysPerWeek Monday through Saturday
	BookableDaysPerWeek = 6

	// MaxConfirmedPerDay confirmed bookings a phone may hold on one date
	MaxConfirmedPerDay = 1

	// MaxConfirmedPerWeek confirmed bookings a phone may hold in one Monday-Sunday week
	MaxConfirmedPerWeek = 3

	// TopClientsLimit size of the top clients list in the weekly report
	TopClientsLimit = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие слот
// Используется при проверке доступности и в частичном уникальном индексе
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusPendingCancellation,
}

// SweepableStatuses статусы, которые удаляет очистка прошлых недель
// pending_cancellation не удаляется никогда
var SweepableStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCancelled,
}

// StatusStrings конвертирует статусы в строки для запросов
func StatusStrings(statuses []BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
