package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidTransition возвращается, когда статус бронирования не допускает операцию
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrQuotaConflict возвращается, когда восстановление бронирования нарушит дневную или недельную квоту клиента
	ErrQuotaConflict = errors.New("bookings: restoring the booking would exceed the client quota")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
