package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotAvailable возвращается, когда слот закрыт администратором или уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrAlreadyBookedToday возвращается, когда у телефона уже есть подтвержденная запись на эту дату
	ErrAlreadyBookedToday = errors.New("create_booking: phone already has a booking on this date")

	// ErrWeeklyLimitExceeded возвращается, когда у телефона уже 3 подтвержденные записи на неделе
	ErrWeeklyLimitExceeded = errors.New("create_booking: weekly booking limit exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
