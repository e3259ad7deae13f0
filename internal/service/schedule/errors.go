package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных переопределениях
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
