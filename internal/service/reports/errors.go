package reports

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате отчета
	ErrInvalidInput = errors.New("reports: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("reports: internal error")
)
