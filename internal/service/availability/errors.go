package availability

import "errors"

var (
	// ErrInvalidRange возвращается, когда from позже to
	ErrInvalidRange = errors.New("availability: invalid date range")

	// ErrInternal возвращается при ошибках чтения хранилища
	ErrInternal = errors.New("availability: internal error")
)
