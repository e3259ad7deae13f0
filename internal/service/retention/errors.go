package retention

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной опорной дате или расписании
	ErrInvalidInput = errors.New("retention: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("retention: internal error")
)
