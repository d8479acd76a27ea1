package pricing

import "errors"

var (
	// ErrHallNotFound возвращается, когда прачечная не найдена
	ErrHallNotFound = errors.New("pricing.service: hall not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing.service: internal error")
)
