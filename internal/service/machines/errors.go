package machines

import "errors"

var (
	// ErrHallNotFound возвращается, когда прачечная не найдена
	ErrHallNotFound = errors.New("hall not found")

	// ErrMachineNotFound возвращается, когда машина не найдена
	ErrMachineNotFound = errors.New("machine not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid machine status")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
