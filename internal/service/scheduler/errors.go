package scheduler

import "errors"

var (
	// ErrNoMachineAvailable возвращается, когда в интервале нет свободной машины нужного типа
	ErrNoMachineAvailable = errors.New("scheduler.service: no machine available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("scheduler.service: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("scheduler.service: internal error")
)
