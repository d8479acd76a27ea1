package get_available_slots

import "errors"

var (
	// ErrHallNotFound возвращается, когда прачечная не найдена
	ErrHallNotFound = errors.New("hall not found")

	// ErrNoWashersInHall возвращается, когда в прачечной нет ни одной рабочей стиральной машины
	ErrNoWashersInHall = errors.New("no washers available in this hall")

	// ErrNoDryersInHall возвращается, когда в прачечной нет ни одной рабочей сушильной машины
	ErrNoDryersInHall = errors.New("no dryers available in this hall")

	// ErrNoMachinesInHall возвращается для wash_dry, когда нет ни стиральных, ни сушильных машин
	ErrNoMachinesInHall = errors.New("no washers or dryers available in this hall")

	// ErrInvalidDate возвращается при запросе слотов на прошедшую дату
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
