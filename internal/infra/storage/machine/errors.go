package machine

import "errors"

var (
	// ErrMachineNotFound возвращается, когда машина не найдена
	ErrMachineNotFound = errors.New("machine.repository: machine not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("machine.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("machine.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("machine.repository: failed to scan row")
)
