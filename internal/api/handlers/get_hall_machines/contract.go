package get_hall_machines

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/machines/models"
)

type MachineService interface {
	GetByHall(ctx context.Context, hallID int64) (*models.MachineListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
