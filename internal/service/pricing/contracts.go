package pricing

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// HallRepository интерфейс репозитория прачечных
type HallRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hall, error)
}

// MachineRepository интерфейс репозитория парка машин
type MachineRepository interface {
	CycleDuration(ctx context.Context, hallID int64, machineType domain.MachineType, defaultMins int) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
