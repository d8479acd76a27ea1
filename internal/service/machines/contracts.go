package machines

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// MachineRepository интерфейс репозитория парка машин
type MachineRepository interface {
	GetByHall(ctx context.Context, hallID int64) ([]*domain.Machine, error)
	GetByID(ctx context.Context, id int64) (*domain.Machine, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MachineStatus) error
}

// HallRepository интерфейс репозитория прачечных
type HallRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hall, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
