package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/scheduler"
)

// HallRepository интерфейс репозитория прачечных
type HallRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hall, error)
}

// MachineRepository интерфейс репозитория парка машин
type MachineRepository interface {
	CountByHallAndType(ctx context.Context, hallID int64, machineType domain.MachineType, status domain.MachineStatus) (int, error)
	CycleDuration(ctx context.Context, hallID int64, machineType domain.MachineType, defaultMins int) (int, error)
}

// SchedulerService интерфейс планировщика занятости машин
type SchedulerService interface {
	IsSlotAvailable(ctx context.Context, hallID int64, machineType domain.MachineType, slot scheduler.Slot, required int) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
