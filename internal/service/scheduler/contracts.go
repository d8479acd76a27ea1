package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// AppointmentRepository интерфейс репозитория журнала заявок
type AppointmentRepository interface {
	GetByHallWithFilter(ctx context.Context, filter domain.HallAppointmentsFilter) ([]*domain.Appointment, error)
}

// MachineRepository интерфейс репозитория парка машин
type MachineRepository interface {
	GetByHallAndType(ctx context.Context, hallID int64, machineType domain.MachineType, status *domain.MachineStatus) ([]*domain.Machine, error)
	CountByHallAndType(ctx context.Context, hallID int64, machineType domain.MachineType, status domain.MachineStatus) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Slot интервал, на который проверяется или назначается машина
type Slot struct {
	Start        time.Time
	DurationMins int
}

// End возвращает конец интервала
func (s Slot) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationMins) * time.Minute)
}
