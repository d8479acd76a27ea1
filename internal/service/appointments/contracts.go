package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// AppointmentRepository интерфейс репозитория журнала заявок
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByUserID(ctx context.Context, userID int64, upcomingOnly bool, now time.Time) ([]*domain.Appointment, error)
	GetByHallWithFilter(ctx context.Context, filter domain.HallAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64) error
}

// WalletServiceClient интерфейс клиента для WalletService
type WalletServiceClient interface {
	Credit(ctx context.Context, userID int64, amount float64, reference string) error
}

// TimeProvider источник текущего времени.
// Выделен в интерфейс, чтобы тесты могли фиксировать "сейчас".
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
