package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/integrations/walletservice"
	"github.com/m04kA/SMC-LaundryService/internal/service/scheduler"
)

// AppointmentRepository интерфейс репозитория журнала заявок
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64) error
}

// HallRepository интерфейс репозитория прачечных
type HallRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hall, error)
}

// PricingService интерфейс сервиса цен и длительностей
type PricingService interface {
	PriceAndDuration(ctx context.Context, hallID int64, machineType domain.MachineType) (float64, int, error)
}

// SchedulerService интерфейс планировщика занятости машин
type SchedulerService interface {
	AssignMachine(ctx context.Context, hallID int64, machineType domain.MachineType, slot scheduler.Slot) (*domain.Machine, error)
}

// WalletServiceClient интерфейс клиента для WalletService
type WalletServiceClient interface {
	ValidateAffordability(ctx context.Context, userID int64, amount float64) (*walletservice.AffordabilityResult, error)
	Debit(ctx context.Context, userID int64, amount float64, reference string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
