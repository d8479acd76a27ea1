package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	hallRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/hall"
	"github.com/m04kA/SMC-LaundryService/internal/integrations/walletservice"
	"github.com/m04kA/SMC-LaundryService/internal/service/scheduler"
)

// nopLogger заглушка логгера для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fixedTimeProvider фиксирует "сейчас" для тестов
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

// mockAppointmentRepo in-memory журнал заявок с последовательными id
type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	cancelled    []int64
	nextID       int64
	createErr    error
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{nextID: 1}
}

func (m *mockAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}

	stored := *appt
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.nextID++
	m.appointments = append(m.appointments, &stored)
	return &stored, nil
}

func (m *mockAppointmentRepo) Cancel(_ context.Context, id int64) error {
	m.cancelled = append(m.cancelled, id)
	for _, appt := range m.appointments {
		if appt.ID == id {
			appt.Status = domain.StatusCancelled
		}
	}
	return nil
}

type mockHallRepo struct {
	halls map[int64]*domain.Hall
}

func (m *mockHallRepo) GetByID(_ context.Context, id int64) (*domain.Hall, error) {
	hall, ok := m.halls[id]
	if !ok {
		return nil, hallRepo.ErrHallNotFound
	}
	return hall, nil
}

// mockPricingService отдаёт фиксированные цену и длительность по типу машины
type mockPricingService struct {
	prices    map[domain.MachineType]float64
	durations map[domain.MachineType]int
}

func (m *mockPricingService) PriceAndDuration(_ context.Context, _ int64, machineType domain.MachineType) (float64, int, error) {
	return m.prices[machineType], m.durations[machineType], nil
}

// mockScheduler раздаёт машины из пула, сверяясь с уже созданными заявками:
// назначение внутри транзакции видит собственные вставки
type mockScheduler struct {
	machines  []*domain.Machine
	apptRepo  *mockAppointmentRepo
	assignErr error
}

func (m *mockScheduler) AssignMachine(_ context.Context, hallID int64, machineType domain.MachineType, slot scheduler.Slot) (*domain.Machine, error) {
	if m.assignErr != nil {
		return nil, m.assignErr
	}

	for _, machine := range m.machines {
		if machine.HallID != hallID || machine.Type != machineType {
			continue
		}
		if m.machineBusy(machine.ID, slot) {
			continue
		}
		return machine, nil
	}
	return nil, scheduler.ErrNoMachineAvailable
}

func (m *mockScheduler) machineBusy(machineID int64, slot scheduler.Slot) bool {
	for _, appt := range m.apptRepo.appointments {
		if appt.MachineID == nil || *appt.MachineID != machineID {
			continue
		}
		if appt.OccupiesMachine() && appt.Overlaps(slot.Start, slot.End()) {
			return true
		}
	}
	return false
}

type transfer struct {
	userID    int64
	amount    float64
	reference string
}

type mockWalletClient struct {
	affordability  *walletservice.AffordabilityResult
	validateErr    error
	debitErr       error
	debits         []transfer
	validateCalled int
}

func (m *mockWalletClient) ValidateAffordability(_ context.Context, userID int64, amount float64) (*walletservice.AffordabilityResult, error) {
	m.validateCalled++
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	if m.affordability != nil {
		return m.affordability, nil
	}
	return &walletservice.AffordabilityResult{CanBook: true, CurrentBalance: amount}, nil
}

func (m *mockWalletClient) Debit(_ context.Context, userID int64, amount float64, reference string) error {
	if m.debitErr != nil {
		return m.debitErr
	}
	m.debits = append(m.debits, transfer{userID: userID, amount: amount, reference: reference})
	return nil
}

// mockTxManager исполняет fn и откатывает вставки журнала при ошибке,
// имитируя rollback сериализуемой транзакции
type mockTxManager struct {
	apptRepo *mockAppointmentRepo
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := len(m.apptRepo.appointments)
	if err := fn(ctx); err != nil {
		m.apptRepo.appointments = m.apptRepo.appointments[:snapshot]
		return err
	}
	return nil
}
