package scheduler

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// nopLogger заглушка логгера для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// mockAppointmentRepo in-memory журнал заявок.
// Применяет фильтр так же, как SQL-репозиторий: окно по appointment_datetime,
// фаза и статусы. Точное пересечение интервалов остаётся за планировщиком.
type mockAppointmentRepo struct {
	appointments []*domain.Appointment
	lastFilter   domain.HallAppointmentsFilter
	calls        int
	err          error
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{}
}

func (m *mockAppointmentRepo) GetByHallWithFilter(_ context.Context, filter domain.HallAppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastFilter = filter
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	result := make([]*domain.Appointment, 0)
	for _, appt := range m.appointments {
		if appt.HallID != filter.HallID {
			continue
		}
		if filter.ServiceType != nil && appt.ServiceType != *filter.ServiceType {
			continue
		}
		if filter.WindowStart != nil && appt.AppointmentDatetime.Before(*filter.WindowStart) {
			continue
		}
		if filter.WindowEnd != nil && appt.AppointmentDatetime.After(*filter.WindowEnd) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, appt.Status) {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

func containsStatus(statuses []domain.AppointmentStatus, s domain.AppointmentStatus) bool {
	for _, status := range statuses {
		if status == s {
			return true
		}
	}
	return false
}

// mockMachineRepo in-memory парк машин, отсортированный по id
type mockMachineRepo struct {
	machines []*domain.Machine
	err      error
}

func newMockMachineRepo(machines ...*domain.Machine) *mockMachineRepo {
	return &mockMachineRepo{machines: machines}
}

func (m *mockMachineRepo) GetByHallAndType(_ context.Context, hallID int64, machineType domain.MachineType, status *domain.MachineStatus) ([]*domain.Machine, error) {
	if m.err != nil {
		return nil, m.err
	}

	result := make([]*domain.Machine, 0)
	for _, machine := range m.machines {
		if machine.HallID != hallID || machine.Type != machineType {
			continue
		}
		if status != nil && machine.Status != *status {
			continue
		}
		result = append(result, machine)
	}
	return result, nil
}

func (m *mockMachineRepo) CountByHallAndType(ctx context.Context, hallID int64, machineType domain.MachineType, status domain.MachineStatus) (int, error) {
	machines, err := m.GetByHallAndType(ctx, hallID, machineType, &status)
	if err != nil {
		return 0, err
	}
	return len(machines), nil
}
