package machines

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	hallRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/hall"
	machineRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/machine"
	"github.com/m04kA/SMC-LaundryService/internal/service/machines/models"
)

// nopLogger заглушка логгера для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockMachineRepo struct {
	machines map[int64]*domain.Machine
}

func newMockMachineRepo(machines ...*domain.Machine) *mockMachineRepo {
	m := &mockMachineRepo{machines: make(map[int64]*domain.Machine)}
	for _, machine := range machines {
		m.machines[machine.ID] = machine
	}
	return m
}

func (m *mockMachineRepo) GetByHall(_ context.Context, hallID int64) ([]*domain.Machine, error) {
	result := make([]*domain.Machine, 0)
	for _, machine := range m.machines {
		if machine.HallID == hallID {
			result = append(result, machine)
		}
	}
	return result, nil
}

func (m *mockMachineRepo) GetByID(_ context.Context, id int64) (*domain.Machine, error) {
	machine, ok := m.machines[id]
	if !ok {
		return nil, machineRepo.ErrMachineNotFound
	}
	return machine, nil
}

func (m *mockMachineRepo) UpdateStatus(_ context.Context, id int64, status domain.MachineStatus) error {
	machine, ok := m.machines[id]
	if !ok {
		return machineRepo.ErrMachineNotFound
	}
	machine.Status = status
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

func setupService(machines *mockMachineRepo) *Service {
	halls := map[int64]*domain.Hall{
		1: {ID: 1, Name: "Hall A", OpeningTime: "08:00", ClosingTime: "22:00"},
	}
	return NewService(machines, &mockHallRepo{halls: halls}, nopLogger{})
}

func TestService_GetByHall(t *testing.T) {
	repo := newMockMachineRepo(
		&domain.Machine{ID: 1, HallID: 1, Type: domain.MachineWasher, Status: domain.MachineAvailable, DurationMins: 45},
		&domain.Machine{ID: 2, HallID: 1, Type: domain.MachineDryer, Status: domain.MachineMaintenance, DurationMins: 60},
		&domain.Machine{ID: 3, HallID: 2, Type: domain.MachineWasher, Status: domain.MachineAvailable, DurationMins: 45},
	)
	svc := setupService(repo)

	resp, err := svc.GetByHall(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.HallID)
	assert.Len(t, resp.Machines, 2)
}

func TestService_GetByHall_HallNotFound(t *testing.T) {
	svc := setupService(newMockMachineRepo())

	_, err := svc.GetByHall(context.Background(), 99)
	assert.ErrorIs(t, err, ErrHallNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := newMockMachineRepo(
		&domain.Machine{ID: 1, HallID: 1, Type: domain.MachineWasher, Status: domain.MachineAvailable, DurationMins: 45},
	)
	svc := setupService(repo)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateMachineStatusRequest{Status: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, "maintenance", resp.Status)
	assert.Equal(t, domain.MachineMaintenance, repo.machines[1].Status)
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	repo := newMockMachineRepo(
		&domain.Machine{ID: 1, HallID: 1, Type: domain.MachineWasher, Status: domain.MachineAvailable, DurationMins: 45},
	)
	svc := setupService(repo)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateMachineStatusRequest{Status: "broken"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, domain.MachineAvailable, repo.machines[1].Status)
}

func TestService_UpdateStatus_MachineNotFound(t *testing.T) {
	svc := setupService(newMockMachineRepo())

	_, err := svc.UpdateStatus(context.Background(), 99, &models.UpdateMachineStatusRequest{Status: "available"})
	assert.ErrorIs(t, err, ErrMachineNotFound)
}
