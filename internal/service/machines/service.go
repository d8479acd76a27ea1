package machines

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	hallRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/hall"
	machineRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/machine"
	"github.com/m04kA/SMC-LaundryService/internal/service/machines/models"
)

// Service сервис управления парком машин (staff-операции)
type Service struct {
	machineRepo MachineRepository
	hallRepo    HallRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса машин
func NewService(
	machineRepo MachineRepository,
	hallRepo HallRepository,
	logger Logger,
) *Service {
	return &Service{
		machineRepo: machineRepo,
		hallRepo:    hallRepo,
		logger:      logger,
	}
}

// GetByHall получает все машины прачечной
func (s *Service) GetByHall(ctx context.Context, hallID int64) (*models.MachineListResponse, error) {
	s.logger.Info("GetByHall: fetching machines for hall=%d", hallID)

	if _, err := s.hallRepo.GetByID(ctx, hallID); err != nil {
		if errors.Is(err, hallRepo.ErrHallNotFound) {
			s.logger.Warn("GetByHall: hall id=%d not found", hallID)
			return nil, ErrHallNotFound
		}
		s.logger.Error("GetByHall: repository error for hall id=%d: %v", hallID, err)
		return nil, fmt.Errorf("%w: GetByHall - fetch hall: %v", ErrInternal, err)
	}

	machines, err := s.machineRepo.GetByHall(ctx, hallID)
	if err != nil {
		s.logger.Error("GetByHall: repository error for hall id=%d: %v", hallID, err)
		return nil, fmt.Errorf("%w: GetByHall - fetch machines: %v", ErrInternal, err)
	}

	s.logger.Info("GetByHall: successfully fetched %d machines for hall=%d", len(machines), hallID)
	return models.FromDomainMachineList(hallID, machines), nil
}

// UpdateStatus обновляет операционный статус машины.
// Машина со статусом отличным от available выпадает из планирования:
// потолок вместимости считается только по available-машинам.
func (s *Service) UpdateStatus(ctx context.Context, machineID int64, req *models.UpdateMachineStatusRequest) (*models.MachineResponse, error) {
	s.logger.Info("UpdateStatus: updating machine id=%d to status=%s", machineID, req.Status)

	newStatus, err := domain.ParseMachineStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for machine id=%d", req.Status, machineID)
		return nil, ErrInvalidStatus
	}

	if err := s.machineRepo.UpdateStatus(ctx, machineID, newStatus); err != nil {
		if errors.Is(err, machineRepo.ErrMachineNotFound) {
			s.logger.Warn("UpdateStatus: machine id=%d not found", machineID)
			return nil, ErrMachineNotFound
		}
		s.logger.Error("UpdateStatus: repository error for machine id=%d: %v", machineID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrInternal, err)
	}

	machine, err := s.machineRepo.GetByID(ctx, machineID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-fetch machine id=%d: %v", machineID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - fetch machine: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated machine id=%d to status=%s", machineID, newStatus)
	return models.FromDomainMachine(machine), nil
}
