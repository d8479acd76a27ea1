package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	hallRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/hall"
)

// Service сервис цен и длительностей циклов.
// Цена цикла задаётся прачечной (за стирку и за сушку отдельно),
// длительность - парком машин; обе величины фиксируются в заявке
// в момент бронирования и дальше не пересчитываются.
type Service struct {
	hallRepo         HallRepository
	machineRepo      MachineRepository
	defaultCycleMins int
	logger           Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(
	hallRepo HallRepository,
	machineRepo MachineRepository,
	defaultCycleMins int,
	logger Logger,
) *Service {
	return &Service{
		hallRepo:         hallRepo,
		machineRepo:      machineRepo,
		defaultCycleMins: defaultCycleMins,
		logger:           logger,
	}
}

// PriceAndDuration возвращает цену одного цикла и его длительность в минутах
// для машин заданного типа в прачечной
func (s *Service) PriceAndDuration(ctx context.Context, hallID int64, machineType domain.MachineType) (float64, int, error) {
	hall, err := s.hallRepo.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, hallRepo.ErrHallNotFound) {
			s.logger.Warn("PriceAndDuration: hall id=%d not found", hallID)
			return 0, 0, ErrHallNotFound
		}
		s.logger.Error("PriceAndDuration: repository error for hall id=%d: %v", hallID, err)
		return 0, 0, fmt.Errorf("%w: PriceAndDuration - fetch hall: %v", ErrInternal, err)
	}

	price, err := hall.PriceFor(machineType)
	if err != nil {
		s.logger.Warn("PriceAndDuration: invalid machine type=%s for hall id=%d", machineType, hallID)
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	duration, err := s.machineRepo.CycleDuration(ctx, hallID, machineType, s.defaultCycleMins)
	if err != nil {
		s.logger.Error("PriceAndDuration: failed to get cycle duration for hall id=%d type=%s: %v", hallID, machineType, err)
		return 0, 0, fmt.Errorf("%w: PriceAndDuration - cycle duration: %v", ErrInternal, err)
	}

	return price, duration, nil
}
