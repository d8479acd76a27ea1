package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	hallRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/hall"
	"github.com/m04kA/SMC-LaundryService/internal/service/scheduler"
)

// UseCase use case для получения доступных слотов прачечной
type UseCase struct {
	hallRepo         HallRepository
	machineRepo      MachineRepository
	schedulerSvc     SchedulerService
	slotStepMins     int
	defaultCycleMins int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	hallRepo HallRepository,
	machineRepo MachineRepository,
	schedulerSvc SchedulerService,
	slotStepMins int,
	defaultCycleMins int,
	logger Logger,
) *UseCase {
	return &UseCase{
		hallRepo:         hallRepo,
		machineRepo:      machineRepo,
		schedulerSvc:     schedulerSvc,
		slotStepMins:     slotStepMins,
		defaultCycleMins: defaultCycleMins,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов.
//
// Комбинированная услуга wash_dry проверяется по фазам: стиральная машина
// должна быть свободна в начале слота, сушильная - сразу после стирки.
// Проверка ленивая: если стирка невозможна, сушка не проверяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, hall=%d, service=%s, date=%s, loads=%d",
		req.UserID, req.HallID, req.ServiceType, req.Date.Format(domain.DateFormat), req.LoadCount)

	// 1. Валидация входных данных
	serviceType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем прачечную
	hall, err := uc.hallRepo.GetByID(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, hallRepo.ErrHallNotFound) {
			uc.logger.Warn("GetAvailableSlots: hall id=%d not found", req.HallID)
			return nil, ErrHallNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get hall id=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}

	// 5. Проверяем наличие машин и собираем длительности по фазам
	phases, err := serviceType.Phases()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	phaseDurations := make([]int, 0, len(phases))
	totalDuration := 0
	missing := make([]domain.MachineType, 0, len(phases))
	for _, phase := range phases {
		machineType, err := phase.MachineType()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		count, err := uc.machineRepo.CountByHallAndType(ctx, req.HallID, machineType, domain.MachineAvailable)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to count machines for hall=%d type=%s: %v", req.HallID, machineType, err)
			return nil, fmt.Errorf("%w: failed to count machines: %v", ErrInternal, err)
		}
		if count == 0 {
			uc.logger.Info("GetAvailableSlots: no %ss in hall=%d", machineType, req.HallID)
			missing = append(missing, machineType)
			continue
		}

		duration, err := uc.machineRepo.CycleDuration(ctx, req.HallID, machineType, uc.defaultCycleMins)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get cycle duration for hall=%d type=%s: %v", req.HallID, machineType, err)
			return nil, fmt.Errorf("%w: failed to get cycle duration: %v", ErrInternal, err)
		}

		phaseDurations = append(phaseDurations, duration)
		totalDuration += duration
	}
	if err := missingMachinesError(missing, len(phases)); err != nil {
		return nil, err
	}

	// 6. Генерируем слоты-кандидаты в рабочих часах прачечной
	candidates, err := generateCandidateStarts(hall, totalDuration, uc.slotStepMins, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 7. Проверяем занятость по журналу для каждого кандидата
	slots := make([]Slot, 0, len(candidates))
	for _, candidate := range candidates {
		start, err := candidate.At(req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to resolve slot start: %v", ErrInternal, err)
		}

		available, err := uc.checkPhases(ctx, req.HallID, phases, phaseDurations, start, req.LoadCount)
		if err != nil {
			return nil, err
		}
		if available {
			slots = append(slots, Slot{
				StartTime:       candidate,
				DurationMinutes: totalDuration,
			})
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for hall=%d, service=%s, date=%s",
		len(slots), req.HallID, req.ServiceType, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:        req.Date,
		HallID:      req.HallID,
		ServiceType: req.ServiceType,
		Slots:       slots,
	}, nil
}

// checkPhases проверяет доступность всех фаз услуги подряд, начиная с start.
// Каждая следующая фаза начинается сразу после окончания предыдущей.
// Слот доступен, только если на каждую фазу хватает машин на все loadCount
// загрузок одновременно - иначе листинг показывал бы слоты, на которых
// бронирование заведомо упадёт.
func (uc *UseCase) checkPhases(ctx context.Context, hallID int64, phases []domain.ServiceType, phaseDurations []int, start time.Time, loadCount int) (bool, error) {
	phaseStart := start

	for i, phase := range phases {
		machineType, err := phase.MachineType()
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		available, err := uc.schedulerSvc.IsSlotAvailable(ctx, hallID, machineType, scheduler.Slot{
			Start:        phaseStart,
			DurationMins: phaseDurations[i],
		}, loadCount)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: availability check failed for hall=%d type=%s: %v", hallID, machineType, err)
			return false, fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !available {
			return false, nil
		}

		phaseStart = phaseStart.Add(time.Duration(phaseDurations[i]) * time.Minute)
	}

	return true, nil
}

// missingMachinesError выбирает ошибку по списку отсутствующих типов машин.
// Для wash_dry без обоих типов машин возвращается комбинированная ошибка,
// а не ошибка первой фазы.
func missingMachinesError(missing []domain.MachineType, phaseCount int) error {
	switch {
	case len(missing) == 0:
		return nil
	case len(missing) == phaseCount && phaseCount > 1:
		return ErrNoMachinesInHall
	case missing[0] == domain.MachineWasher:
		return ErrNoWashersInHall
	default:
		return ErrNoDryersInHall
	}
}
