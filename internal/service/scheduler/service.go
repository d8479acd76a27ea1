package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Service планировщик занятости машин.
//
// Занятость никогда не хранится - она каждый раз вычисляется из журнала
// заявок подсчётом пересечений интервалов. Пересечение строгое:
// start < slotEnd && end > slotStart, поэтому стык интервалов
// (заявка заканчивается ровно в момент начала слота) конфликтом не считается.
type Service struct {
	appointmentRepo AppointmentRepository
	machineRepo     MachineRepository
	lookbackMins    int
	logger          Logger
}

// NewService создает новый экземпляр планировщика.
// lookbackMins задаёт глубину окна выборки журнала: заявка, начавшаяся
// раньше слота, всё ещё может занимать машину, поэтому окно отматывается
// назад на максимально возможную длительность заявки.
func NewService(
	appointmentRepo AppointmentRepository,
	machineRepo MachineRepository,
	lookbackMins int,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		machineRepo:     machineRepo,
		lookbackMins:    lookbackMins,
		logger:          logger,
	}
}

// IsSlotAvailable проверяет, наберётся ли required свободных машин типа
// machineType в прачечной на интервал slot.
//
// Порядок проверки:
//  1. Потолок вместимости: количество машин со статусом available.
//     Если их меньше required - интервал недоступен, журнал не читается.
//  2. Подсчёт пересекающихся заявок в окне журнала.
//  3. Свободно = вместимость - занято; доступно при свободно >= required.
func (s *Service) IsSlotAvailable(ctx context.Context, hallID int64, machineType domain.MachineType, slot Slot, required int) (bool, error) {
	if required < 1 {
		return false, fmt.Errorf("%w: required machine count must be positive, got %d", ErrInvalidInput, required)
	}

	capacity, err := s.machineRepo.CountByHallAndType(ctx, hallID, machineType, domain.MachineAvailable)
	if err != nil {
		s.logger.Error("IsSlotAvailable: failed to count machines for hall=%d type=%s: %v", hallID, machineType, err)
		return false, fmt.Errorf("%w: IsSlotAvailable - count machines: %v", ErrInternal, err)
	}

	if capacity < required {
		return false, nil
	}

	busy, err := s.countOverlapping(ctx, hallID, machineType, slot, false)
	if err != nil {
		s.logger.Error("IsSlotAvailable: failed to count overlapping appointments for hall=%d type=%s: %v", hallID, machineType, err)
		return false, err
	}

	return capacity-busy >= required, nil
}

// AssignMachine подбирает свободную машину типа machineType на интервал slot.
// Выбор детерминированный: первая свободная машина в порядке возрастания id.
//
// Вызывается внутри сериализуемой транзакции бронирования: выборка журнала
// блокирует строки (FOR UPDATE), чтобы конкурирующее бронирование не
// прочитало тот же набор занятых машин.
func (s *Service) AssignMachine(ctx context.Context, hallID int64, machineType domain.MachineType, slot Slot) (*domain.Machine, error) {
	available := domain.MachineAvailable
	machines, err := s.machineRepo.GetByHallAndType(ctx, hallID, machineType, &available)
	if err != nil {
		s.logger.Error("AssignMachine: failed to fetch machines for hall=%d type=%s: %v", hallID, machineType, err)
		return nil, fmt.Errorf("%w: AssignMachine - fetch machines: %v", ErrInternal, err)
	}

	if len(machines) == 0 {
		s.logger.Warn("AssignMachine: no available machines in hall=%d type=%s", hallID, machineType)
		return nil, ErrNoMachineAvailable
	}

	overlapping, err := s.overlappingAppointments(ctx, hallID, machineType, slot, true)
	if err != nil {
		s.logger.Error("AssignMachine: failed to fetch overlapping appointments for hall=%d type=%s: %v", hallID, machineType, err)
		return nil, err
	}

	busyMachines := make(map[int64]struct{}, len(overlapping))
	for _, appt := range overlapping {
		if appt.MachineID != nil {
			busyMachines[*appt.MachineID] = struct{}{}
		}
	}

	for _, m := range machines {
		if _, taken := busyMachines[m.ID]; !taken {
			s.logger.Info("AssignMachine: assigned machine=%d (hall=%d, type=%s, start=%s)",
				m.ID, hallID, machineType, slot.Start.Format(time.RFC3339))
			return m, nil
		}
	}

	s.logger.Warn("AssignMachine: all %d machines busy in hall=%d type=%s at %s",
		len(machines), hallID, machineType, slot.Start.Format(time.RFC3339))
	return nil, ErrNoMachineAvailable
}

// countOverlapping подсчитывает заявки, пересекающие интервал slot
func (s *Service) countOverlapping(ctx context.Context, hallID int64, machineType domain.MachineType, slot Slot, forUpdate bool) (int, error) {
	overlapping, err := s.overlappingAppointments(ctx, hallID, machineType, slot, forUpdate)
	if err != nil {
		return 0, err
	}
	return len(overlapping), nil
}

// overlappingAppointments выбирает из журнала заявки нужной фазы,
// пересекающие интервал slot. Окно выборки по appointment_datetime:
// [slot.Start - lookback, slot.End], точное пересечение фильтруется в памяти.
func (s *Service) overlappingAppointments(ctx context.Context, hallID int64, machineType domain.MachineType, slot Slot, forUpdate bool) ([]*domain.Appointment, error) {
	phase, err := phaseFor(machineType)
	if err != nil {
		return nil, err
	}

	windowStart := slot.Start.Add(-time.Duration(s.lookbackMins) * time.Minute)
	windowEnd := slot.End()

	candidates, err := s.appointmentRepo.GetByHallWithFilter(ctx, domain.HallAppointmentsFilter{
		HallID:      hallID,
		ServiceType: &phase,
		WindowStart: &windowStart,
		WindowEnd:   &windowEnd,
		Statuses:    domain.SchedulingStatuses,
		ForUpdate:   forUpdate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: overlappingAppointments - fetch ledger window: %v", ErrInternal, err)
	}

	overlapping := make([]*domain.Appointment, 0, len(candidates))
	for _, appt := range candidates {
		if appt.Overlaps(slot.Start, slot.End()) {
			overlapping = append(overlapping, appt)
		}
	}

	return overlapping, nil
}

// phaseFor возвращает фазу обслуживания, исполняемую машиной данного типа
func phaseFor(machineType domain.MachineType) (domain.ServiceType, error) {
	switch machineType {
	case domain.MachineWasher:
		return domain.ServiceWash, nil
	case domain.MachineDryer:
		return domain.ServiceDry, nil
	default:
		return "", fmt.Errorf("%w: unknown machine type %q", ErrInvalidInput, machineType)
	}
}
