package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	hallRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/hall"
	walletClient "github.com/m04kA/SMC-LaundryService/internal/integrations/walletservice"
	pricingService "github.com/m04kA/SMC-LaundryService/internal/service/pricing"
	schedulerService "github.com/m04kA/SMC-LaundryService/internal/service/scheduler"
)

// UseCase use case для бронирования машин.
//
// Одна загрузка - одна заявка на машину; N загрузок стираются параллельно
// на N машинах с одним временем начала. Услуга wash_dry добавляет каждой
// загрузке вторую заявку на сушку, начинающуюся сразу после стирки.
type UseCase struct {
	appointmentRepo AppointmentRepository
	hallRepo        HallRepository
	pricingSvc      PricingService
	schedulerSvc    SchedulerService
	walletSvc       WalletServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	hallRepo HallRepository,
	pricingSvc PricingService,
	schedulerSvc SchedulerService,
	walletSvc WalletServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		hallRepo:        hallRepo,
		pricingSvc:      pricingSvc,
		schedulerSvc:    schedulerSvc,
		walletSvc:       walletSvc,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// phasePlan цена и длительность одной фазы услуги
type phasePlan struct {
	serviceType domain.ServiceType
	machineType domain.MachineType
	price       float64
	duration    int
}

// Execute выполняет use case бронирования.
//
// Подбор машин и вставка заявок выполняются в одной сериализуемой
// транзакции: либо все загрузки получают машины, либо ни одна - частично
// созданных бронирований не бывает. Списание с кошелька идёт после коммита;
// если оно не прошло, заявки отменяются компенсирующей отменой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, hall=%d, service=%s, date=%s, time=%s, loads=%d",
		req.UserID, req.HallID, req.ServiceType, req.Date.Format(domain.DateFormat), req.StartTime, req.LoadCount)

	// 1. Валидация входных данных
	serviceType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты и времени начала
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateStartTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: start time validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем прачечную
	hall, err := uc.hallRepo.GetByID(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, hallRepo.ErrHallNotFound) {
			uc.logger.Warn("CreateBooking: hall id=%d not found", req.HallID)
			return nil, ErrHallNotFound
		}
		uc.logger.Error("CreateBooking: failed to get hall id=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: failed to get hall: %v", ErrInternal, err)
	}

	// 5. Считаем план фаз: цена и длительность каждой фазы услуги
	plan, totalDuration, err := uc.buildPhasePlan(ctx, req.HallID, serviceType)
	if err != nil {
		return nil, err
	}

	// 6. Проверяем рабочие часы прачечной для полного окна услуги
	if err := validateOperatingHours(hall, req.StartTime, totalDuration); err != nil {
		uc.logger.Warn("CreateBooking: operating hours validation failed: %v", err)
		return nil, err
	}

	// 7. Проверяем достаточность средств на ПОЛНУЮ стоимость заранее -
	// до резервирования машин, чтобы не держать транзакцию ради заведомо
	// неоплачиваемого бронирования
	perLoadCost := 0.0
	for _, phase := range plan {
		perLoadCost += phase.price
	}
	totalCost := perLoadCost * float64(req.LoadCount)

	affordability, err := uc.walletSvc.ValidateAffordability(ctx, req.UserID, totalCost)
	if err != nil {
		if errors.Is(err, walletClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: wallet for user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: affordability check failed for user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: affordability check failed: %v", ErrWalletUnavailable, err)
	}
	if !affordability.CanBook {
		uc.logger.Warn("CreateBooking: insufficient funds for user id=%d: need %.2f, balance %.2f",
			req.UserID, totalCost, affordability.CurrentBalance)
		return nil, fmt.Errorf("%w: balance %.2f, required %.2f",
			ErrInsufficientFunds, affordability.CurrentBalance, totalCost)
	}

	startDatetime, err := req.StartTime.At(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve start datetime: %v", ErrInternal, err)
	}

	// 8. Подбираем машины и создаём заявки в сериализуемой транзакции.
	// Выборка журнала внутри блокирует строки (FOR UPDATE), вставки видны
	// последующим итерациям - две загрузки не получат одну машину.
	var created []*domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created = created[:0]

		for load := 0; load < req.LoadCount; load++ {
			phaseStart := startDatetime

			for _, phase := range plan {
				machine, err := uc.schedulerSvc.AssignMachine(txCtx, req.HallID, phase.machineType, schedulerService.Slot{
					Start:        phaseStart,
					DurationMins: phase.duration,
				})
				if err != nil {
					if errors.Is(err, schedulerService.ErrNoMachineAvailable) {
						uc.logger.Warn("CreateBooking: no %s available for load %d/%d at %s",
							phase.machineType, load+1, req.LoadCount, phaseStart.Format(time.RFC3339))
						return ErrSlotNotAvailable
					}
					uc.logger.Error("CreateBooking: machine assignment failed: %v", err)
					return fmt.Errorf("%w: machine assignment failed: %v", ErrInternal, err)
				}

				appt, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
					UserID:              req.UserID,
					HallID:              req.HallID,
					MachineID:           &machine.ID,
					AppointmentDatetime: phaseStart,
					DurationMins:        phase.duration,
					ServiceType:         phase.serviceType,
					Status:              domain.StatusPending,
					TotalCost:           phase.price,
				})
				if err != nil {
					uc.logger.Error("CreateBooking: failed to create appointment: %v", err)
					return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
				}

				created = append(created, appt)
				phaseStart = phaseStart.Add(time.Duration(phase.duration) * time.Minute)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 9. Списываем полную стоимость одной операцией со ссылкой на первую заявку
	reference := fmt.Sprintf("appointment_%d", created[0].ID)
	if err := uc.walletSvc.Debit(ctx, req.UserID, totalCost, reference); err != nil {
		uc.compensate(ctx, created)

		if errors.Is(err, walletClient.ErrInsufficientFunds) {
			uc.logger.Warn("CreateBooking: debit rejected for user id=%d, reference=%s", req.UserID, reference)
			return nil, fmt.Errorf("%w: debit rejected", ErrInsufficientFunds)
		}
		uc.logger.Error("CreateBooking: debit failed for user id=%d, reference=%s: %v", req.UserID, reference, err)
		return nil, fmt.Errorf("%w: debit failed: %v", ErrWalletUnavailable, err)
	}

	uc.logger.Info("CreateBooking: successfully created %d appointments for user=%d, total=%.2f, reference=%s",
		len(created), req.UserID, totalCost, reference)

	return buildResponse(req, totalCost, created), nil
}

// buildPhasePlan собирает цены и длительности фаз услуги
func (uc *UseCase) buildPhasePlan(ctx context.Context, hallID int64, serviceType domain.ServiceType) ([]phasePlan, int, error) {
	phases, err := serviceType.Phases()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	plan := make([]phasePlan, 0, len(phases))
	totalDuration := 0

	for _, phase := range phases {
		machineType, err := phase.MachineType()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		price, duration, err := uc.pricingSvc.PriceAndDuration(ctx, hallID, machineType)
		if err != nil {
			if errors.Is(err, pricingService.ErrHallNotFound) {
				return nil, 0, ErrHallNotFound
			}
			uc.logger.Error("CreateBooking: failed to get price for hall=%d type=%s: %v", hallID, machineType, err)
			return nil, 0, fmt.Errorf("%w: failed to get price: %v", ErrInternal, err)
		}

		plan = append(plan, phasePlan{
			serviceType: phase,
			machineType: machineType,
			price:       price,
			duration:    duration,
		})
		totalDuration += duration
	}

	return plan, totalDuration, nil
}

// compensate отменяет созданные заявки после неудачного списания.
// Ошибки отмены только логируются: заявка с неснятой оплатой хуже,
// чем заявка, отменённая повторной попыткой.
func (uc *UseCase) compensate(ctx context.Context, created []*domain.Appointment) {
	for _, appt := range created {
		if err := uc.appointmentRepo.Cancel(ctx, appt.ID); err != nil {
			uc.logger.Error("CreateBooking: compensation failed for appointment id=%d: %v", appt.ID, err)
		}
	}
	uc.logger.Warn("CreateBooking: compensated %d appointments after failed debit", len(created))
}

// buildResponse конвертирует созданные заявки в response
func buildResponse(req *Request, totalCost float64, created []*domain.Appointment) *Response {
	resp := &Response{
		UserID:       req.UserID,
		HallID:       req.HallID,
		ServiceType:  req.ServiceType,
		TotalCost:    totalCost,
		Appointments: make([]CreatedAppointment, 0, len(created)),
	}

	for _, appt := range created {
		var machineID int64
		if appt.MachineID != nil {
			machineID = *appt.MachineID
		}
		resp.Appointments = append(resp.Appointments, CreatedAppointment{
			ID:                  appt.ID,
			MachineID:           machineID,
			ServiceType:         string(appt.ServiceType),
			AppointmentDatetime: appt.AppointmentDatetime,
			DurationMinutes:     appt.DurationMins,
			Cost:                appt.TotalCost,
			Status:              string(appt.Status),
		})
	}

	return resp
}
