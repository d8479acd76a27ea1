package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-LaundryService/internal/service/appointments/models"
)

// Service сервис для работы с заявками
type Service struct {
	appointmentRepo AppointmentRepository
	walletClient    WalletServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	appointmentRepo AppointmentRepository,
	walletClient WalletServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		walletClient:    walletClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает заявку по ID.
// Пользователь может видеть только свою заявку.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if appt.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetUserAppointments получает заявки пользователя.
// При UpcomingOnly возвращает только будущие заявки, занимающие машину.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, upcomingOnly=%t", req.UserID, req.UpcomingOnly)

	appts, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, req.UpcomingOnly, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appts), req.UserID)
	return models.FromDomainAppointmentList(appts), nil
}

// GetHallAppointments получает заявки прачечной с гибкой фильтрацией (staff view)
//
// Примеры использования:
// - Все заявки прачечной: GetHallAppointments(ctx, &GetHallAppointmentsRequest{HallID: 1})
// - Заявки на дату: указать Date
// - Только стирки: указать ServiceType = "wash"
// - Только подтверждённые: указать Status = "confirmed"
func (s *Service) GetHallAppointments(ctx context.Context, req *models.GetHallAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetHallAppointments: fetching appointments for hall=%d", req.HallID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetHallAppointments: invalid filter for hall=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appts, err := s.appointmentRepo.GetByHallWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetHallAppointments: repository error for hall=%d: %v", req.HallID, err)
		return nil, fmt.Errorf("%w: GetHallAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHallAppointments: successfully fetched %d appointments for hall=%d", len(appts), req.HallID)
	return models.FromDomainAppointmentList(appts), nil
}

// Cancel отменяет заявку и возвращает её стоимость на кошелёк.
// Пользователь может отменить только свою заявку; отменяются только
// заявки, ещё занимающие машину (pending, confirmed).
//
// Возврат средств выполняется после отмены. Если WalletService недоступен,
// отмена остаётся в силе, а ошибка возвращается наверх - возврат должен быть
// повторён по ссылке refund_appointment_<id> (операция идемпотентна на стороне кошелька).
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	appt, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if appt.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, appointmentID)
		return ErrAccessDenied
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appt.Status)
		return ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	reference := fmt.Sprintf("refund_appointment_%d", appointmentID)
	if err := s.walletClient.Credit(ctx, appt.UserID, appt.TotalCost, reference); err != nil {
		s.logger.Error("Cancel: refund failed for appointment id=%d, reference=%s: %v", appointmentID, reference, err)
		return fmt.Errorf("%w: Cancel - refund failed: %v", ErrWalletUnavailable, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d, refunded %.2f", appointmentID, appt.TotalCost)
	return nil
}

// UpdateStatus обновляет статус заявки (staff-операция)
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Отмена идёт только через Cancel - там возврат средств
	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation via status update rejected for appointment id=%d", appointmentID)
		return fmt.Errorf("%w: use cancel endpoint to cancel an appointment", ErrInvalidInput)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}
