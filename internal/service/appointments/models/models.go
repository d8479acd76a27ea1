package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену заявки
type CancelAppointmentRequest struct {
	UserID int64 `json:"userId"`
}

// UpdateStatusRequest запрос на обновление статуса заявки
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetUserAppointmentsRequest запрос на получение заявок пользователя
type GetUserAppointmentsRequest struct {
	UserID       int64 `json:"userId"`
	UpcomingOnly bool  `json:"upcomingOnly,omitempty"`
}

// GetHallAppointmentsRequest запрос на получение заявок прачечной (staff view)
type GetHallAppointmentsRequest struct {
	HallID      int64      `json:"hallId"`
	Date        *time.Time `json:"date,omitempty"`        // Фильтр по дню (опционально)
	ServiceType *string    `json:"serviceType,omitempty"` // Фильтр по фазе: wash или dry (опционально)
	Status      *string    `json:"status,omitempty"`      // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetHallAppointmentsRequest) ToDomainFilter() (domain.HallAppointmentsFilter, error) {
	filter := domain.HallAppointmentsFilter{
		HallID: r.HallID,
	}

	if r.Date != nil {
		dayStart := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, r.Date.Location())
		dayEnd := dayStart.Add(24 * time.Hour)
		filter.WindowStart = &dayStart
		filter.WindowEnd = &dayEnd
	}

	if r.ServiceType != nil {
		serviceType, err := domain.ParseServiceType(*r.ServiceType)
		if err != nil || !serviceType.IsPhase() {
			return filter, ErrInvalidStatus
		}
		filter.ServiceType = &serviceType
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Statuses = []domain.AppointmentStatus{status}
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными заявки
type AppointmentResponse struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userId"`
	HallID              int64     `json:"hallId"`
	MachineID           *int64    `json:"machineId,omitempty"`
	AppointmentDatetime time.Time `json:"appointmentDatetime"`
	DurationMinutes     int       `json:"durationMinutes"`
	ServiceType         string    `json:"serviceType"`
	Status              string    `json:"status"`
	TotalCost           float64   `json:"totalCost"`

	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse ответ со списком заявок
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                  a.ID,
		UserID:              a.UserID,
		HallID:              a.HallID,
		MachineID:           a.MachineID,
		AppointmentDatetime: a.AppointmentDatetime,
		DurationMinutes:     a.DurationMins,
		ServiceType:         string(a.ServiceType),
		Status:              string(a.Status),
		TotalCost:           a.TotalCost,
		CreatedAt:           a.CreatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
