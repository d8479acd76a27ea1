package get_hall_appointments

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetHallAppointments(ctx context.Context, req *models.GetHallAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
