package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	createBooking "github.com/m04kA/SMC-LaundryService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	HallID      int64  `json:"hallId"`
	ServiceType string `json:"serviceType"` // wash, dry или wash_dry
	Date        string `json:"date"`        // "2026-03-15"
	StartTime   string `json:"startTime"`   // "10:00"
	LoadCount   int    `json:"loadCount"`
}

// AppointmentItemResponse HTTP модель одной созданной заявки
type AppointmentItemResponse struct {
	ID              int64   `json:"id"`
	MachineID       int64   `json:"machineId"`
	ServiceType     string  `json:"serviceType"`
	StartDatetime   string  `json:"startDatetime"` // ISO 8601
	DurationMinutes int     `json:"durationMinutes"`
	Cost            float64 `json:"cost"`
	Status          string  `json:"status"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	UserID       int64                     `json:"userId"`
	HallID       int64                     `json:"hallId"`
	ServiceType  string                    `json:"serviceType"`
	TotalCost    float64                   `json:"totalCost"`
	Appointments []AppointmentItemResponse `json:"appointments"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		HallID:      r.HallID,
		ServiceType: r.ServiceType,
		Date:        date,
		StartTime:   startTime,
		LoadCount:   r.LoadCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateAppointmentResponse {
	appointments := make([]AppointmentItemResponse, 0, len(resp.Appointments))
	for _, a := range resp.Appointments {
		appointments = append(appointments, AppointmentItemResponse{
			ID:              a.ID,
			MachineID:       a.MachineID,
			ServiceType:     a.ServiceType,
			StartDatetime:   a.AppointmentDatetime.Format(time.RFC3339),
			DurationMinutes: a.DurationMinutes,
			Cost:            a.Cost,
			Status:          a.Status,
		})
	}

	return &CreateAppointmentResponse{
		UserID:       resp.UserID,
		HallID:       resp.HallID,
		ServiceType:  resp.ServiceType,
		TotalCost:    resp.TotalCost,
		Appointments: appointments,
	}
}
