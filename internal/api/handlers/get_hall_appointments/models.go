package get_hall_appointments

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(hallID int64, query url.Values) (*models.GetHallAppointmentsRequest, error) {
	req := &models.GetHallAppointmentsRequest{
		HallID: hallID,
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if serviceType := query.Get("serviceType"); serviceType != "" {
		req.ServiceType = &serviceType
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
