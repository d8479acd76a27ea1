package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-LaundryService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного доступного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailableSlotsResponse HTTP модель ответа со списком слотов
type AvailableSlotsResponse struct {
	Date        string         `json:"date"` // "2026-03-15"
	HallID      int64          `json:"hallId"`
	ServiceType string         `json:"serviceType"`
	Slots       []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры HTTP запроса в модель use case
func ToUseCaseRequest(userID, hallID int64, serviceType, dateStr string, loadCount int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID:      userID,
		HallID:      hallID,
		ServiceType: serviceType,
		Date:        date,
		LoadCount:   loadCount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		HallID:      resp.HallID,
		ServiceType: resp.ServiceType,
		Slots:       slots,
	}
}
