package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// validateRequest валидирует входные данные запроса и возвращает разобранный тип услуги
func validateRequest(req *Request) (domain.ServiceType, error) {
	if req.HallID <= 0 {
		return "", fmt.Errorf("%w: hallID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.LoadCount < domain.MinLoadCount || req.LoadCount > domain.MaxLoadCount {
		return "", fmt.Errorf("%w: loadCount must be between %d and %d",
			ErrInvalidInput, domain.MinLoadCount, domain.MaxLoadCount)
	}

	serviceType, err := domain.ParseServiceType(req.ServiceType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return serviceType, nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(requestDate time.Time, now time.Time) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
