package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// validateRequest валидирует входные данные запроса и возвращает разобранный тип услуги
func validateRequest(req *Request) (domain.ServiceType, error) {
	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.HallID <= 0 {
		return "", fmt.Errorf("%w: hallID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return "", fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
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

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateStartTime проверяет, что слот ещё не начался.
// Для сегодняшней даты начало должно быть СТРОГО позже текущего времени.
func validateStartTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}

	if !startTime.IsAfter(types.NewTimeString(now)) {
		return fmt.Errorf("%w: slot start must be in the future", ErrInvalidTimeSlot)
	}

	return nil
}

// validateOperatingHours проверяет, что вся услуга помещается в рабочие часы прачечной
func validateOperatingHours(hall *domain.Hall, startTime types.TimeString, totalDurationMins int) error {
	fits, err := hall.FitsOperatingHours(startTime, totalDurationMins)
	if err != nil {
		return fmt.Errorf("%w: failed to check operating hours: %v", ErrInternal, err)
	}
	if !fits {
		return fmt.Errorf("%w: service does not fit hall operating hours %s-%s",
			ErrInvalidTimeSlot, hall.OpeningTime, hall.ClosingTime)
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
