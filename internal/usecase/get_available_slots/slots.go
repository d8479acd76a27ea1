package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// generateCandidateStarts генерирует времена начала слотов-кандидатов.
// Кандидаты идут от открытия прачечной с фиксированным шагом stepMinutes;
// слот годится, только если вся услуга (totalDuration) помещается до закрытия -
// конец ровно в момент закрытия допустим.
//
// Для сегодняшней даты дополнительно отбрасываются слоты, начинающиеся
// не СТРОГО позже текущего времени: слот "10:00" при now=10:00 уже недоступен.
func generateCandidateStarts(
	hall *domain.Hall,
	totalDurationMins int,
	stepMinutes int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	candidates := make([]types.TimeString, 0)
	current := hall.OpeningTime

	for current.IsBefore(hall.ClosingTime) {
		end, err := current.AddMinutes(totalDurationMins)
		if err != nil {
			// Услуга уходит за полночь - дальше кандидатов нет
			break
		}
		if end.IsAfter(hall.ClosingTime) {
			break
		}

		candidates = append(candidates, current)

		current, err = current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
	}

	if !isSameDay(requestDate, now) {
		return candidates, nil
	}

	nowTime := types.NewTimeString(now)
	future := make([]types.TimeString, 0, len(candidates))
	for _, c := range candidates {
		if c.IsAfter(nowTime) {
			future = append(future, c)
		}
	}

	return future, nil
}
