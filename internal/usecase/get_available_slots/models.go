package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID      int64     // ID пользователя (для логирования, не влияет на результат)
	HallID      int64     // ID прачечной
	ServiceType string    // Тип услуги: wash, dry или wash_dry
	Date        time.Time // Дата, на которую запрашиваются слоты (без времени)
	LoadCount   int       // Количество загрузок: слот доступен, только если машин хватает на все
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date        time.Time // Дата, на которую запрашивались слоты
	HallID      int64     // ID прачечной
	ServiceType string    // Тип услуги
	Slots       []Slot    // Список доступных слотов
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Полная длительность услуги в минутах
}
