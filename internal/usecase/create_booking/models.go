package create_booking

import (
	"time"

	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// Request модель запроса на бронирование
type Request struct {
	UserID      int64            // ID пользователя
	HallID      int64            // ID прачечной
	ServiceType string           // Тип услуги: wash, dry или wash_dry
	Date        time.Time        // Дата бронирования (без времени)
	StartTime   types.TimeString // Время начала слота (например, "10:00")
	LoadCount   int              // Количество загрузок (параллельных машин)
}

// Response модель ответа с созданными заявками.
// Одна загрузка wash или dry порождает одну заявку, wash_dry - две
// (стирка и сушка отдельными строками журнала).
type Response struct {
	UserID       int64                // ID пользователя
	HallID       int64                // ID прачечной
	ServiceType  string               // Запрошенный тип услуги
	TotalCost    float64              // Суммарная стоимость, списанная с кошелька
	Appointments []CreatedAppointment // Созданные заявки
}

// CreatedAppointment данные одной созданной заявки
type CreatedAppointment struct {
	ID                  int64     // ID заявки
	MachineID           int64     // Назначенная машина
	ServiceType         string    // Фаза: wash или dry
	AppointmentDatetime time.Time // Начало фазы
	DurationMinutes     int       // Длительность фазы
	Cost                float64   // Стоимость одного цикла
	Status              string    // Статус заявки
}
