package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusNoShow     AppointmentStatus = "no_show"
)

// Appointment represents one machine reserved for one load over a
// contiguous time interval. A multi-load request produces several rows,
// one per machine; wash_dry requests produce separate wash and dry rows.
type Appointment struct {
	ID                  int64
	UserID              int64
	HallID              int64
	MachineID           *int64 // nullable only transiently before assignment
	AppointmentDatetime time.Time
	DurationMins        int
	ServiceType         ServiceType // phase value: wash or dry, never wash_dry
	Status              AppointmentStatus
	TotalCost           float64

	CreatedAt   time.Time
	CancelledAt *time.Time
}

// Start returns the start of the occupied interval
func (a *Appointment) Start() time.Time {
	return a.AppointmentDatetime
}

// End returns the end of the occupied interval [start, start+duration)
func (a *Appointment) End() time.Time {
	return a.AppointmentDatetime.Add(time.Duration(a.DurationMins) * time.Minute)
}

// OccupiesMachine returns true if the appointment holds a machine slot.
// Only pending and confirmed appointments participate in overlap math.
func (a *Appointment) OccupiesMachine() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// Overlaps reports whether the appointment's interval overlaps
// [start, end). Both comparisons are strict, so back-to-back
// appointments (one ending exactly when another starts) do not conflict.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.Start().Before(end) && a.End().After(start)
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsFinished returns true for terminal states
func (a *Appointment) IsFinished() bool {
	return a.Status == StatusCompleted || a.Status == StatusNoShow
}

// HallAppointmentsFilter фильтр для выборки заявок прачечной
type HallAppointmentsFilter struct {
	HallID      int64              // Обязательный параметр
	ServiceType *ServiceType       // Фильтр по фазе (wash/dry), nil - все фазы
	WindowStart *time.Time         // Начало окна по appointment_datetime (опционально)
	WindowEnd   *time.Time         // Конец окна по appointment_datetime (опционально)
	Statuses    []AppointmentStatus // Фильтр по статусам, пустой - все статусы
	ForUpdate   bool               // Блокировать выбранные строки (только внутри транзакции)
}
