package domain

// Default configuration values
const (
	DefaultCycleDurationMinutes = 45
	DefaultSlotStepMinutes      = 15
)

// Business validation constants
const (
	MinLoadCount = 1
	MaxLoadCount = 5

	MinCycleDurationMinutes = 15
	MaxCycleDurationMinutes = 180
)

// DateFormat формат дат в API (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// SchedulingStatuses статусы заявок, занимающих машину.
// Только они участвуют в подсчёте пересечений и занятых машин.
var SchedulingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
