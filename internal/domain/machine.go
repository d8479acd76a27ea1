package domain

import "fmt"

// MachineType represents the kind of laundry machine
type MachineType string

const (
	MachineWasher MachineType = "washer"
	MachineDryer  MachineType = "dryer"
)

// ParseMachineType validates a raw string against the closed set
func ParseMachineType(s string) (MachineType, error) {
	switch MachineType(s) {
	case MachineWasher, MachineDryer:
		return MachineType(s), nil
	default:
		return "", fmt.Errorf("%w: invalid machine type %q", ErrUnknownServiceType, s)
	}
}

// MachineStatus represents the operational status of a machine
type MachineStatus string

const (
	MachineAvailable    MachineStatus = "available"
	MachineInUse        MachineStatus = "in_use"
	MachineOutOfService MachineStatus = "out_of_service"
	MachineMaintenance  MachineStatus = "maintenance"
)

// ParseMachineStatus validates a raw string against the closed set
func ParseMachineStatus(s string) (MachineStatus, error) {
	switch MachineStatus(s) {
	case MachineAvailable, MachineInUse, MachineOutOfService, MachineMaintenance:
		return MachineStatus(s), nil
	default:
		return "", fmt.Errorf("invalid machine status %q", s)
	}
}

// Machine represents a single washer or dryer in a hall.
// Machines are seeded once and mutate only their status; occupancy is
// always derived from the appointment ledger, never cached here.
type Machine struct {
	ID           int64
	HallID       int64
	Type         MachineType
	Status       MachineStatus
	DurationMins int // fixed cycle duration of one load
}

// IsBookable returns true if the machine participates in scheduling math.
// Only available machines do: in_use is a live machine-timer concept
// tracked by a separate subsystem, not a booking-ledger state.
func (m *Machine) IsBookable() bool {
	return m.Status == MachineAvailable
}
