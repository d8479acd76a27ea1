package domain

import (
	"errors"
	"fmt"
)

// ServiceType represents the kind of laundry service requested.
// It is a closed set: wash, dry, or combined wash_dry. A wash_dry request
// is decomposed into separate wash and dry phases - there is no composite
// appointment row.
type ServiceType string

const (
	ServiceWash    ServiceType = "wash"
	ServiceDry     ServiceType = "dry"
	ServiceWashDry ServiceType = "wash_dry"
)

// ErrUnknownServiceType возвращается для значения вне закрытого множества
var ErrUnknownServiceType = errors.New("unknown service type")

// ParseServiceType validates a raw string against the closed set
func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case ServiceWash, ServiceDry, ServiceWashDry:
		return ServiceType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
	}
}

// IsPhase returns true for the single-machine phases (wash, dry).
// Appointment rows carry only phase values, never wash_dry.
func (s ServiceType) IsPhase() bool {
	return s == ServiceWash || s == ServiceDry
}

// MachineType resolves the machine type serving this phase.
// wash_dry has no single machine type and must be decomposed first.
func (s ServiceType) MachineType() (MachineType, error) {
	switch s {
	case ServiceWash:
		return MachineWasher, nil
	case ServiceDry:
		return MachineDryer, nil
	case ServiceWashDry:
		return "", fmt.Errorf("%w: wash_dry must be decomposed into phases", ErrUnknownServiceType)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, string(s))
	}
}

// Phases decomposes the service into its ordered machine phases:
// wash -> [wash], dry -> [dry], wash_dry -> [wash, dry].
func (s ServiceType) Phases() ([]ServiceType, error) {
	switch s {
	case ServiceWash:
		return []ServiceType{ServiceWash}, nil
	case ServiceDry:
		return []ServiceType{ServiceDry}, nil
	case ServiceWashDry:
		return []ServiceType{ServiceWash, ServiceDry}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, string(s))
	}
}
