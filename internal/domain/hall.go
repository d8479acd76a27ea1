package domain

import (
	"fmt"

	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

// Hall represents a residence-hall laundry room.
// Opening and closing times are naive local wall-clock values;
// invariant: opening < closing.
type Hall struct {
	ID          int64
	Name        string
	OpeningTime types.TimeString
	ClosingTime types.TimeString
	WasherPrice float64
	DryerPrice  float64
}

// PriceFor returns the per-cycle price for the given machine type
func (h *Hall) PriceFor(machineType MachineType) (float64, error) {
	switch machineType {
	case MachineWasher:
		return h.WasherPrice, nil
	case MachineDryer:
		return h.DryerPrice, nil
	default:
		return 0, fmt.Errorf("%w: invalid machine type %q", ErrUnknownServiceType, string(machineType))
	}
}

// FitsOperatingHours reports whether a service window starting at start
// and lasting durationMins fits within the hall's operating hours.
// A window ending exactly at closing time is valid.
func (h *Hall) FitsOperatingHours(start types.TimeString, durationMins int) (bool, error) {
	if start.IsBefore(h.OpeningTime) {
		return false, nil
	}

	end, err := start.AddMinutes(durationMins)
	if err != nil {
		// Окно уходит за полночь - в рабочие часы оно не помещается
		return false, nil
	}

	return !end.IsAfter(h.ClosingTime), nil
}
