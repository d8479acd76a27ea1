package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/pkg/types"
)

func testHall() *Hall {
	return &Hall{
		ID:          1,
		Name:        "Hall A",
		OpeningTime: "08:00",
		ClosingTime: "22:00",
		WasherPrice: 100,
		DryerPrice:  50,
	}
}

func TestHall_PriceFor(t *testing.T) {
	hall := testHall()

	price, err := hall.PriceFor(MachineWasher)
	require.NoError(t, err)
	assert.Equal(t, 100.0, price)

	price, err = hall.PriceFor(MachineDryer)
	require.NoError(t, err)
	assert.Equal(t, 50.0, price)

	_, err = hall.PriceFor("toaster")
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestHall_FitsOperatingHours(t *testing.T) {
	hall := testHall()

	tests := []struct {
		name     string
		start    string
		duration int
		want     bool
	}{
		{name: "mid-day slot", start: "12:00", duration: 45, want: true},
		{name: "starts at opening", start: "08:00", duration: 45, want: true},
		// Конец ровно в момент закрытия допустим
		{name: "ends exactly at closing", start: "21:15", duration: 45, want: true},
		{name: "runs past closing", start: "21:30", duration: 45, want: false},
		{name: "starts before opening", start: "07:45", duration: 45, want: false},
		{name: "starts at closing", start: "22:00", duration: 45, want: false},
		{name: "runs past midnight", start: "23:30", duration: 45, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fits, err := hall.FitsOperatingHours(types.TimeString(tt.start), tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fits)
		})
	}
}
