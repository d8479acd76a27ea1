package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "08:30", want: "08:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "8:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_TotalMinutes(t *testing.T) {
	mins, err := TimeString("10:30").TotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 630, mins)

	mins, err = TimeString("00:00").TotalMinutes()
	require.NoError(t, err)
	assert.Equal(t, 0, mins)

	_, err = TimeString("bad").TotalMinutes()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:45"), got)

	got, err = TimeString("10:30").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	// Ровно конец суток уже вне диапазона
	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = TimeString("00:15").AddMinutes(-30)
	assert.ErrorIs(t, err, ErrOutOfRange)

	got, err = TimeString("23:30").AddMinutes(29)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:59"), got)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:15").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:30").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC), got)

	_, err = TimeString("bad").At(date)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("12:45"))
	assert.Equal(t, TimeString("12:45"), ts)

	require.NoError(t, ts.Scan([]byte("08:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("09:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("25:00"))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
