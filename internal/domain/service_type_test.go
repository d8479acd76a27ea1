package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServiceType(t *testing.T) {
	for _, valid := range []string{"wash", "dry", "wash_dry"} {
		got, err := ParseServiceType(valid)
		require.NoError(t, err)
		assert.Equal(t, ServiceType(valid), got)
	}

	for _, invalid := range []string{"", "WASH", "washdry", "iron"} {
		_, err := ParseServiceType(invalid)
		assert.ErrorIs(t, err, ErrUnknownServiceType, "input=%q", invalid)
	}
}

func TestServiceType_IsPhase(t *testing.T) {
	assert.True(t, ServiceWash.IsPhase())
	assert.True(t, ServiceDry.IsPhase())
	assert.False(t, ServiceWashDry.IsPhase())
}

func TestServiceType_MachineType(t *testing.T) {
	mt, err := ServiceWash.MachineType()
	require.NoError(t, err)
	assert.Equal(t, MachineWasher, mt)

	mt, err = ServiceDry.MachineType()
	require.NoError(t, err)
	assert.Equal(t, MachineDryer, mt)

	// Комбинированная услуга машины не имеет - сначала разложение на фазы
	_, err = ServiceWashDry.MachineType()
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestServiceType_Phases(t *testing.T) {
	phases, err := ServiceWash.Phases()
	require.NoError(t, err)
	assert.Equal(t, []ServiceType{ServiceWash}, phases)

	phases, err = ServiceDry.Phases()
	require.NoError(t, err)
	assert.Equal(t, []ServiceType{ServiceDry}, phases)

	phases, err = ServiceWashDry.Phases()
	require.NoError(t, err)
	assert.Equal(t, []ServiceType{ServiceWash, ServiceDry}, phases)

	_, err = ServiceType("iron").Phases()
	assert.ErrorIs(t, err, ErrUnknownServiceType)
}

func TestParseMachineType(t *testing.T) {
	mt, err := ParseMachineType("washer")
	require.NoError(t, err)
	assert.Equal(t, MachineWasher, mt)

	mt, err = ParseMachineType("dryer")
	require.NoError(t, err)
	assert.Equal(t, MachineDryer, mt)

	_, err = ParseMachineType("wash")
	assert.Error(t, err)
}

func TestParseMachineStatus(t *testing.T) {
	for _, valid := range []string{"available", "in_use", "out_of_service", "maintenance"} {
		got, err := ParseMachineStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, MachineStatus(valid), got)
	}

	_, err := ParseMachineStatus("broken")
	assert.Error(t, err)
}

func TestMachine_IsBookable(t *testing.T) {
	m := &Machine{ID: 1, HallID: 1, Type: MachineWasher, Status: MachineAvailable}
	assert.True(t, m.IsBookable())

	for _, status := range []MachineStatus{MachineInUse, MachineOutOfService, MachineMaintenance} {
		m.Status = status
		assert.False(t, m.IsBookable(), "status=%s", status)
	}
}
