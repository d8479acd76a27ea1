package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

func TestSchedulingConfig_LookbackMinutes(t *testing.T) {
	cfg := SchedulingConfig{
		MaxLoadsPerRequest:      5,
		MaxPhaseDurationMinutes: 72,
	}
	assert.Equal(t, 360, cfg.LookbackMinutes())
}

func TestSchedulingConfig_LookbackMinutes_FlooredAtMaxCycle(t *testing.T) {
	// 2 x 72 = 144 минуты - меньше максимального цикла машины (180):
	// заявка на долгий цикл, начавшаяся за 150 минут до слота,
	// обязана попадать в окно выборки журнала
	cfg := SchedulingConfig{
		MaxLoadsPerRequest:      2,
		MaxPhaseDurationMinutes: 72,
	}
	assert.Equal(t, domain.MaxCycleDurationMinutes, cfg.LookbackMinutes())
}

func TestConfig_Validate_CycleDurationBounds(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Database.Host = "localhost"
		cfg.Database.DBName = "laundry_service"
		cfg.WalletService.URL = "http://localhost:8081"
		cfg.applyDefaults()
		return cfg
	}

	assert.NoError(t, base().validate())

	cfg := base()
	cfg.Scheduling.DefaultCycleDurationMinutes = domain.MaxCycleDurationMinutes + 1
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Scheduling.DefaultCycleDurationMinutes = domain.MinCycleDurationMinutes - 1
	assert.Error(t, cfg.validate())
}
