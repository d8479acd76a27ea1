package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	WalletService WalletServiceConfig `toml:"wallet_service"`
	Scheduling    SchedulingConfig    `toml:"scheduling"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// WalletServiceConfig настройки клиента WalletService
type WalletServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig настройки планировщика бронирований.
// Окно поиска пересечений выводится из MaxLoadsPerRequest и
// MaxPhaseDurationMinutes, а не захардкожено (см. LookbackMinutes).
type SchedulingConfig struct {
	SlotStepMinutes             int `toml:"slot_step_minutes"`
	MaxLoadsPerRequest          int `toml:"max_loads_per_request"`
	MaxPhaseDurationMinutes     int `toml:"max_phase_duration_minutes"`
	DefaultCycleDurationMinutes int `toml:"default_cycle_duration_minutes"`
}

// LookbackMinutes возвращает ширину окна поиска пересечений.
// Окно должно покрывать самое длинное возможное бронирование,
// иначе заявки, начавшиеся раньше, но ещё идущие, будут пропущены.
// Нижняя граница - максимальная длительность цикла машины: даже при
// малых max_loads_per_request одиночная длинная заявка обязана попадать в окно.
func (c SchedulingConfig) LookbackMinutes() int {
	lookback := c.MaxLoadsPerRequest * c.MaxPhaseDurationMinutes
	if lookback < domain.MaxCycleDurationMinutes {
		return domain.MaxCycleDurationMinutes
	}
	return lookback
}

// Load читает конфигурацию из TOML-файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "laundry-service"
	}
	if c.WalletService.Timeout == 0 {
		c.WalletService.Timeout = 5
	}
	if c.Scheduling.SlotStepMinutes == 0 {
		c.Scheduling.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if c.Scheduling.MaxLoadsPerRequest == 0 {
		c.Scheduling.MaxLoadsPerRequest = 5
	}
	if c.Scheduling.MaxPhaseDurationMinutes == 0 {
		c.Scheduling.MaxPhaseDurationMinutes = 72
	}
	if c.Scheduling.DefaultCycleDurationMinutes == 0 {
		c.Scheduling.DefaultCycleDurationMinutes = domain.DefaultCycleDurationMinutes
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.WalletService.URL == "" {
		return fmt.Errorf("wallet_service.url is required")
	}
	if c.Scheduling.SlotStepMinutes <= 0 {
		return fmt.Errorf("scheduling.slot_step_minutes must be positive")
	}
	if c.Scheduling.DefaultCycleDurationMinutes < domain.MinCycleDurationMinutes ||
		c.Scheduling.DefaultCycleDurationMinutes > domain.MaxCycleDurationMinutes {
		return fmt.Errorf("scheduling.default_cycle_duration_minutes must be between %d and %d",
			domain.MinCycleDurationMinutes, domain.MaxCycleDurationMinutes)
	}
	return nil
}
