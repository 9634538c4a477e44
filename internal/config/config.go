package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Auth      AuthConfig      `toml:"auth"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

// ServerConfig настройки HTTP сервера
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
	Migrate         bool   `toml:"migrate"`
}

// DSN собирает строку подключения
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis для rate limiter
// При Enabled=false используется in-memory store (корректен только для одного инстанса)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig непрозрачная admin capability: токен сверяется на границе,
// никакого протокола сессий внутри сервиса нет
type AuthConfig struct {
	AdminToken string `toml:"admin_token"`
}

// BookingConfig дефолты бизнес-настроек; при первом запуске сохраняются
// в строку booking_settings и дальше правятся через API
type BookingConfig struct {
	OpenHour           int     `toml:"open_hour"`
	CloseHour          int     `toml:"close_hour"`
	AdvanceBookingDays int     `toml:"advance_booking_days"`
	ValetFee           float64 `toml:"valet_fee"`
}

// RateLimitConfig лимит создания бронирований на одного клиента
type RateLimitConfig struct {
	WindowMinutes  int `toml:"window_minutes"`
	MaxPerCustomer int `toml:"max_per_customer"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if c.Auth.AdminToken == "" {
		return fmt.Errorf("config: auth.admin_token is required")
	}
	if c.Booking.OpenHour < 0 || c.Booking.OpenHour > 23 ||
		c.Booking.CloseHour < 0 || c.Booking.CloseHour > 23 {
		return fmt.Errorf("config: booking hours must be within 0..23")
	}
	if c.Booking.CloseHour < c.Booking.OpenHour {
		return fmt.Errorf("config: booking.close_hour must not precede open_hour")
	}
	if c.RateLimit.WindowMinutes <= 0 {
		c.RateLimit.WindowMinutes = 60
	}
	if c.RateLimit.MaxPerCustomer <= 0 {
		c.RateLimit.MaxPerCustomer = 5
	}
	return nil
}
