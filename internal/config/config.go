package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-LessonBooking/internal/infra/storage/database"
)

const (
	envAdminJWTSecret = "ADMIN_JWT_SECRET"
	envDBPassword     = "DB_PASSWORD"

	// воскресенье 10:00
	defaultRetentionSchedule = "0 10 * * 0"
)

var (
	// ErrLoad возвращается при ошибке чтения или разбора файла конфигурации
	ErrLoad = errors.New("config: failed to load")

	// ErrInvalid возвращается при некорректных значениях конфигурации
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Admin     AdminConfig     `toml:"admin"`
	Retention RetentionConfig `toml:"retention"`
	Calendar  CalendarConfig  `toml:"calendar"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к БД
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	TxMaxAttempts   int    `toml:"tx_max_attempts"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AdminConfig учетные данные администратора
type AdminConfig struct {
	PasswordHash    string `toml:"password_hash"`
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

// RetentionConfig настройки еженедельной очистки
type RetentionConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"`
	// TimeoutSeconds ограничение одного запуска
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// CalendarConfig часовой пояс школы
type CalendarConfig struct {
	Timezone string `toml:"timezone"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          database.DriverSQLite,
			Path:            "lessons.db",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxAttempts:   5,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "lesson-booking",
		},
		Admin: AdminConfig{
			TokenTTLMinutes: 720,
		},
		Retention: RetentionConfig{
			Enabled:        true,
			Schedule:       defaultRetentionSchedule,
			TimeoutSeconds: 60,
		},
		Calendar: CalendarConfig{
			Timezone: "UTC",
		},
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(envAdminJWTSecret); ok && v != "" {
		c.Admin.JWTSecret = v
	}
	if v, ok := os.LookupEnv(envDBPassword); ok && v != "" {
		c.Database.Password = v
	}
}

// applyDefaults восстанавливает значения, явно обнуленные в файле
func (c *Config) applyDefaults() {
	def := Default()

	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = def.Retention.Schedule
	}
	if c.Calendar.Timezone == "" {
		c.Calendar.Timezone = def.Calendar.Timezone
	}
	if c.Database.TxMaxAttempts <= 0 {
		c.Database.TxMaxAttempts = def.Database.TxMaxAttempts
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d is out of range", ErrInvalid, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case database.DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres", ErrInvalid)
		}
	case database.DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: database.driver %q is not supported", ErrInvalid, c.Database.Driver)
	}

	if c.Admin.PasswordHash == "" {
		return fmt.Errorf("%w: admin.password_hash is required", ErrInvalid)
	}
	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("%w: admin.jwt_secret is required (or %s)", ErrInvalid, envAdminJWTSecret)
	}
	if c.Admin.TokenTTLMinutes <= 0 {
		return fmt.Errorf("%w: admin.token_ttl_minutes must be positive", ErrInvalid)
	}

	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("%w: calendar.timezone: %v", ErrInvalid, err)
	}

	return nil
}

// Connection параметры подключения для пакета database
func (d DatabaseConfig) Connection() database.Config {
	return database.Config{
		Driver:          d.Driver,
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		DBName:          d.DBName,
		SSLMode:         d.SSLMode,
		Path:            d.Path,
		MaxOpenConns:    d.MaxOpenConns,
		MaxIdleConns:    d.MaxIdleConns,
		ConnMaxLifetime: time.Duration(d.ConnMaxLifetime) * time.Second,
	}
}

// TokenTTL время жизни токена администратора
func (a AdminConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Timeout ограничение одного запуска очистки
func (r RetentionConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// Location часовой пояс школы
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
