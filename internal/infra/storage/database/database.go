package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-LessonBooking/pkg/sqlbuilder"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	// ErrUnknownDriver возвращается при неподдерживаемом драйвере БД
	ErrUnknownDriver = errors.New("database: unknown driver")

	// ErrOpen возвращается при ошибке подключения к БД
	ErrOpen = errors.New("database: failed to open")
)

// Config параметры подключения к БД
type Config struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN строка подключения для выбранного драйвера
func (c Config) DSN() (string, error) {
	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode), nil
	case DriverSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return "", fmt.Errorf("%w: sqlite path is required", ErrOpen)
		}
		// BEGIN IMMEDIATE берет блокировку записи в начале транзакции,
		// поэтому проверка и вставка бронирования не пересекаются с другими писателями.
		return filepath.Clean(c.Path) +
			"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

// Dialect SQL-диалект выбранного драйвера
func (c Config) Dialect() (sqlbuilder.Dialect, error) {
	switch c.Driver {
	case DriverPostgres:
		return sqlbuilder.Postgres(), nil
	case DriverSQLite:
		return sqlbuilder.SQLite(), nil
	default:
		return sqlbuilder.Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

// SerializableTxOptions опции транзакции для проверки и вставки бронирования.
// SQLite не принимает уровни изоляции: сериализацию дает _txlock=immediate.
func (c Config) SerializableTxOptions() *sql.TxOptions {
	if c.Driver == DriverPostgres {
		return &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return nil
}

// Open открывает пул соединений и проверяет доступность БД
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrOpen, err)
	}

	return db, nil
}
