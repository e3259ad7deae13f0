package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimestamp возвращается, когда значение из БД нельзя разобрать как момент времени
	ErrInvalidTimestamp = errors.New("invalid timestamp value")
)

// timestampLayouts форматы, в которых драйверы возвращают TIMESTAMP в виде строки
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp момент времени, одинаково читаемый из Postgres (time.Time) и SQLite (TEXT)
type Timestamp struct {
	time.Time
}

// NewTimestamp оборачивает time.Time, приводя его к UTC
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// Value реализует driver.Valuer
func (ts Timestamp) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return ts.UTC().Format(time.RFC3339Nano), nil
}

// Scan реализует sql.Scanner
func (ts *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		ts.Time = time.Time{}
		return nil
	case time.Time:
		ts.Time = v.UTC()
		return nil
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimestamp, src)
	}
}

func (ts *Timestamp) scanString(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}
