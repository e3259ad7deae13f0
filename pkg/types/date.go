package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout формат даты в БД и в API
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDate возвращается при некорректной строке даты
	ErrInvalidDate = errors.New("invalid date string format")
)

// Date календарный день без времени и часового пояса.
// Внутри хранится полночь UTC, поэтому значения можно сравнивать через == и использовать как ключ map.
type Date struct {
	t time.Time
}

// NewDate создает дату из года, месяца и дня
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf возвращает календарный день момента t в его собственной локации
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// MustParseDate как ParseDate, но паникует при ошибке (для тестов и констант)
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero проверяет, что дата не задана
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time возвращает полночь UTC этого дня
func (d Date) Time() time.Time {
	return d.t
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// AddDays сдвигает дату на n дней (n может быть отрицательным)
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Before проверяет, что d раньше other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After проверяет, что d позже other
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal проверяет равенство дат
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Value реализует driver.Valuer. Дата хранится строкой YYYY-MM-DD:
// Postgres приводит её к DATE, SQLite хранит как TEXT с корректной лексикографической сортировкой.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan реализует sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	// SQLite может вернуть дату с хвостом времени, если колонку писали как timestamp
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText реализует encoding.TextMarshaler (используется encoding/json)
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
