package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDateTimeLayout es el formato de fecha/hora sin zona usado en la API
const LocalDateTimeLayout = "2006-01-02T15:04:05"

var localDateTimeInputLayouts = []string{
	time.RFC3339Nano,
	LocalDateTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02",
}

// LocalDateTime es una fecha/hora sin zona horaria
type LocalDateTime struct {
	time.Time
}

// NewLocalDateTime crea un LocalDateTime truncado a segundos
func NewLocalDateTime(t time.Time) *LocalDateTime {
	return &LocalDateTime{Time: t.Truncate(time.Second)}
}

// ParseLocalDateTime acepta RFC 3339 y las variantes sin zona
func ParseLocalDateTime(value string) (LocalDateTime, error) {
	value = strings.TrimSpace(value)
	for _, layout := range localDateTimeInputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return LocalDateTime{Time: t}, nil
		}
	}
	return LocalDateTime{}, fmt.Errorf("invalid date time %q (expected %s)", value, LocalDateTimeLayout)
}

// MarshalJSON implementa json.Marshaler
func (d LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(LocalDateTimeLayout) + `"`), nil
}

// UnmarshalJSON implementa json.Unmarshaler
func (d *LocalDateTime) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("invalid date time %s", raw)
	}

	parsed, err := ParseLocalDateTime(raw[1 : len(raw)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implementa driver.Valuer
func (d LocalDateTime) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implementa sql.Scanner
func (d *LocalDateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseLocalDateTime(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	case nil:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalDateTime", src)
	}
}
