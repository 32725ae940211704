package record

import (
	"encoding/json"
	"strings"
	"time"
)

// Layout es el formato canónico de instantes "de pared":
// hora local del dispositivo, sin offset de zona.
const Layout = "2006-01-02T15:04:05"

// LocalTime es un timestamp local sin zona. Se serializa siempre como
// "2006-01-02T15:04:05"; el valor cero significa "no seteado".
type LocalTime struct {
	t time.Time
}

func NewLocalTime(year int, month time.Month, day, hour, min int) LocalTime {
	return LocalTime{t: time.Date(year, month, day, hour, min, 0, 0, time.UTC)}
}

// FromTime descarta zona y sub-segundos: solo nos interesa la hora de pared.
func FromTime(t time.Time) LocalTime {
	if t.IsZero() {
		return LocalTime{}
	}
	return LocalTime{t: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// ParseLocalTime acepta el layout canónico. String vacío = valor cero.
func ParseLocalTime(s string) (LocalTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LocalTime{}, nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return LocalTime{}, err
	}
	return LocalTime{t: t}, nil
}

func (lt LocalTime) IsZero() bool { return lt.t.IsZero() }

func (lt LocalTime) Add(d time.Duration) LocalTime {
	if lt.IsZero() {
		return lt
	}
	return LocalTime{t: lt.t.Add(d)}
}

func (lt LocalTime) Before(other LocalTime) bool { return lt.t.Before(other.t) }
func (lt LocalTime) After(other LocalTime) bool  { return lt.t.After(other.t) }
func (lt LocalTime) Equal(other LocalTime) bool  { return lt.t.Equal(other.t) }

// Sub retorna la diferencia lt - other.
func (lt LocalTime) Sub(other LocalTime) time.Duration { return lt.t.Sub(other.t) }

// DayKey agrupa por día calendario ("2006-01-02").
func (lt LocalTime) DayKey() string {
	if lt.IsZero() {
		return ""
	}
	return lt.t.Format("2006-01-02")
}

func (lt LocalTime) String() string {
	if lt.IsZero() {
		return ""
	}
	return lt.t.Format(Layout)
}

func (lt LocalTime) MarshalJSON() ([]byte, error) {
	if lt.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(lt.String())
}

func (lt *LocalTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}
