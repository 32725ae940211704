package record

import (
	"testing"
	"time"
)

func TestParseDurationLabel_Valid(t *testing.T) {
	cases := []struct {
		label string
		want  time.Duration
	}{
		{"1:30", 90 * time.Minute},
		{"0:45", 45 * time.Minute},
		{"0:05", 5 * time.Minute},
		{"2:00", 2 * time.Hour},
		{"10:15", 10*time.Hour + 15*time.Minute},
		{" 1:00 ", time.Hour},
	}

	for _, c := range cases {
		got, ok := ParseDurationLabel(c.label)
		if !ok {
			t.Fatalf("ParseDurationLabel(%q) reported invalid", c.label)
		}
		if got != c.want {
			t.Fatalf("ParseDurationLabel(%q) = %v, want %v", c.label, got, c.want)
		}
	}
}

func TestParseDurationLabel_MalformedFallsBackToDefault(t *testing.T) {
	cases := []string{
		"",
		"banana",
		"90",
		"1:5",    // minutos tienen que venir con dos dígitos
		"1:60",   // minutos fuera de rango
		"0:00",   // duración nula no es una cita
		"1:30:00",
		"-1:30",
		"001:30",
	}

	for _, label := range cases {
		got, ok := ParseDurationLabel(label)
		if ok {
			t.Fatalf("ParseDurationLabel(%q) reported valid", label)
		}
		if got != DefaultDuration {
			t.Fatalf("ParseDurationLabel(%q) = %v, want default %v", label, got, DefaultDuration)
		}
	}
}

func TestFormatDurationLabel_RoundTrip(t *testing.T) {
	for _, label := range []string{"1:30", "0:45", "12:05", "2:00"} {
		d, ok := ParseDurationLabel(label)
		if !ok {
			t.Fatalf("ParseDurationLabel(%q) reported invalid", label)
		}
		if got := FormatDurationLabel(d); got != label {
			t.Fatalf("FormatDurationLabel(%v) = %q, want %q", d, got, label)
		}
	}
}

func TestFormatDurationLabel_NonPositiveUsesDefault(t *testing.T) {
	if got := FormatDurationLabel(0); got != "1:00" {
		t.Fatalf("FormatDurationLabel(0) = %q, want 1:00", got)
	}
	if got := FormatDurationLabel(-time.Minute); got != "1:00" {
		t.Fatalf("FormatDurationLabel(-1m) = %q, want 1:00", got)
	}
}
