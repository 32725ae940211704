package record

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLocalTime_ParseAndString(t *testing.T) {
	lt, err := ParseLocalTime("2025-03-10T09:00:00")
	if err != nil {
		t.Fatalf("ParseLocalTime returned error: %v", err)
	}
	if lt.String() != "2025-03-10T09:00:00" {
		t.Fatalf("String() = %q", lt.String())
	}
	if lt.DayKey() != "2025-03-10" {
		t.Fatalf("DayKey() = %q", lt.DayKey())
	}
}

func TestLocalTime_EmptyStringIsZero(t *testing.T) {
	lt, err := ParseLocalTime("")
	if err != nil {
		t.Fatalf("ParseLocalTime(\"\") returned error: %v", err)
	}
	if !lt.IsZero() {
		t.Fatalf("expected zero value")
	}
	if lt.String() != "" || lt.DayKey() != "" {
		t.Fatalf("zero value should render empty, got %q / %q", lt.String(), lt.DayKey())
	}
}

func TestLocalTime_ParseRejectsOffset(t *testing.T) {
	if _, err := ParseLocalTime("2025-03-10T09:00:00Z"); err == nil {
		t.Fatalf("expected error for timestamp with zone")
	}
}

func TestLocalTime_AddKeepsWallClock(t *testing.T) {
	lt := NewLocalTime(2025, time.March, 10, 9, 0)
	end := lt.Add(90 * time.Minute)
	if end.String() != "2025-03-10T10:30:00" {
		t.Fatalf("Add(1h30m) = %q", end.String())
	}
	if end.Sub(lt) != 90*time.Minute {
		t.Fatalf("Sub = %v", end.Sub(lt))
	}
}

func TestLocalTime_JSONRoundTrip(t *testing.T) {
	type doc struct {
		At LocalTime `json:"at"`
	}

	b, err := json.Marshal(doc{At: NewLocalTime(2025, time.March, 10, 9, 30)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"at":"2025-03-10T09:30:00"}` {
		t.Fatalf("marshal = %s", b)
	}

	var d doc
	if err := json.Unmarshal(b, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.At.String() != "2025-03-10T09:30:00" {
		t.Fatalf("round trip = %q", d.At.String())
	}

	// valor cero viaja como string vacío
	b, _ = json.Marshal(doc{})
	if string(b) != `{"at":""}` {
		t.Fatalf("zero marshal = %s", b)
	}
	var z doc
	if err := json.Unmarshal(b, &z); err != nil {
		t.Fatalf("zero unmarshal: %v", err)
	}
	if !z.At.IsZero() {
		t.Fatalf("expected zero after round trip")
	}
}

func TestFold(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"São João", "sao joao"},
		{"  Consulta  ", "consulta"},
		{"AÇAÍ", "acai"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Fold(c.in); got != c.want {
			t.Fatalf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if !FoldContains("Vacinação do Théo", "vacinacao") {
		t.Fatalf("FoldContains should ignore diacritics")
	}
	if !FoldContains("qualquer cosa", "") {
		t.Fatalf("needle vacío siempre matchea")
	}
	if FoldContains("banho", "tosa") {
		t.Fatalf("unexpected match")
	}
}

func TestStamp(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s := StampNow(now)
	if s.At != nil {
		t.Fatalf("client-only stamp should not carry server value")
	}
	if s.ClientMS != now.UnixMilli() {
		t.Fatalf("ClientMS = %d", s.ClientMS)
	}
	if !s.Display().Equal(now) {
		t.Fatalf("Display should fall back to client mirror")
	}

	server := now.Add(2 * time.Second)
	r := s.Resolve(server)
	if r.At == nil || !r.At.Equal(server) {
		t.Fatalf("Resolve should set server value")
	}
	if r.ClientMS != s.ClientMS {
		t.Fatalf("Resolve should preserve client mirror")
	}
	if !r.Display().Equal(server) {
		t.Fatalf("Display should prefer server value")
	}
}
