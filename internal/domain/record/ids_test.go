package record

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCoerceID(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"abc-1", "abc-1"},
		{"  abc-1  ", "abc-1"},
		{json.Number("42"), "42"},
		{float64(42), "42"}, // decodificación JSON genérica
		{float64(42.5), "42.5"},
		{int(7), "7"},
		{int64(7), "7"},
	}

	for _, c := range cases {
		if got := CoerceID(c.in); got != c.want {
			t.Fatalf("CoerceID(%#v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCoerceIDs_MixedDedupOrdered(t *testing.T) {
	in := []any{"a", float64(2), "a", "", nil, json.Number("2"), "b"}
	want := []string{"a", "2", "b"}

	got := CoerceIDs(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CoerceIDs(%v) = %v, want %v", in, got, want)
	}
}

func TestCoerceIDs_Empty(t *testing.T) {
	got := CoerceIDs(nil)
	if len(got) != 0 {
		t.Fatalf("CoerceIDs(nil) = %v, want empty", got)
	}
	got = CoerceIDs([]any{"", nil})
	if len(got) != 0 {
		t.Fatalf("CoerceIDs of blanks = %v, want empty", got)
	}
}
