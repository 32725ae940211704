package contacts

import (
	"reflect"
	"testing"
)

func seedState() *State {
	s := NewState()
	s.ReplaceAll([]Contact{
		{ID: "c-1", Name: "Álvaro", Phone: "+55 11 99999-0000"},
		{ID: "c-2", Name: "beatriz", Email: "bia@example.com"},
		{ID: "c-3", Name: "Ana", Address: Address{City: "São Paulo"}},
	})
	return s
}

func TestState_CollatedOrder(t *testing.T) {
	s := seedState()

	// collation pt-BR: Álvaro ordena junto a "Alvaro", case-insensitive
	want := []string{"c-1", "c-3", "c-2"} // Álvaro, Ana, beatriz
	if got := s.AllIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("AllIDs = %v, want %v", got, want)
	}
}

func TestState_SearchDiacriticInsensitive(t *testing.T) {
	s := seedState()

	got := s.Search("alvaro")
	if len(got) != 1 || got[0].ID != "c-1" {
		t.Fatalf("Search(alvaro) = %+v", got)
	}

	got = s.Search("sao paulo")
	if len(got) != 1 || got[0].ID != "c-3" {
		t.Fatalf("Search(sao paulo) = %+v", got)
	}
}

func TestState_MemoInvalidation(t *testing.T) {
	s := seedState()

	a := s.Search("a")
	b := s.Search("a")
	if len(a) > 0 && &a[0] != &b[0] {
		t.Fatalf("repeated search must return the memoized slice")
	}

	v := s.Version()
	s.Upsert(Contact{ID: "c-4", Name: "Carlos"})
	if s.Version() == v {
		t.Fatalf("mutation must bump the version")
	}
}

func TestState_RemoveAndLen(t *testing.T) {
	s := seedState()
	s.Remove("c-2")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if _, ok := s.Get("c-2"); ok {
		t.Fatalf("removed contact still present")
	}
	s.Remove("ghost") // no-op
	if s.Len() != 2 {
		t.Fatalf("Len = %d after ghost remove", s.Len())
	}
}
