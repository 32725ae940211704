package subjects

import (
	"reflect"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestNormalize_Defaults(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	sub := Normalize(nil, SubjectPatch{Name: strPtr("  Théo ")}, now)
	if sub.Name != "Théo" {
		t.Fatalf("Name = %q", sub.Name)
	}
	if sub.Species != SpeciesDog {
		t.Fatalf("Species = %q, want default dog", sub.Species)
	}
	if sub.Sex != SexUnknown {
		t.Fatalf("Sex = %q, want default unknown", sub.Sex)
	}
	if sub.CreatedAt.ClientMS != now.UnixMilli() {
		t.Fatalf("CreatedAt not stamped")
	}
}

func TestNormalize_CoercesNumericContactID(t *testing.T) {
	sub := Normalize(nil, SubjectPatch{ContactID: float64(42)}, time.Now())
	if sub.ContactID != "42" {
		t.Fatalf("ContactID = %q, want canonical string", sub.ContactID)
	}
}

func TestNormalize_NegativeMeasuresIgnored(t *testing.T) {
	age := -3
	weight := -1.5
	prev := Normalize(nil, SubjectPatch{Name: strPtr("Mia")}, time.Now())
	prev.AgeMonths = 12
	prev.WeightKG = 4.2

	sub := Normalize(&prev, SubjectPatch{AgeMonths: &age, WeightKG: &weight}, time.Now())
	if sub.AgeMonths != 12 || sub.WeightKG != 4.2 {
		t.Fatalf("negative measures must be ignored: %+v", sub)
	}
}

func seedState() *State {
	s := NewState()
	s.ReplaceAll([]Subject{
		{ID: "p-1", Name: "Théo", ContactID: "c-1", Species: SpeciesDog, Breed: "beagle"},
		{ID: "p-2", Name: "Mia", ContactID: "c-1", Species: SpeciesCat},
		{ID: "p-3", Name: "Bob", ContactID: "c-1", Species: SpeciesDog},
		{ID: "p-4", Name: "Luna", ContactID: "c-2", Species: SpeciesCat},
	})
	return s
}

func TestState_ContactIndex(t *testing.T) {
	s := seedState()

	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	if got := s.IDsByContact("c-1"); len(got) != 3 {
		t.Fatalf("IDsByContact(c-1) = %v, want 3 ids", got)
	}
	if got := s.IDsByContact("c-2"); !reflect.DeepEqual(got, []string{"p-4"}) {
		t.Fatalf("IDsByContact(c-2) = %v", got)
	}
	if got := s.IDsByContact("c-9"); len(got) != 0 {
		t.Fatalf("IDsByContact(c-9) = %v, want empty", got)
	}
}

func TestState_UpsertMovesSubjectBetweenContacts(t *testing.T) {
	s := seedState()

	sub, _ := s.Get("p-2")
	sub.ContactID = "c-2"
	s.Upsert(sub)

	if got := s.IDsByContact("c-1"); len(got) != 2 {
		t.Fatalf("IDsByContact(c-1) = %v, want 2 ids left", got)
	}
	got := s.IDsByContact("c-2")
	if len(got) != 2 {
		t.Fatalf("IDsByContact(c-2) = %v, want 2 ids", got)
	}
	if s.Len() != 4 {
		t.Fatalf("Len = %d, moving must not duplicate", s.Len())
	}
}

func TestState_ByContactOrdered(t *testing.T) {
	s := seedState()

	got := s.ByContact("c-1")
	if len(got) != 3 {
		t.Fatalf("ByContact(c-1) = %+v", got)
	}
	// orden collado por nombre: Bob, Mia, Théo
	if got[0].Name != "Bob" || got[1].Name != "Mia" || got[2].Name != "Théo" {
		t.Fatalf("order = %q, %q, %q", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestState_SearchFoldsAccents(t *testing.T) {
	s := seedState()

	got := s.Search("theo")
	if len(got) != 1 || got[0].ID != "p-1" {
		t.Fatalf("Search(theo) = %+v", got)
	}
	got = s.Search("beagle")
	if len(got) != 1 || got[0].ID != "p-1" {
		t.Fatalf("Search(beagle) = %+v", got)
	}
}
