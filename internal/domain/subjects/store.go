package subjects

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"vet-agenda/internal/domain/record"
)

// State es el store normalizado de mascotas: byID + allIDs (nombre
// collado asc) + índice foreign-key tutor -> ids de mascotas. Si el
// ContactID de una mascota cambia, el upsert la reindexa de un tutor
// al otro.
type State struct {
	mu        sync.Mutex
	byID      map[string]Subject
	allIDs    []string
	byContact map[string][]string

	coll *collate.Collator

	version uint64
	memo    map[string]any
}

func NewState() *State {
	return &State{
		byID:      make(map[string]Subject),
		byContact: make(map[string][]string),
		coll:      collate.New(language.BrazilianPortuguese, collate.Loose),
		memo:      make(map[string]any),
	}
}

func (s *State) ReplaceAll(list []Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]Subject, len(list))
	for _, sub := range list {
		s.byID[sub.ID] = sub
	}
	s.reindex()
}

func (s *State) Upsert(sub Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[sub.ID] = sub
	s.reindex()
}

func (s *State) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	s.reindex()
}

func (s *State) Get(id string) (Subject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.byID[id]
	return sub, ok
}

func (s *State) AllIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.allIDs...)
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// IDsByContact es el índice foreign-key tutor -> mascotas.
func (s *State) IDsByContact(contactID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.byContact[contactID]...)
}

// ByContact retorna los registros del tutor en orden natural (memoizado).
func (s *State) ByContact(contactID string) []Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := "by_contact:" + contactID
	if v, ok := s.memo[key]; ok {
		return v.([]Subject)
	}

	out := make([]Subject, 0, len(s.byContact[contactID]))
	for _, id := range s.byContact[contactID] {
		out = append(out, s.byID[id])
	}
	s.memo[key] = out
	return out
}

// Search matchea case/diacritic-insensitive sobre nombre, raza y color.
func (s *State) Search(query string) []Subject {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := "search:" + record.Fold(query)
	if v, ok := s.memo[key]; ok {
		return v.([]Subject)
	}

	out := make([]Subject, 0)
	for _, id := range s.allIDs {
		sub := s.byID[id]
		if record.FoldContains(sub.Name, query) ||
			record.FoldContains(sub.Breed, query) ||
			record.FoldContains(sub.Color, query) {
			out = append(out, sub)
		}
	}
	s.memo[key] = out
	return out
}

func (s *State) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *State) reindex() {
	s.allIDs = make([]string, 0, len(s.byID))
	for id := range s.byID {
		s.allIDs = append(s.allIDs, id)
	}
	sort.Slice(s.allIDs, func(i, j int) bool {
		a, b := s.byID[s.allIDs[i]], s.byID[s.allIDs[j]]
		if cmp := s.coll.CompareString(a.Name, b.Name); cmp != 0 {
			return cmp < 0
		}
		return a.ID < b.ID
	})

	s.byContact = make(map[string][]string)
	for _, id := range s.allIDs {
		sub := s.byID[id]
		if sub.ContactID == "" {
			continue
		}
		s.byContact[sub.ContactID] = append(s.byContact[sub.ContactID], id)
	}

	s.version++
	s.memo = make(map[string]any)
}
