package contacts

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"vet-agenda/internal/domain/record"
)

// State es el store normalizado de tutores: byID + allIDs ordenado por
// nombre con collation locale-aware (pt-BR, insensible a mayúsculas y
// diacríticos), alimentado solo por resultados del Service.
type State struct {
	mu     sync.Mutex
	byID   map[string]Contact
	allIDs []string

	coll *collate.Collator

	version uint64
	memo    map[string]any
}

func NewState() *State {
	return &State{
		byID: make(map[string]Contact),
		coll: collate.New(language.BrazilianPortuguese, collate.Loose),
		memo: make(map[string]any),
	}
}

func (s *State) ReplaceAll(list []Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]Contact, len(list))
	for _, c := range list {
		s.byID[c.ID] = c
	}
	s.reindex()
}

func (s *State) Upsert(c Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[c.ID] = c
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

func (s *State) Get(id string) (Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	return c, ok
}

func (s *State) AllIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.allIDs...)
}

func (s *State) All() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Contact, 0, len(s.allIDs))
	for _, id := range s.allIDs {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Search matchea case/diacritic-insensitive sobre nombre, teléfono, email,
// ciudad y notas. Memoizado por version+query.
func (s *State) Search(query string) []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := "search:" + record.Fold(query)
	if v, ok := s.memo[key]; ok {
		return v.([]Contact)
	}

	out := make([]Contact, 0)
	for _, id := range s.allIDs {
		c := s.byID[id]
		if record.FoldContains(c.Name, query) ||
			record.FoldContains(c.Phone, query) ||
			record.FoldContains(c.Email, query) ||
			record.FoldContains(c.Address.City, query) ||
			record.FoldContains(c.Notes, query) {
			out = append(out, c)
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

	s.version++
	s.memo = make(map[string]any)
}
