package events

import (
	"sort"
	"strconv"
	"sync"

	"vet-agenda/internal/domain/record"
)

// State es el store normalizado en memoria que consume los resultados del
// Service: tabla byID + allIDs ordenado por clave natural (Start asc) +
// índice por contacto. Se alimenta EXCLUSIVAMENTE de round-trips completos
// del orquestador; nadie muta registros acá directamente.
type State struct {
	mu        sync.Mutex
	byID      map[string]Event
	allIDs    []string
	byContact map[string][]string

	// version invalida los selectores memoizados en cada mutación.
	version uint64
	memo    map[string]any
}

func NewState() *State {
	return &State{
		byID:      make(map[string]Event),
		byContact: make(map[string][]string),
		memo:      make(map[string]any),
	}
}

// ReplaceAll limpia y reconstruye todos los índices (resultado de un list).
func (s *State) ReplaceAll(list []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[string]Event, len(list))
	for _, e := range list {
		s.byID[e.ID] = e
	}
	s.reindex()
}

// Upsert inserta o reemplaza un registro reindexando lo necesario,
// incluido el índice por contacto si el contact_id cambió.
func (s *State) Upsert(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[e.ID] = e
	s.reindex()
}

// Remove saca el registro de todos los índices; inexistente = no-op.
func (s *State) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	s.reindex()
}

func (s *State) Get(id string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[id]
	return e, ok
}

// AllIDs retorna los ids en orden natural (Start asc, empate por id).
func (s *State) AllIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.allIDs...)
}

// All retorna los registros en orden natural.
func (s *State) All() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordered()
}

func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// IDsByContact retorna el índice foreign-key contacto -> ids de citas.
func (s *State) IDsByContact(contactID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.byContact[contactID]...)
}

// -------------------------
// Selectores (memoizados por version+args)
// -------------------------

// ByDay agrupa las citas en buckets por día calendario, cada bucket en
// orden cronológico. Las citas sin Start caen en el bucket "".
func (s *State) ByDay() map[string][]Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	const key = "by_day"
	if v, ok := s.memo[key]; ok {
		return v.(map[string][]Event)
	}

	out := make(map[string][]Event)
	for _, e := range s.ordered() {
		k := e.Start.DayKey()
		out[k] = append(out[k], e)
	}
	s.memo[key] = out
	return out
}

// UpcomingForContact filtra por contacto con End >= now, ascendente,
// acotado por limit (<=0 = sin tope).
func (s *State) UpcomingForContact(contactID string, now record.LocalTime, limit int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := "upcoming:" + contactID + ":" + now.String() + ":" + strconv.Itoa(limit)
	if v, ok := s.memo[key]; ok {
		return v.([]Event)
	}

	out := make([]Event, 0)
	for _, id := range s.byContact[contactID] {
		e := s.byID[id]
		if e.End.Before(now) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	s.memo[key] = out
	return out
}

// Search matchea case/diacritic-insensitive sobre título, nombre del
// contacto, ubicación y notas.
func (s *State) Search(query string) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := "search:" + record.Fold(query)
	if v, ok := s.memo[key]; ok {
		return v.([]Event)
	}

	out := make([]Event, 0)
	for _, e := range s.ordered() {
		if record.FoldContains(e.Title, query) ||
			record.FoldContains(e.ContactName, query) ||
			record.FoldContains(e.Location, query) ||
			record.FoldContains(e.Notes, query) {
			out = append(out, e)
		}
	}
	s.memo[key] = out
	return out
}

// Version expone el contador de invalidación (útil en tests de memoización).
func (s *State) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// -------------------------
// internos (caller sostiene el lock)
// -------------------------

func (s *State) reindex() {
	s.allIDs = make([]string, 0, len(s.byID))
	for id := range s.byID {
		s.allIDs = append(s.allIDs, id)
	}
	sort.Slice(s.allIDs, func(i, j int) bool {
		return lessEvent(s.byID[s.allIDs[i]], s.byID[s.allIDs[j]])
	})

	s.byContact = make(map[string][]string)
	for _, id := range s.allIDs {
		e := s.byID[id]
		if e.ContactID == "" {
			continue
		}
		s.byContact[e.ContactID] = append(s.byContact[e.ContactID], id)
	}

	s.version++
	s.memo = make(map[string]any)
}

func (s *State) ordered() []Event {
	out := make([]Event, 0, len(s.allIDs))
	for _, id := range s.allIDs {
		out = append(out, s.byID[id])
	}
	return out
}

// lessEvent es la clave natural: Start asc, empate por id para orden total.
func lessEvent(a, b Event) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.ID < b.ID
}
