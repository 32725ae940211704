package local

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vet-agenda/internal/domain/events"
	"vet-agenda/internal/ports/stores"
)

// EventStore implementa events.Mirror sobre la Cache: la colección entera
// vive como un blob JSON en el bucket "events" y se reordena por clave
// natural en cada escritura.
type EventStore struct {
	cache Cache
}

func NewEventStore(cache Cache) *EventStore {
	return &EventStore{cache: cache}
}

var _ events.Mirror = (*EventStore)(nil)

func (s *EventStore) load(ctx context.Context) ([]events.Event, error) {
	raw, err := s.cache.ReadAll(ctx, BucketEvents)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []events.Event{}, nil
	}

	var list []events.Event
	if err := json.Unmarshal(raw, &list); err != nil {
		// blob corrupto = colección vacía, nunca fatal
		return []events.Event{}, nil
	}
	return list, nil
}

func (s *EventStore) save(ctx context.Context, list []events.Event) error {
	events.SortNatural(list)
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.cache.WriteAll(ctx, BucketEvents, raw)
}

func (s *EventStore) List(ctx context.Context) ([]events.Event, error) {
	return s.load(ctx)
}

func (s *EventStore) Get(ctx context.Context, id string) (events.Event, error) {
	list, err := s.load(ctx)
	if err != nil {
		return events.Event{}, err
	}
	for _, e := range list {
		if e.ID == id {
			return e, nil
		}
	}
	return events.Event{}, stores.ErrNotFound
}

func (s *EventStore) Create(ctx context.Context, e events.Event) (events.Event, error) {
	if strings.TrimSpace(e.ID) == "" {
		return events.Event{}, errors.New("event id required")
	}

	list, err := s.load(ctx)
	if err != nil {
		return events.Event{}, err
	}
	for _, cur := range list {
		if cur.ID == e.ID {
			return events.Event{}, errors.New("event already exists")
		}
	}

	list = append(list, e)
	if err := s.save(ctx, list); err != nil {
		return events.Event{}, err
	}
	return e, nil
}

func (s *EventStore) Update(ctx context.Context, id string, m events.Merge) (events.Event, error) {
	list, err := s.load(ctx)
	if err != nil {
		return events.Event{}, err
	}

	for i, cur := range list {
		if cur.ID != id {
			continue
		}
		next := m.Record
		next.ID = cur.ID
		list[i] = next
		if err := s.save(ctx, list); err != nil {
			return events.Event{}, err
		}
		return next, nil
	}
	return events.Event{}, stores.ErrNotFound
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := list[:0]
	found := false
	for _, cur := range list {
		if cur.ID == id {
			found = true
			continue
		}
		kept = append(kept, cur)
	}
	if !found {
		return stores.ErrNotFound
	}
	return s.save(ctx, kept)
}

func (s *EventStore) ReplaceAll(ctx context.Context, list []events.Event) error {
	return s.save(ctx, append([]events.Event(nil), list...))
}

func (s *EventStore) Upsert(ctx context.Context, e events.Event) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, cur := range list {
		if cur.ID == e.ID {
			list[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, e)
	}
	return s.save(ctx, list)
}
