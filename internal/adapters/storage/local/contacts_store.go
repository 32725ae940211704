package local

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vet-agenda/internal/domain/contacts"
	"vet-agenda/internal/ports/stores"
)

// ContactStore implementa contacts.Mirror sobre la Cache (bucket "contacts",
// reordenado por nombre collado en cada escritura).
type ContactStore struct {
	cache Cache
}

func NewContactStore(cache Cache) *ContactStore {
	return &ContactStore{cache: cache}
}

var _ contacts.Mirror = (*ContactStore)(nil)

func (s *ContactStore) load(ctx context.Context) ([]contacts.Contact, error) {
	raw, err := s.cache.ReadAll(ctx, BucketContacts)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []contacts.Contact{}, nil
	}

	var list []contacts.Contact
	if err := json.Unmarshal(raw, &list); err != nil {
		return []contacts.Contact{}, nil
	}
	return list, nil
}

func (s *ContactStore) save(ctx context.Context, list []contacts.Contact) error {
	contacts.SortNatural(list)
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.cache.WriteAll(ctx, BucketContacts, raw)
}

func (s *ContactStore) List(ctx context.Context) ([]contacts.Contact, error) {
	return s.load(ctx)
}

func (s *ContactStore) Get(ctx context.Context, id string) (contacts.Contact, error) {
	list, err := s.load(ctx)
	if err != nil {
		return contacts.Contact{}, err
	}
	for _, c := range list {
		if c.ID == id {
			return c, nil
		}
	}
	return contacts.Contact{}, stores.ErrNotFound
}

func (s *ContactStore) Create(ctx context.Context, c contacts.Contact) (contacts.Contact, error) {
	if strings.TrimSpace(c.ID) == "" {
		return contacts.Contact{}, errors.New("contact id required")
	}

	list, err := s.load(ctx)
	if err != nil {
		return contacts.Contact{}, err
	}
	for _, cur := range list {
		if cur.ID == c.ID {
			return contacts.Contact{}, errors.New("contact already exists")
		}
	}

	list = append(list, c)
	if err := s.save(ctx, list); err != nil {
		return contacts.Contact{}, err
	}
	return c, nil
}

func (s *ContactStore) Update(ctx context.Context, id string, m contacts.Merge) (contacts.Contact, error) {
	list, err := s.load(ctx)
	if err != nil {
		return contacts.Contact{}, err
	}

	for i, cur := range list {
		if cur.ID != id {
			continue
		}
		next := m.Record
		next.ID = cur.ID
		list[i] = next
		if err := s.save(ctx, list); err != nil {
			return contacts.Contact{}, err
		}
		return next, nil
	}
	return contacts.Contact{}, stores.ErrNotFound
}

func (s *ContactStore) Delete(ctx context.Context, id string) error {
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

func (s *ContactStore) ReplaceAll(ctx context.Context, list []contacts.Contact) error {
	return s.save(ctx, append([]contacts.Contact(nil), list...))
}

func (s *ContactStore) Upsert(ctx context.Context, c contacts.Contact) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, cur := range list {
		if cur.ID == c.ID {
			list[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, c)
	}
	return s.save(ctx, list)
}
