package local

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vet-agenda/internal/domain/subjects"
	"vet-agenda/internal/ports/stores"
)

// SubjectStore implementa subjects.Mirror sobre la Cache (bucket "subjects").
type SubjectStore struct {
	cache Cache
}

func NewSubjectStore(cache Cache) *SubjectStore {
	return &SubjectStore{cache: cache}
}

var _ subjects.Mirror = (*SubjectStore)(nil)

func (s *SubjectStore) load(ctx context.Context) ([]subjects.Subject, error) {
	raw, err := s.cache.ReadAll(ctx, BucketSubjects)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []subjects.Subject{}, nil
	}

	var list []subjects.Subject
	if err := json.Unmarshal(raw, &list); err != nil {
		return []subjects.Subject{}, nil
	}
	return list, nil
}

func (s *SubjectStore) save(ctx context.Context, list []subjects.Subject) error {
	subjects.SortNatural(list)
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.cache.WriteAll(ctx, BucketSubjects, raw)
}

func (s *SubjectStore) List(ctx context.Context) ([]subjects.Subject, error) {
	return s.load(ctx)
}

func (s *SubjectStore) Get(ctx context.Context, id string) (subjects.Subject, error) {
	list, err := s.load(ctx)
	if err != nil {
		return subjects.Subject{}, err
	}
	for _, sub := range list {
		if sub.ID == id {
			return sub, nil
		}
	}
	return subjects.Subject{}, stores.ErrNotFound
}

func (s *SubjectStore) Create(ctx context.Context, sub subjects.Subject) (subjects.Subject, error) {
	if strings.TrimSpace(sub.ID) == "" {
		return subjects.Subject{}, errors.New("subject id required")
	}

	list, err := s.load(ctx)
	if err != nil {
		return subjects.Subject{}, err
	}
	for _, cur := range list {
		if cur.ID == sub.ID {
			return subjects.Subject{}, errors.New("subject already exists")
		}
	}

	list = append(list, sub)
	if err := s.save(ctx, list); err != nil {
		return subjects.Subject{}, err
	}
	return sub, nil
}

func (s *SubjectStore) Update(ctx context.Context, id string, m subjects.Merge) (subjects.Subject, error) {
	list, err := s.load(ctx)
	if err != nil {
		return subjects.Subject{}, err
	}

	for i, cur := range list {
		if cur.ID != id {
			continue
		}
		next := m.Record
		next.ID = cur.ID
		list[i] = next
		if err := s.save(ctx, list); err != nil {
			return subjects.Subject{}, err
		}
		return next, nil
	}
	return subjects.Subject{}, stores.ErrNotFound
}

func (s *SubjectStore) Delete(ctx context.Context, id string) error {
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

func (s *SubjectStore) ReplaceAll(ctx context.Context, list []subjects.Subject) error {
	return s.save(ctx, append([]subjects.Subject(nil), list...))
}

func (s *SubjectStore) Upsert(ctx context.Context, sub subjects.Subject) error {
	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i, cur := range list {
		if cur.ID == sub.ID {
			list[i] = sub
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, sub)
	}
	return s.save(ctx, list)
}
