package subjects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-agenda/internal/platform/logger"
	"vet-agenda/internal/ports/auth"
	"vet-agenda/internal/ports/stores"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service orquesta el sync de mascotas (sub-recurso de tutores): misma
// política cloud-first / mirror-fallback que los otros dos tipos.
type Service struct {
	remote   Store
	local    Mirror
	sessions auth.SessionSource

	now func() time.Time
	log logger.Logger
}

func NewService(remote Store, local Mirror, sessions auth.SessionSource) *Service {
	return &Service{
		remote:   remote,
		local:    local,
		sessions: sessions,
		now:      time.Now,
	}
}

func (s *Service) WithLogger(l logger.Logger) *Service {
	s.log = l
	return s
}

func (s *Service) online(ctx context.Context) bool {
	if s.sessions == nil {
		return false
	}
	_, ok := s.sessions.Current(ctx)
	return ok
}

func (s *Service) List(ctx context.Context) ([]Subject, error) {
	if !s.online(ctx) {
		return s.local.List(ctx)
	}

	list, err := s.remote.List(ctx)
	if err != nil {
		if errors.Is(err, stores.ErrUnreachable) {
			s.warn("subjects list degraded to local mirror", err)
			return s.local.List(ctx)
		}
		return nil, err
	}

	if err := s.local.ReplaceAll(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListByContact filtra la colección (ya sincronizada) por tutor dueño.
func (s *Service) ListByContact(ctx context.Context, contactID string) ([]Subject, error) {
	contactID = strings.TrimSpace(contactID)
	if contactID == "" {
		return nil, ErrInvalidInput
	}

	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Subject, 0)
	for _, sub := range list {
		if sub.ContactID == contactID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Subject, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Subject{}, ErrInvalidInput
	}

	if !s.online(ctx) {
		return s.local.Get(ctx, id)
	}

	sub, err := s.remote.Get(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) || errors.Is(err, stores.ErrUnreachable) {
			if errors.Is(err, stores.ErrUnreachable) {
				s.warn("subjects get degraded to local mirror", err)
			}
			return s.local.Get(ctx, id)
		}
		return Subject{}, err
	}

	if err := s.local.Upsert(ctx, sub); err != nil {
		return Subject{}, err
	}
	return sub, nil
}

func (s *Service) Create(ctx context.Context, patch SubjectPatch) (Subject, error) {
	n := Normalize(nil, patch, s.now())
	if n.ContactID == "" {
		return Subject{}, ErrInvalidInput
	}

	if !s.online(ctx) {
		n.ID = uuid.NewString()
		return s.local.Create(ctx, n)
	}

	created, err := s.remote.Create(ctx, n)
	if err != nil {
		return Subject{}, err
	}
	if err := s.local.Upsert(ctx, created); err != nil {
		return Subject{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch SubjectPatch) (Subject, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Subject{}, ErrInvalidInput
	}

	if !s.online(ctx) {
		prev, err := s.local.Get(ctx, id)
		if err != nil {
			return Subject{}, err
		}
		n := Normalize(&prev, patch, s.now())
		return s.local.Update(ctx, id, Merge{Record: n, Doc: patch.DocPatch(n)})
	}

	prev, err := s.local.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, stores.ErrNotFound) {
			return Subject{}, err
		}
		prev, err = s.remote.Get(ctx, id)
		if err != nil {
			return Subject{}, err
		}
	}

	n := Normalize(&prev, patch, s.now())
	m := Merge{Record: n, Doc: patch.DocPatch(n)}

	updated, err := s.remote.Update(ctx, id, m)
	if errors.Is(err, stores.ErrNotFound) {
		updated, err = s.updateByFallback(ctx, id, m)
	}
	if err != nil {
		return Subject{}, err
	}

	if err := s.local.Upsert(ctx, updated); err != nil {
		return Subject{}, err
	}
	return updated, nil
}

func (s *Service) updateByFallback(ctx context.Context, id string, m Merge) (Subject, error) {
	f, ok := s.remote.(Finder)
	if !ok {
		return Subject{}, stores.ErrNotFound
	}
	alt, err := f.FindByField(ctx, "id", id)
	if err != nil {
		return Subject{}, err
	}
	return s.remote.Update(ctx, alt.ID, m)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	if !s.online(ctx) {
		err := s.local.Delete(ctx, id)
		if errors.Is(err, stores.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		if !errors.Is(err, stores.ErrNotFound) {
			return err
		}
		if _, lerr := s.local.Get(ctx, id); lerr != nil {
			return err
		}
	}

	err := s.local.Delete(ctx, id)
	if errors.Is(err, stores.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) warn(msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(msg, map[string]any{"error": err.Error()})
}
