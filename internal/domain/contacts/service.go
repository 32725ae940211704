package contacts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-agenda/internal/platform/logger"
	"vet-agenda/internal/ports/auth"
	"vet-agenda/internal/ports/geo"
	"vet-agenda/internal/ports/stores"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service orquesta el sync de tutores: misma política cloud-first /
// mirror-fallback que las citas, más el paso de geocodificación al crear
// o cuando cambia la dirección.
type Service struct {
	remote   Store
	local    Mirror
	sessions auth.SessionSource
	geocoder geo.Geocoder // opcional; nil = no geocodificar

	now func() time.Time
	log logger.Logger
}

func NewService(remote Store, local Mirror, sessions auth.SessionSource, geocoder geo.Geocoder) *Service {
	return &Service{
		remote:   remote,
		local:    local,
		sessions: sessions,
		geocoder: geocoder,
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

func (s *Service) List(ctx context.Context) ([]Contact, error) {
	if !s.online(ctx) {
		return s.local.List(ctx)
	}

	list, err := s.remote.List(ctx)
	if err != nil {
		if errors.Is(err, stores.ErrUnreachable) {
			s.warn("contacts list degraded to local mirror", err)
			return s.local.List(ctx)
		}
		return nil, err
	}

	if err := s.local.ReplaceAll(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id string) (Contact, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Contact{}, ErrInvalidInput
	}

	if !s.online(ctx) {
		return s.local.Get(ctx, id)
	}

	c, err := s.remote.Get(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) || errors.Is(err, stores.ErrUnreachable) {
			if errors.Is(err, stores.ErrUnreachable) {
				s.warn("contacts get degraded to local mirror", err)
			}
			return s.local.Get(ctx, id)
		}
		return Contact{}, err
	}

	if err := s.local.Upsert(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, patch ContactPatch) (Contact, error) {
	n := Normalize(nil, patch, s.now())
	s.refreshGeo(ctx, Address{}, &n, &patch)

	if !s.online(ctx) {
		n.ID = uuid.NewString()
		return s.local.Create(ctx, n)
	}

	created, err := s.remote.Create(ctx, n)
	if err != nil {
		return Contact{}, err
	}
	if err := s.local.Upsert(ctx, created); err != nil {
		return Contact{}, err
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, patch ContactPatch) (Contact, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Contact{}, ErrInvalidInput
	}

	if !s.online(ctx) {
		prev, err := s.local.Get(ctx, id)
		if err != nil {
			return Contact{}, err
		}
		n := Normalize(&prev, patch, s.now())
		s.refreshGeo(ctx, prev.Address, &n, &patch)
		return s.local.Update(ctx, id, Merge{Record: n, Doc: patch.DocPatch(n)})
	}

	prev, err := s.local.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, stores.ErrNotFound) {
			return Contact{}, err
		}
		prev, err = s.remote.Get(ctx, id)
		if err != nil {
			return Contact{}, err
		}
	}

	n := Normalize(&prev, patch, s.now())
	s.refreshGeo(ctx, prev.Address, &n, &patch)
	m := Merge{Record: n, Doc: patch.DocPatch(n)}

	updated, err := s.remote.Update(ctx, id, m)
	if errors.Is(err, stores.ErrNotFound) {
		updated, err = s.updateByFallback(ctx, id, m)
	}
	if err != nil {
		return Contact{}, err
	}

	if err := s.local.Upsert(ctx, updated); err != nil {
		return Contact{}, err
	}
	return updated, nil
}

func (s *Service) updateByFallback(ctx context.Context, id string, m Merge) (Contact, error) {
	f, ok := s.remote.(Finder)
	if !ok {
		return Contact{}, stores.ErrNotFound
	}
	alt, err := f.FindByField(ctx, "id", id)
	if err != nil {
		return Contact{}, err
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

// refreshGeo recalcula la coordenada SOLO si la dirección efectivamente
// cambió respecto de prevAddr. Falla de geocoder no es fatal: se queda la
// coordenada previa (o ninguna) y el registro sigue siendo usable.
func (s *Service) refreshGeo(ctx context.Context, prevAddr Address, n *Contact, patch *ContactPatch) {
	if s.geocoder == nil || !patch.TouchesAddress() {
		return
	}
	if n.Address == prevAddr || n.Address.IsZero() {
		return
	}

	coord, err := s.geocoder.Locate(ctx, n.Address.GeoQuery())
	if err != nil {
		s.warn("geocode failed, keeping previous coordinate", err)
		return
	}
	n.Geo = &coord
	patch.Geo = &coord
}

func (s *Service) warn(msg string, err error) {
	if s.log == nil {
		return
	}
	s.log.Warn(msg, map[string]any{"error": err.Error()})
}
