package events

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

// Service es el orquestador de sync de citas: cloud-first con el remoto
// como fuente de verdad cuando hay sesión, y el mirror local como único
// store cuando no la hay. Cada operación es independiente (sin daemon de
// reconciliación, sin retries: el caller decide si reintenta).
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

// WithLogger habilita logging (opcional; nil = silencioso).
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

// List retorna la colección completa. Con sesión: fetch remoto ordenado y
// overwrite total del mirror. Sin sesión (o remoto inalcanzable): mirror
// tal cual, vacío incluido.
func (s *Service) List(ctx context.Context) ([]Event, error) {
	if !s.online(ctx) {
		return s.local.List(ctx)
	}

	list, err := s.remote.List(ctx)
	if err != nil {
		if errors.Is(err, stores.ErrUnreachable) {
			s.warn("events list degraded to local mirror", err)
			return s.local.List(ctx)
		}
		return nil, err
	}

	if err := s.local.ReplaceAll(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Get busca primero en el remoto (y refresca el mirror con lo traído);
// NotFound remoto cae al mirror. Falla NotFound solo si ninguno lo tiene.
func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}

	if !s.online(ctx) {
		return s.local.Get(ctx, id)
	}

	e, err := s.remote.Get(ctx, id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) || errors.Is(err, stores.ErrUnreachable) {
			if errors.Is(err, stores.ErrUnreachable) {
				s.warn("events get degraded to local mirror", err)
			}
			return s.local.Get(ctx, id)
		}
		return Event{}, err
	}

	if err := s.local.Upsert(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Create normaliza el payload y delega la asignación de id: al remoto si
// hay sesión (el id del payload se ignora allá), o a un uuid local si no.
// El id retornado es el autoritativo para operaciones posteriores.
func (s *Service) Create(ctx context.Context, patch EventPatch) (Event, error) {
	n := Normalize(nil, patch, s.now())

	if !s.online(ctx) {
		n.ID = uuid.NewString()
		return s.local.Create(ctx, n)
	}

	created, err := s.remote.Create(ctx, n)
	if err != nil {
		return Event{}, err
	}
	if err := s.local.Upsert(ctx, created); err != nil {
		return Event{}, err
	}
	return created, nil
}

// Update normaliza el patch contra el último estado conocido ANTES de
// persistir, en ambos paths, para que remoto y mirror no diverjan en los
// campos derivados. NotFound remoto por clave primaria intenta el lookup
// secundario por el campo "id" denormalizado antes de rendirse.
func (s *Service) Update(ctx context.Context, id string, patch EventPatch) (Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Event{}, ErrInvalidInput
	}

	if !s.online(ctx) {
		prev, err := s.local.Get(ctx, id)
		if err != nil {
			return Event{}, err
		}
		n := Normalize(&prev, patch, s.now())
		return s.local.Update(ctx, id, Merge{Record: n, Doc: patch.DocPatch(n)})
	}

	prev, err := s.local.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, stores.ErrNotFound) {
			return Event{}, err
		}
		prev, err = s.remote.Get(ctx, id)
		if err != nil {
			return Event{}, err
		}
	}

	n := Normalize(&prev, patch, s.now())
	m := Merge{Record: n, Doc: patch.DocPatch(n)}

	updated, err := s.remote.Update(ctx, id, m)
	if errors.Is(err, stores.ErrNotFound) {
		updated, err = s.updateByFallback(ctx, id, m)
	}
	if err != nil {
		return Event{}, err
	}

	if err := s.local.Upsert(ctx, updated); err != nil {
		return Event{}, err
	}
	return updated, nil
}

// updateByFallback reintenta el update localizando el documento por su
// campo "id" denormalizado (documentos migrados pueden tener doc id distinto).
func (s *Service) updateByFallback(ctx context.Context, id string, m Merge) (Event, error) {
	f, ok := s.remote.(Finder)
	if !ok {
		return Event{}, stores.ErrNotFound
	}
	alt, err := f.FindByField(ctx, "id", id)
	if err != nil {
		return Event{}, err
	}
	return s.remote.Update(ctx, alt.ID, m)
}

// Delete borra remoto primero y luego el mirror. Borrar una entrada local
// inexistente es no-op; NotFound solo si ningún store conocía el registro.
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
		// ausente en remoto: NotFound real solo si el mirror tampoco lo tiene
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
