package docstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-agenda/internal/domain/record"
)

// Service implementa la semántica documental del agenda: ids asignados
// por el servidor, campo "id" denormalizado dentro del payload, merge
// patch recursivo y timestamps de servidor en cada escritura.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// ListFilter: Order ordena por un campo del payload; Field/Value filtra
// por igualdad (comparación sobre la forma string canónica).
type ListFilter struct {
	Order string
	Field string
	Value string
}

func (s *Service) List(ctx context.Context, scope Scope, filter ListFilter) ([]Document, error) {
	docs, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, err
	}

	if filter.Field != "" {
		kept := docs[:0]
		for _, d := range docs {
			if record.CoerceID(d.Fields[filter.Field]) == filter.Value {
				kept = append(kept, d)
			}
		}
		docs = kept
	}

	if filter.Order != "" {
		key := filter.Order
		sort.SliceStable(docs, func(i, j int) bool {
			a := record.CoerceID(docs[i].Fields[key])
			b := record.CoerceID(docs[j].Fields[key])
			if a != b {
				return a < b
			}
			return docs[i].ID < docs[j].ID
		})
	}

	return docs, nil
}

func (s *Service) Get(ctx context.Context, scope Scope, id string) (Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Document{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, scope, id)
}

// Create asigna el id en el servidor (cualquier "id" del payload se
// ignora) y lo denormaliza dentro del payload para lookups secundarios.
func (s *Service) Create(ctx context.Context, scope Scope, fields map[string]any) (Document, error) {
	now := s.now()

	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" || k == "created_at" || k == "updated_at" {
			continue
		}
		clean[k] = v
	}

	d := Document{
		ID:        uuid.NewString(),
		Fields:    clean,
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.Fields["id"] = d.ID

	if err := s.repo.Create(ctx, scope, d); err != nil {
		return Document{}, err
	}
	return d, nil
}

// Patch aplica merge recursivo: sub-objetos mapa se mergean campo a campo,
// el resto (listas incluidas) se reemplaza. updated_at se refresca siempre.
func (s *Service) Patch(ctx context.Context, scope Scope, id string, patch map[string]any) (Document, error) {
	d, err := s.Get(ctx, scope, id)
	if err != nil {
		return Document{}, err
	}

	clean := make(map[string]any, len(patch))
	for k, v := range patch {
		if k == "id" || k == "created_at" || k == "updated_at" {
			continue
		}
		clean[k] = v
	}

	d.Fields = mergeFields(d.Fields, clean)
	d.Fields["id"] = d.ID
	d.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, scope, d); err != nil {
		return Document{}, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, scope Scope, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, scope, id)
}

func mergeFields(prev, patch map[string]any) map[string]any {
	out := make(map[string]any, len(prev)+len(patch))
	for k, v := range prev {
		out[k] = v
	}
	for k, v := range patch {
		pm, pok := out[k].(map[string]any)
		vm, vok := v.(map[string]any)
		if pok && vok {
			out[k] = mergeFields(pm, vm)
			continue
		}
		out[k] = v
	}
	return out
}
