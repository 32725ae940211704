package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"vet-agenda/internal/docstore"
)

// docsRepo guarda los documentos en memoria, particionados por scope
// (cuenta + colección). Útil en dev y en los tests end-to-end.
type docsRepo struct {
	mu   sync.RWMutex
	byID map[string]map[string]docstore.Document
}

func NewDocsRepo() docstore.Repository {
	return &docsRepo{
		byID: make(map[string]map[string]docstore.Document),
	}
}

func scopeKey(scope docstore.Scope) string {
	return scope.AccountID + "/" + scope.Collection
}

func (r *docsRepo) List(ctx context.Context, scope docstore.Scope) ([]docstore.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]docstore.Document, 0)
	for _, d := range r.byID[scopeKey(scope)] {
		out = append(out, cloneDoc(d))
	}
	return out, nil
}

func (r *docsRepo) Get(ctx context.Context, scope docstore.Scope, id string) (docstore.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[scopeKey(scope)][id]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return cloneDoc(d), nil
}

func (r *docsRepo) Create(ctx context.Context, scope docstore.Scope, d docstore.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("document id required")
	}

	key := scopeKey(scope)
	if r.byID[key] == nil {
		r.byID[key] = make(map[string]docstore.Document)
	}
	if _, exists := r.byID[key][d.ID]; exists {
		return errors.New("document already exists")
	}

	r.byID[key][d.ID] = cloneDoc(d)
	return nil
}

func (r *docsRepo) Update(ctx context.Context, scope docstore.Scope, d docstore.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scopeKey(scope)
	if _, exists := r.byID[key][d.ID]; !exists {
		return docstore.ErrNotFound
	}
	r.byID[key][d.ID] = cloneDoc(d)
	return nil
}

func (r *docsRepo) Delete(ctx context.Context, scope docstore.Scope, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := scopeKey(scope)
	if _, exists := r.byID[key][id]; !exists {
		return docstore.ErrNotFound
	}
	delete(r.byID[key], id)
	return nil
}

// cloneDoc copia el nivel superior de Fields para que los callers no
// muten el estado interno del repo.
func cloneDoc(d docstore.Document) docstore.Document {
	fields := make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}
	d.Fields = fields
	return d
}
