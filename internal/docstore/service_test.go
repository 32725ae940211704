package docstore

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byScope map[Scope]map[string]Document
}

func newTestRepo() *testRepo {
	return &testRepo{byScope: map[Scope]map[string]Document{}}
}

func (r *testRepo) bucket(scope Scope) map[string]Document {
	b, ok := r.byScope[scope]
	if !ok {
		b = map[string]Document{}
		r.byScope[scope] = b
	}
	return b
}

func (r *testRepo) List(ctx context.Context, scope Scope) ([]Document, error) {
	out := make([]Document, 0)
	for _, d := range r.bucket(scope) {
		out = append(out, d)
	}
	return out, nil
}

func (r *testRepo) Get(ctx context.Context, scope Scope, id string) (Document, error) {
	d, ok := r.bucket(scope)[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) Create(ctx context.Context, scope Scope, d Document) error {
	r.bucket(scope)[d.ID] = d
	return nil
}

func (r *testRepo) Update(ctx context.Context, scope Scope, d Document) error {
	if _, ok := r.bucket(scope)[d.ID]; !ok {
		return ErrNotFound
	}
	r.bucket(scope)[d.ID] = d
	return nil
}

func (r *testRepo) Delete(ctx context.Context, scope Scope, id string) error {
	if _, ok := r.bucket(scope)[id]; !ok {
		return ErrNotFound
	}
	delete(r.bucket(scope), id)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

var testScope = Scope{AccountID: "acct-1", Collection: "events"}

// -------------------------
// Tests
// -------------------------

func TestService_CreateAssignsServerID(t *testing.T) {
	svc, _ := newTestService()

	d, err := svc.Create(context.Background(), testScope, map[string]any{
		"id":    "client-wants-this",
		"title": "Consulta",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if d.ID == "" || d.ID == "client-wants-this" {
		t.Fatalf("ID = %q, client payload must not choose the id", d.ID)
	}
	if d.Fields["id"] != d.ID {
		t.Fatalf("denormalized id = %v, want %q", d.Fields["id"], d.ID)
	}
	if d.Fields["title"] != "Consulta" {
		t.Fatalf("Fields = %v", d.Fields)
	}
	if d.CreatedAt.IsZero() || !d.CreatedAt.Equal(d.UpdatedAt) {
		t.Fatalf("timestamps = %v / %v", d.CreatedAt, d.UpdatedAt)
	}
}

func TestService_PatchMergesRecursively(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, testScope, map[string]any{
		"title": "Consulta",
		"billing": map[string]any{
			"amount_cents": float64(15000),
			"method":       "pix",
			"installments": []any{map[string]any{"paid": false}},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	p, err := svc.Patch(ctx, testScope, d.ID, map[string]any{
		"billing": map[string]any{
			"paid":         true,
			"installments": []any{map[string]any{"paid": true}},
		},
	})
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}

	b := p.Fields["billing"].(map[string]any)
	if b["method"] != "pix" || b["amount_cents"] != float64(15000) {
		t.Fatalf("untouched nested fields must survive: %v", b)
	}
	if b["paid"] != true {
		t.Fatalf("patched nested field missing: %v", b)
	}
	// las listas se reemplazan completas, no se mergean
	inst := b["installments"].([]any)
	if len(inst) != 1 || inst[0].(map[string]any)["paid"] != true {
		t.Fatalf("installments = %v", inst)
	}
	if p.Fields["title"] != "Consulta" {
		t.Fatalf("top-level untouched field missing: %v", p.Fields)
	}
}

func TestService_PatchCannotRewriteID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, testScope, map[string]any{"title": "x"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	p, err := svc.Patch(ctx, testScope, d.ID, map[string]any{"id": "hijack"})
	if err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if p.ID != d.ID || p.Fields["id"] != d.ID {
		t.Fatalf("id must be immutable: %+v", p)
	}
}

func TestService_ListFilterAndOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mk := func(fields map[string]any) Document {
		d, err := svc.Create(ctx, testScope, fields)
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		return d
	}
	mk(map[string]any{"start": "2025-03-11T09:00:00", "contact_id": "c-1"})
	mk(map[string]any{"start": "2025-03-10T09:00:00", "contact_id": "c-2"})
	mk(map[string]any{"start": "2025-03-12T09:00:00", "contact_id": "c-1"})

	docs, err := svc.List(ctx, testScope, ListFilter{Order: "start"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("docs = %d", len(docs))
	}
	if docs[0].Fields["start"] != "2025-03-10T09:00:00" || docs[2].Fields["start"] != "2025-03-12T09:00:00" {
		t.Fatalf("order = %v, %v, %v", docs[0].Fields["start"], docs[1].Fields["start"], docs[2].Fields["start"])
	}

	docs, err = svc.List(ctx, testScope, ListFilter{Field: "contact_id", Value: "c-1"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("filtered docs = %d, want 2", len(docs))
	}
}

func TestService_ScopesAreIsolated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	d, err := svc.Create(ctx, testScope, map[string]any{"title": "mío"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	other := Scope{AccountID: "acct-2", Collection: "events"}
	if _, err := svc.Get(ctx, other, d.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-account get = %v, want NotFound", err)
	}
}

func TestService_BlankIDIsInvalid(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Get(context.Background(), testScope, "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Delete(context.Background(), testScope, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
