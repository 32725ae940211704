package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"vet-agenda/internal/domain/record"
	"vet-agenda/internal/ports/auth"
	"vet-agenda/internal/ports/stores"
)

// -------------------------
// Fakes (remote + mirror)
// -------------------------

type fakeRemote struct {
	byID   map[string]Event
	nextID int

	// altIDs mapea campo "id" denormalizado -> doc id (documentos migrados).
	altIDs map[string]string

	down bool // simula red caída: todo retorna ErrUnreachable

	calls []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{byID: map[string]Event{}, altIDs: map[string]string{}}
}

func (r *fakeRemote) reach() error {
	if r.down {
		return fmt.Errorf("dial tcp: %w", stores.ErrUnreachable)
	}
	return nil
}

func (r *fakeRemote) List(ctx context.Context) ([]Event, error) {
	r.calls = append(r.calls, "list")
	if err := r.reach(); err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	SortNatural(out)
	return out, nil
}

func (r *fakeRemote) Get(ctx context.Context, id string) (Event, error) {
	r.calls = append(r.calls, "get:"+id)
	if err := r.reach(); err != nil {
		return Event{}, err
	}
	e, ok := r.byID[id]
	if !ok {
		return Event{}, fmt.Errorf("document %q: %w", id, stores.ErrNotFound)
	}
	return e, nil
}

func (r *fakeRemote) Create(ctx context.Context, e Event) (Event, error) {
	r.calls = append(r.calls, "create")
	if err := r.reach(); err != nil {
		return Event{}, err
	}
	r.nextID++
	e.ID = "srv-" + strconv.Itoa(r.nextID)
	server := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	e.CreatedAt = e.CreatedAt.Resolve(server)
	e.UpdatedAt = e.UpdatedAt.Resolve(server)
	r.byID[e.ID] = e
	return e, nil
}

func (r *fakeRemote) Update(ctx context.Context, id string, m Merge) (Event, error) {
	r.calls = append(r.calls, "update:"+id)
	if err := r.reach(); err != nil {
		return Event{}, err
	}
	if _, ok := r.byID[id]; !ok {
		return Event{}, fmt.Errorf("document %q: %w", id, stores.ErrNotFound)
	}
	e := m.Record
	e.ID = id
	r.byID[id] = e
	return e, nil
}

func (r *fakeRemote) Delete(ctx context.Context, id string) error {
	r.calls = append(r.calls, "delete:"+id)
	if err := r.reach(); err != nil {
		return err
	}
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("document %q: %w", id, stores.ErrNotFound)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRemote) FindByField(ctx context.Context, field, value string) (Event, error) {
	r.calls = append(r.calls, "find:"+field+"="+value)
	if err := r.reach(); err != nil {
		return Event{}, err
	}
	if field == "id" {
		if docID, ok := r.altIDs[value]; ok {
			return r.byID[docID], nil
		}
	}
	return Event{}, stores.ErrNotFound
}

type fakeMirror struct {
	byID map[string]Event
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{byID: map[string]Event{}}
}

func (m *fakeMirror) List(ctx context.Context) ([]Event, error) {
	out := make([]Event, 0, len(m.byID))
	for _, e := range m.byID {
		out = append(out, e)
	}
	SortNatural(out)
	return out, nil
}

func (m *fakeMirror) Get(ctx context.Context, id string) (Event, error) {
	e, ok := m.byID[id]
	if !ok {
		return Event{}, stores.ErrNotFound
	}
	return e, nil
}

func (m *fakeMirror) Create(ctx context.Context, e Event) (Event, error) {
	if e.ID == "" {
		return Event{}, stores.ErrInvalidRecord
	}
	if _, ok := m.byID[e.ID]; ok {
		return Event{}, stores.ErrInvalidRecord
	}
	m.byID[e.ID] = e
	return e, nil
}

func (m *fakeMirror) Update(ctx context.Context, id string, mg Merge) (Event, error) {
	if _, ok := m.byID[id]; !ok {
		return Event{}, stores.ErrNotFound
	}
	e := mg.Record
	e.ID = id
	m.byID[id] = e
	return e, nil
}

func (m *fakeMirror) Delete(ctx context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return stores.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *fakeMirror) ReplaceAll(ctx context.Context, list []Event) error {
	m.byID = make(map[string]Event, len(list))
	for _, e := range list {
		m.byID[e.ID] = e
	}
	return nil
}

func (m *fakeMirror) Upsert(ctx context.Context, e Event) error {
	m.byID[e.ID] = e
	return nil
}

func newTestService(remote Store, local Mirror, sessions auth.SessionSource) *Service {
	svc := NewService(remote, local, sessions)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

var online = auth.StaticSession{
	Session: auth.Session{AccountID: "acct-1", Token: "tok-1"},
	Active:  true,
}

// -------------------------
// Tests
// -------------------------

func TestService_OfflineRoundTrip(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newFakeMirror()
	svc := newTestService(remote, local, auth.NoSession{})

	created, err := svc.Create(ctx, EventPatch{
		Title:         strPtr("Consulta"),
		SelectedAt:    ltPtr(mustLocal(t, "2025-03-10T09:00:00")),
		DurationLabel: strPtr("1:30"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("offline create must synthesize a local id")
	}
	if len(remote.calls) != 0 {
		t.Fatalf("offline path must not touch the remote: %v", remote.calls)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.End.String() != "2025-03-10T10:30:00" {
		t.Fatalf("End = %q", got.End.String())
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, stores.ErrNotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestService_OfflineDeleteAbsentIsNoop(t *testing.T) {
	svc := newTestService(newFakeRemote(), newFakeMirror(), auth.NoSession{})
	if err := svc.Delete(context.Background(), "ghost"); err != nil {
		t.Fatalf("deleting an absent local record must be a no-op, got %v", err)
	}
}

func TestService_OnlineCreateUsesServerID(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newFakeMirror()
	svc := newTestService(remote, local, online)

	created, err := svc.Create(ctx, EventPatch{Title: strPtr("Vacina")})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "srv-1" {
		t.Fatalf("ID = %q, want server-assigned", created.ID)
	}
	if created.CreatedAt.At == nil {
		t.Fatalf("server timestamp must be resolved")
	}
	if _, ok := local.byID["srv-1"]; !ok {
		t.Fatalf("mirror must hold the server copy")
	}
}

func TestService_ListReplacesStaleMirror(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newFakeMirror()

	// registro creado offline que el server nunca vio
	local.byID["stale-1"] = Event{ID: "stale-1", Title: "Velho"}
	remote.byID["srv-1"] = Event{ID: "srv-1", Title: "Atual", Start: mustLocal(t, "2025-03-10T09:00:00")}

	svc := newTestService(remote, local, online)

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].ID != "srv-1" {
		t.Fatalf("list = %+v", list)
	}
	if _, ok := local.byID["stale-1"]; ok {
		t.Fatalf("remote list must overwrite the whole mirror")
	}
}

func TestService_ListDegradesToMirrorWhenUnreachable(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	remote.down = true
	local := newFakeMirror()
	local.byID["l-1"] = Event{ID: "l-1", Title: "Local"}

	svc := newTestService(remote, local, online)

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List must degrade, got %v", err)
	}
	if len(list) != 1 || list[0].ID != "l-1" {
		t.Fatalf("list = %+v", list)
	}
}

func TestService_GetFallsBackToMirrorOnRemoteNotFound(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newFakeMirror()
	local.byID["off-1"] = Event{ID: "off-1", Title: "Offline only"}

	svc := newTestService(remote, local, online)

	got, err := svc.Get(ctx, "off-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title != "Offline only" {
		t.Fatalf("got = %+v", got)
	}
}

func TestService_UpdateNormalizesBeforeBothStores(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newFakeMirror()
	svc := newTestService(remote, local, online)

	created, err := svc.Create(ctx, EventPatch{
		SelectedAt:    ltPtr(mustLocal(t, "2025-03-10T09:00:00")),
		DurationLabel: strPtr("1:30"),
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, EventPatch{DurationLabel: strPtr("0:45")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.End.String() != "2025-03-10T09:45:00" {
		t.Fatalf("End = %q", updated.End.String())
	}
	if remote.byID[created.ID].End.String() != "2025-03-10T09:45:00" {
		t.Fatalf("remote copy diverged: %q", remote.byID[created.ID].End.String())
	}
	if local.byID[created.ID].End.String() != "2025-03-10T09:45:00" {
		t.Fatalf("mirror copy diverged: %q", local.byID[created.ID].End.String())
	}
}

func TestService_UpdateFallsBackToSecondaryLookup(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newFakeMirror()

	// documento migrado: doc id "doc-9", campo "id" denormalizado "legacy-1"
	remote.byID["doc-9"] = Event{ID: "doc-9", Title: "Migrado"}
	remote.altIDs["legacy-1"] = "doc-9"
	local.byID["legacy-1"] = Event{ID: "legacy-1", Title: "Migrado"}

	svc := newTestService(remote, local, online)

	updated, err := svc.Update(ctx, "legacy-1", EventPatch{Title: strPtr("Renomeado")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Title != "Renomeado" {
		t.Fatalf("updated = %+v", updated)
	}
	if remote.byID["doc-9"].Title != "Renomeado" {
		t.Fatalf("secondary lookup must update the real document")
	}

	want := []string{"update:legacy-1", "find:id=legacy-1", "update:doc-9"}
	got := remote.calls[len(remote.calls)-3:]
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want suffix %v", remote.calls, want)
		}
	}
}

func TestService_DeleteNotFoundOnlyWhenBothMiss(t *testing.T) {
	ctx := context.Background()
	remote := newFakeRemote()
	local := newFakeMirror()
	svc := newTestService(remote, local, online)

	if err := svc.Delete(ctx, "ghost"); !errors.Is(err, stores.ErrNotFound) {
		t.Fatalf("expected NotFound when neither store knows the id, got %v", err)
	}

	// presente solo en el mirror: el delete limpia local sin error
	local.byID["m-1"] = Event{ID: "m-1"}
	if err := svc.Delete(ctx, "m-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := local.byID["m-1"]; ok {
		t.Fatalf("mirror entry must be gone")
	}
}

func TestService_BlankIDIsInvalid(t *testing.T) {
	svc := newTestService(newFakeRemote(), newFakeMirror(), auth.NoSession{})
	if _, err := svc.Get(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func mustLocal(t *testing.T, s string) (lt record.LocalTime) {
	t.Helper()
	lt, err := record.ParseLocalTime(s)
	if err != nil {
		t.Fatalf("ParseLocalTime(%q): %v", s, err)
	}
	return lt
}
