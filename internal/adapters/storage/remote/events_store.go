package remote

import (
	"context"
	"net/url"
	"time"

	"vet-agenda/internal/domain/events"
	"vet-agenda/internal/domain/record"
	"vet-agenda/internal/ports/stores"
)

const eventsCollection = "events"

// EventStore implementa events.Store (+Finder) contra la colección
// remota accounts/{accountId}/events.
type EventStore struct {
	client *Client
}

func NewEventStore(client *Client) *EventStore {
	return &EventStore{client: client}
}

var (
	_ events.Store  = (*EventStore)(nil)
	_ events.Finder = (*EventStore)(nil)
)

// eventDoc es la forma wire del documento. Los timestamps los escribe el
// servidor; el cliente nunca los manda.
type eventDoc struct {
	ID            string           `json:"id,omitempty"`
	Title         string           `json:"title"`
	Start         record.LocalTime `json:"start"`
	End           record.LocalTime `json:"end"`
	DurationLabel string           `json:"duration_label"`
	ContactID     string           `json:"contact_id"`
	ContactName   string           `json:"contact_name"`
	SubjectIDs    []string         `json:"subject_ids"`
	Location      string           `json:"location"`
	Notes         string           `json:"notes"`
	Status        string           `json:"status"`
	Billing       events.Billing   `json:"billing"`
	CreatedAt     *time.Time       `json:"created_at,omitempty"`
	UpdatedAt     *time.Time       `json:"updated_at,omitempty"`
}

func eventToDoc(e events.Event) eventDoc {
	return eventDoc{
		Title:         e.Title,
		Start:         e.Start,
		End:           e.End,
		DurationLabel: e.DurationLabel,
		ContactID:     e.ContactID,
		ContactName:   e.ContactName,
		SubjectIDs:    e.SubjectIDs,
		Location:      e.Location,
		Notes:         e.Notes,
		Status:        string(e.Status),
		Billing:       e.Billing,
	}
}

func (s *EventStore) fromDoc(d eventDoc) events.Event {
	return events.Event{
		ID:            d.ID,
		Title:         d.Title,
		Start:         d.Start,
		End:           d.End,
		DurationLabel: d.DurationLabel,
		ContactID:     d.ContactID,
		ContactName:   d.ContactName,
		SubjectIDs:    d.SubjectIDs,
		Location:      d.Location,
		Notes:         d.Notes,
		Status:        events.ParseStatus(d.Status),
		Billing:       d.Billing,
		CreatedAt:     s.client.stamp(d.CreatedAt),
		UpdatedAt:     s.client.stamp(d.UpdatedAt),
	}
}

func (s *EventStore) fromDocs(docs []eventDoc) []events.Event {
	out := make([]events.Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.fromDoc(d))
	}
	return out
}

// List trae la colección ordenada por la clave estable "start".
func (s *EventStore) List(ctx context.Context) ([]events.Event, error) {
	var docs []eventDoc
	if err := s.client.do(ctx, "GET", eventsCollection, "?order=start", nil, &docs); err != nil {
		return nil, err
	}
	return s.fromDocs(docs), nil
}

func (s *EventStore) Get(ctx context.Context, id string) (events.Event, error) {
	var doc eventDoc
	if err := s.client.do(ctx, "GET", eventsCollection, "/"+url.PathEscape(id), nil, &doc); err != nil {
		return events.Event{}, err
	}
	return s.fromDoc(doc), nil
}

// Create delega la asignación de id al servidor: el id del payload, si
// viniera, se ignora allá.
func (s *EventStore) Create(ctx context.Context, e events.Event) (events.Event, error) {
	var doc eventDoc
	if err := s.client.do(ctx, "POST", eventsCollection, "", eventToDoc(e), &doc); err != nil {
		return events.Event{}, err
	}
	return s.fromDoc(doc), nil
}

// Update manda SOLO el merge patch (m.Doc); el servidor mergea y retorna
// el documento completo resultante.
func (s *EventStore) Update(ctx context.Context, id string, m events.Merge) (events.Event, error) {
	var doc eventDoc
	if err := s.client.do(ctx, "PATCH", eventsCollection, "/"+url.PathEscape(id), m.Doc, &doc); err != nil {
		return events.Event{}, err
	}
	return s.fromDoc(doc), nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", eventsCollection, "/"+url.PathEscape(id), nil, nil)
}

// FindByField localiza un documento por un campo denormalizado (lookup
// secundario del fallback de update).
func (s *EventStore) FindByField(ctx context.Context, field, value string) (events.Event, error) {
	suffix := "?field=" + url.QueryEscape(field) + "&value=" + url.QueryEscape(value)

	var docs []eventDoc
	if err := s.client.do(ctx, "GET", eventsCollection, suffix, nil, &docs); err != nil {
		return events.Event{}, err
	}
	if len(docs) == 0 {
		return events.Event{}, stores.ErrNotFound
	}
	return s.fromDoc(docs[0]), nil
}
