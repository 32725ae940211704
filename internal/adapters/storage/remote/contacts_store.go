package remote

import (
	"context"
	"net/url"
	"time"

	"vet-agenda/internal/domain/contacts"
	"vet-agenda/internal/ports/geo"
	"vet-agenda/internal/ports/stores"
)

const contactsCollection = "contacts"

// ContactStore implementa contacts.Store (+Finder) contra la colección
// remota accounts/{accountId}/contacts.
type ContactStore struct {
	client *Client
}

func NewContactStore(client *Client) *ContactStore {
	return &ContactStore{client: client}
}

var (
	_ contacts.Store  = (*ContactStore)(nil)
	_ contacts.Finder = (*ContactStore)(nil)
)

type contactDoc struct {
	ID        string           `json:"id,omitempty"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Email     string           `json:"email"`
	Address   contacts.Address `json:"address"`
	Geo       *geo.Coordinate  `json:"geo,omitempty"`
	Notes     string           `json:"notes"`
	CreatedAt *time.Time       `json:"created_at,omitempty"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

func contactToDoc(c contacts.Contact) contactDoc {
	return contactDoc{
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		Geo:     c.Geo,
		Notes:   c.Notes,
	}
}

func (s *ContactStore) fromDoc(d contactDoc) contacts.Contact {
	return contacts.Contact{
		ID:        d.ID,
		Name:      d.Name,
		Phone:     d.Phone,
		Email:     d.Email,
		Address:   d.Address,
		Geo:       d.Geo,
		Notes:     d.Notes,
		CreatedAt: s.client.stamp(d.CreatedAt),
		UpdatedAt: s.client.stamp(d.UpdatedAt),
	}
}

func (s *ContactStore) fromDocs(docs []contactDoc) []contacts.Contact {
	out := make([]contacts.Contact, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.fromDoc(d))
	}
	return out
}

// List trae la colección ordenada por la clave estable "name".
func (s *ContactStore) List(ctx context.Context) ([]contacts.Contact, error) {
	var docs []contactDoc
	if err := s.client.do(ctx, "GET", contactsCollection, "?order=name", nil, &docs); err != nil {
		return nil, err
	}
	return s.fromDocs(docs), nil
}

func (s *ContactStore) Get(ctx context.Context, id string) (contacts.Contact, error) {
	var doc contactDoc
	if err := s.client.do(ctx, "GET", contactsCollection, "/"+url.PathEscape(id), nil, &doc); err != nil {
		return contacts.Contact{}, err
	}
	return s.fromDoc(doc), nil
}

func (s *ContactStore) Create(ctx context.Context, c contacts.Contact) (contacts.Contact, error) {
	var doc contactDoc
	if err := s.client.do(ctx, "POST", contactsCollection, "", contactToDoc(c), &doc); err != nil {
		return contacts.Contact{}, err
	}
	return s.fromDoc(doc), nil
}

func (s *ContactStore) Update(ctx context.Context, id string, m contacts.Merge) (contacts.Contact, error) {
	var doc contactDoc
	if err := s.client.do(ctx, "PATCH", contactsCollection, "/"+url.PathEscape(id), m.Doc, &doc); err != nil {
		return contacts.Contact{}, err
	}
	return s.fromDoc(doc), nil
}

func (s *ContactStore) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", contactsCollection, "/"+url.PathEscape(id), nil, nil)
}

func (s *ContactStore) FindByField(ctx context.Context, field, value string) (contacts.Contact, error) {
	suffix := "?field=" + url.QueryEscape(field) + "&value=" + url.QueryEscape(value)

	var docs []contactDoc
	if err := s.client.do(ctx, "GET", contactsCollection, suffix, nil, &docs); err != nil {
		return contacts.Contact{}, err
	}
	if len(docs) == 0 {
		return contacts.Contact{}, stores.ErrNotFound
	}
	return s.fromDoc(docs[0]), nil
}
