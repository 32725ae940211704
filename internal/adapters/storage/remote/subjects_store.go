package remote

import (
	"context"
	"net/url"
	"time"

	"vet-agenda/internal/domain/subjects"
	"vet-agenda/internal/ports/stores"
)

const subjectsCollection = "subjects"

// SubjectStore implementa subjects.Store (+Finder) contra la colección
// remota accounts/{accountId}/subjects.
type SubjectStore struct {
	client *Client
}

func NewSubjectStore(client *Client) *SubjectStore {
	return &SubjectStore{client: client}
}

var (
	_ subjects.Store  = (*SubjectStore)(nil)
	_ subjects.Finder = (*SubjectStore)(nil)
)

type subjectDoc struct {
	ID        string     `json:"id,omitempty"`
	ContactID string     `json:"contact_id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed"`
	Color     string     `json:"color"`
	Sex       string     `json:"sex"`
	Neutered  bool       `json:"neutered"`
	AgeMonths int        `json:"age_months"`
	WeightKG  float64    `json:"weight_kg"`
	Notes     string     `json:"notes"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func subjectToDoc(sub subjects.Subject) subjectDoc {
	return subjectDoc{
		ContactID: sub.ContactID,
		Name:      sub.Name,
		Species:   string(sub.Species),
		Breed:     sub.Breed,
		Color:     sub.Color,
		Sex:       string(sub.Sex),
		Neutered:  sub.Neutered,
		AgeMonths: sub.AgeMonths,
		WeightKG:  sub.WeightKG,
		Notes:     sub.Notes,
	}
}

func (s *SubjectStore) fromDoc(d subjectDoc) subjects.Subject {
	return subjects.Subject{
		ID:        d.ID,
		ContactID: d.ContactID,
		Name:      d.Name,
		Species:   subjects.Species(d.Species),
		Breed:     d.Breed,
		Color:     d.Color,
		Sex:       subjects.Sex(d.Sex),
		Neutered:  d.Neutered,
		AgeMonths: d.AgeMonths,
		WeightKG:  d.WeightKG,
		Notes:     d.Notes,
		CreatedAt: s.client.stamp(d.CreatedAt),
		UpdatedAt: s.client.stamp(d.UpdatedAt),
	}
}

func (s *SubjectStore) fromDocs(docs []subjectDoc) []subjects.Subject {
	out := make([]subjects.Subject, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.fromDoc(d))
	}
	return out
}

func (s *SubjectStore) List(ctx context.Context) ([]subjects.Subject, error) {
	var docs []subjectDoc
	if err := s.client.do(ctx, "GET", subjectsCollection, "?order=name", nil, &docs); err != nil {
		return nil, err
	}
	return s.fromDocs(docs), nil
}

func (s *SubjectStore) Get(ctx context.Context, id string) (subjects.Subject, error) {
	var doc subjectDoc
	if err := s.client.do(ctx, "GET", subjectsCollection, "/"+url.PathEscape(id), nil, &doc); err != nil {
		return subjects.Subject{}, err
	}
	return s.fromDoc(doc), nil
}

func (s *SubjectStore) Create(ctx context.Context, sub subjects.Subject) (subjects.Subject, error) {
	var doc subjectDoc
	if err := s.client.do(ctx, "POST", subjectsCollection, "", subjectToDoc(sub), &doc); err != nil {
		return subjects.Subject{}, err
	}
	return s.fromDoc(doc), nil
}

func (s *SubjectStore) Update(ctx context.Context, id string, m subjects.Merge) (subjects.Subject, error) {
	var doc subjectDoc
	if err := s.client.do(ctx, "PATCH", subjectsCollection, "/"+url.PathEscape(id), m.Doc, &doc); err != nil {
		return subjects.Subject{}, err
	}
	return s.fromDoc(doc), nil
}

func (s *SubjectStore) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, "DELETE", subjectsCollection, "/"+url.PathEscape(id), nil, nil)
}

func (s *SubjectStore) FindByField(ctx context.Context, field, value string) (subjects.Subject, error) {
	suffix := "?field=" + url.QueryEscape(field) + "&value=" + url.QueryEscape(value)

	var docs []subjectDoc
	if err := s.client.do(ctx, "GET", subjectsCollection, suffix, nil, &docs); err != nil {
		return subjects.Subject{}, err
	}
	if len(docs) == 0 {
		return subjects.Subject{}, stores.ErrNotFound
	}
	return s.fromDoc(docs[0]), nil
}
