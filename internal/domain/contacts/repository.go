package contacts

import "context"

// Merge: registro completo normalizado (paths locales) + merge patch de
// campos tocados (path remoto). Ver events.Merge.
type Merge struct {
	Record Contact
	Doc    map[string]any
}

// Store es la capacidad común de un backend de tutores; RemoteStore y
// LocalStore la implementan y el service compone ambas.
type Store interface {
	List(ctx context.Context) ([]Contact, error)
	Get(ctx context.Context, id string) (Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
	Update(ctx context.Context, id string, m Merge) (Contact, error)
	Delete(ctx context.Context, id string) error
}

type Mirror interface {
	Store

	ReplaceAll(ctx context.Context, list []Contact) error
	Upsert(ctx context.Context, c Contact) error
}

type Finder interface {
	FindByField(ctx context.Context, field, value string) (Contact, error)
}
