package subjects

import "context"

// Merge: registro completo normalizado + merge patch remoto. Ver events.Merge.
type Merge struct {
	Record Subject
	Doc    map[string]any
}

type Store interface {
	List(ctx context.Context) ([]Subject, error)
	Get(ctx context.Context, id string) (Subject, error)
	Create(ctx context.Context, sub Subject) (Subject, error)
	Update(ctx context.Context, id string, m Merge) (Subject, error)
	Delete(ctx context.Context, id string) error
}

type Mirror interface {
	Store

	ReplaceAll(ctx context.Context, list []Subject) error
	Upsert(ctx context.Context, sub Subject) error
}

type Finder interface {
	FindByField(ctx context.Context, field, value string) (Subject, error)
}
