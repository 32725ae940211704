package docstore

import "context"

type Repository interface {
	List(ctx context.Context, scope Scope) ([]Document, error)
	Get(ctx context.Context, scope Scope, id string) (Document, error)
	Create(ctx context.Context, scope Scope, d Document) error
	Update(ctx context.Context, scope Scope, d Document) error
	Delete(ctx context.Context, scope Scope, id string) error
}
