package events

import "context"

// Merge empaqueta las dos caras de un update ya normalizado:
// Record es el registro completo (lo persisten los paths locales),
// Doc es el merge patch con solo los campos tocados (viaja al remoto,
// last-write-wins a nivel de campo, nunca overwrite del documento entero).
type Merge struct {
	Record Event
	Doc    map[string]any
}

// Store es la capacidad común de un backend de citas. Hay dos
// implementaciones: RemoteStore (documento remoto, cloud-first) y
// LocalStore (mirror en cache local). El service compone ambas y decide
// una sola vez por llamada según haya sesión o no.
type Store interface {
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, id string) (Event, error)
	Create(ctx context.Context, e Event) (Event, error)
	Update(ctx context.Context, id string, m Merge) (Event, error)
	Delete(ctx context.Context, id string) error
}

// Mirror agrega las operaciones de mantenimiento del espejo local.
type Mirror interface {
	Store

	// ReplaceAll pisa la colección completa (resultado de un list remoto).
	ReplaceAll(ctx context.Context, list []Event) error

	// Upsert inserta o reemplaza sin error si no existía.
	Upsert(ctx context.Context, e Event) error
}

// Finder permite el lookup secundario por campo denormalizado cuando el
// update remoto falla NotFound por clave primaria.
type Finder interface {
	FindByField(ctx context.Context, field, value string) (Event, error)
}
