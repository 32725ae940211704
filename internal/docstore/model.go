package docstore

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Scope identifica una colección documental de una cuenta:
// accounts/{accountID}/{collection}.
type Scope struct {
	AccountID  string
	Collection string
}

// Document es un documento schemaless: el payload completo vive en Fields;
// los timestamps los escribe siempre el servidor.
type Document struct {
	ID     string
	Fields map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Body arma la representación wire: Fields + id + timestamps del servidor.
func (d Document) Body() map[string]any {
	out := make(map[string]any, len(d.Fields)+3)
	for k, v := range d.Fields {
		out[k] = v
	}
	out["id"] = d.ID
	out["created_at"] = d.CreatedAt.UTC().Format(time.RFC3339Nano)
	out["updated_at"] = d.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return out
}

// Colecciones soportadas por el agenda.
var Collections = map[string]bool{
	"events":   true,
	"contacts": true,
	"subjects": true,
}
