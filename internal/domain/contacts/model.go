package contacts

import (
	"vet-agenda/internal/domain/record"
	"vet-agenda/internal/ports/geo"
)

// Contact representa al tutor (responsable) de una o más mascotas.
type Contact struct {
	ID string `json:"id"`

	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	Address Address `json:"address"`

	// Geo se recalcula SOLO cuando cambia el código postal o la dirección;
	// un patch que lo omite jamás lo tira.
	Geo *geo.Coordinate `json:"geo,omitempty"`

	Notes string `json:"notes"`

	CreatedAt record.Stamp `json:"created_at"`
	UpdatedAt record.Stamp `json:"updated_at"`
}

// Address es el sub-objeto de dirección; Formatted es la versión legible
// opcional que arma la UI (o el geocoder).
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Region       string `json:"region"`
	PostalCode   string `json:"postal_code"`
	Formatted    string `json:"formatted,omitempty"`
}

// IsZero reporta si la dirección está completamente vacía.
func (a Address) IsZero() bool {
	return a == Address{}
}

// GeoQuery arma la consulta para el geocoder.
func (a Address) GeoQuery() geo.Query {
	return geo.Query{
		Street:       a.Street,
		Number:       a.Number,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		Region:       a.Region,
		PostalCode:   a.PostalCode,
	}
}
