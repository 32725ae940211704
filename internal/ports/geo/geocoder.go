package geo

import "context"

// Coordinate es un punto geográfico simple.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Query es lo mínimo que un geocoder necesita para resolver una dirección.
type Query struct {
	Street       string
	Number       string
	Neighborhood string
	City         string
	Region       string
	PostalCode   string
}

// Geocoder resuelve una dirección a coordenada.
// La implementación real (API externa) vive fuera de este repo;
// los services la reciben como dependencia opcional (nil = no geocodificar).
type Geocoder interface {
	Locate(ctx context.Context, q Query) (Coordinate, error)
}
