package subjects

import "vet-agenda/internal/domain/record"

// Subject representa una mascota. Pertenece SIEMPRE a exactamente un tutor
// (relación de ownership vía ContactID, no back-reference).
type Subject struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`

	Name    string  `json:"name"`
	Species Species `json:"species"` // dog, cat
	Breed   string  `json:"breed"`   // según especie (DogBreed o CatBreed)
	Color   string  `json:"color"`
	Sex     Sex     `json:"sex"` // male, female, unknown

	Neutered  bool    `json:"neutered"`
	AgeMonths int     `json:"age_months"`
	WeightKG  float64 `json:"weight_kg"`

	Notes string `json:"notes"`

	CreatedAt record.Stamp `json:"created_at"`
	UpdatedAt record.Stamp `json:"updated_at"`
}
