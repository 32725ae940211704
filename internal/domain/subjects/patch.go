package subjects

// SubjectPatch: punteros para merge real, nil = no tocar.
type SubjectPatch struct {
	// ContactID puede venir numérico desde la UI; se coerce a string.
	ContactID any

	Name    *string
	Species *Species
	Breed   *string
	Color   *string
	Sex     *Sex

	Neutered  *bool
	AgeMonths *int
	WeightKG  *float64

	Notes *string
}

// DocPatch arma el merge patch remoto (solo campos tocados, valores
// normalizados de n).
func (p SubjectPatch) DocPatch(n Subject) map[string]any {
	doc := map[string]any{}

	if p.ContactID != nil {
		doc["contact_id"] = n.ContactID
	}
	if p.Name != nil {
		doc["name"] = n.Name
	}
	if p.Species != nil {
		doc["species"] = string(n.Species)
	}
	if p.Breed != nil {
		doc["breed"] = n.Breed
	}
	if p.Color != nil {
		doc["color"] = n.Color
	}
	if p.Sex != nil {
		doc["sex"] = string(n.Sex)
	}
	if p.Neutered != nil {
		doc["neutered"] = n.Neutered
	}
	if p.AgeMonths != nil {
		doc["age_months"] = n.AgeMonths
	}
	if p.WeightKG != nil {
		doc["weight_kg"] = n.WeightKG
	}
	if p.Notes != nil {
		doc["notes"] = n.Notes
	}

	return doc
}
