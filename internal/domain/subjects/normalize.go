package subjects

import (
	"strings"
	"time"

	"vet-agenda/internal/domain/record"
)

// Normalize aplica patch sobre prev produciendo el registro completo.
// Misma disciplina que citas/tutores: pura, idempotente, ids canónicos.
func Normalize(prev *Subject, patch SubjectPatch, now time.Time) Subject {
	var sub Subject
	if prev != nil {
		sub = *prev
	}

	if patch.ContactID != nil {
		sub.ContactID = record.CoerceID(patch.ContactID)
	}
	if patch.Name != nil {
		sub.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Species != nil {
		sub.Species = normalizeSpecies(*patch.Species)
	}
	if sub.Species == "" {
		sub.Species = SpeciesDog
	}
	if patch.Breed != nil {
		sub.Breed = strings.TrimSpace(strings.ToLower(*patch.Breed))
	}
	if patch.Color != nil {
		sub.Color = strings.TrimSpace(*patch.Color)
	}
	if patch.Sex != nil {
		sub.Sex = normalizeSex(*patch.Sex)
	}
	if sub.Sex == "" {
		sub.Sex = SexUnknown
	}
	if patch.Neutered != nil {
		sub.Neutered = *patch.Neutered
	}
	if patch.AgeMonths != nil && *patch.AgeMonths >= 0 {
		sub.AgeMonths = *patch.AgeMonths
	}
	if patch.WeightKG != nil && *patch.WeightKG >= 0 {
		sub.WeightKG = *patch.WeightKG
	}
	if patch.Notes != nil {
		sub.Notes = strings.TrimSpace(*patch.Notes)
	}

	if prev == nil || prev.CreatedAt.IsZero() {
		sub.CreatedAt = record.StampNow(now)
	}
	sub.UpdatedAt = record.StampNow(now)

	return sub
}

func normalizeSpecies(s Species) Species {
	switch Species(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SpeciesCat:
		return SpeciesCat
	default:
		return SpeciesDog
	}
}

func normalizeSex(s Sex) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(string(s)))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexUnknown
	}
}
