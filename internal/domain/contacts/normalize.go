package contacts

import (
	"strings"
	"time"

	"vet-agenda/internal/domain/record"
)

// Normalize aplica patch sobre prev produciendo el registro completo.
// Pura, sin I/O. Geo se arrastra verbatim cuando el patch lo omite:
// el recálculo (que sí hace I/O) es responsabilidad del service.
func Normalize(prev *Contact, patch ContactPatch, now time.Time) Contact {
	var c Contact
	if prev != nil {
		c = *prev
	}

	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		c.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Email != nil {
		c.Email = strings.TrimSpace(strings.ToLower(*patch.Email))
	}
	if patch.Notes != nil {
		c.Notes = strings.TrimSpace(*patch.Notes)
	}

	if patch.Address != nil {
		c.Address = mergeAddress(c.Address, *patch.Address)
	}

	if patch.Geo != nil {
		g := *patch.Geo
		c.Geo = &g
	}

	if prev == nil || prev.CreatedAt.IsZero() {
		c.CreatedAt = record.StampNow(now)
	}
	c.UpdatedAt = record.StampNow(now)

	return c
}

func mergeAddress(prev Address, patch AddressPatch) Address {
	out := prev
	if patch.Street != nil {
		out.Street = strings.TrimSpace(*patch.Street)
	}
	if patch.Number != nil {
		out.Number = strings.TrimSpace(*patch.Number)
	}
	if patch.Neighborhood != nil {
		out.Neighborhood = strings.TrimSpace(*patch.Neighborhood)
	}
	if patch.City != nil {
		out.City = strings.TrimSpace(*patch.City)
	}
	if patch.Region != nil {
		out.Region = strings.TrimSpace(*patch.Region)
	}
	if patch.PostalCode != nil {
		out.PostalCode = normalizePostalCode(*patch.PostalCode)
	}
	if patch.Formatted != nil {
		out.Formatted = strings.TrimSpace(*patch.Formatted)
	}
	return out
}

// normalizePostalCode deja solo dígitos (CEP estilo "01310-100" => "01310100").
func normalizePostalCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
