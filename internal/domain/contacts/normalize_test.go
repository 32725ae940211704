package contacts

import (
	"testing"
	"time"

	"vet-agenda/internal/ports/geo"
)

func strPtr(s string) *string { return &s }

func geoCoord(lat, lng float64) geo.Coordinate {
	return geo.Coordinate{Lat: lat, Lng: lng}
}

func TestNormalize_New(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	c := Normalize(nil, ContactPatch{
		Name:  strPtr("  Álvaro Souza "),
		Email: strPtr("Alvaro@Example.COM"),
		Phone: strPtr(" +55 11 99999-0000 "),
	}, now)

	if c.Name != "Álvaro Souza" {
		t.Fatalf("Name = %q", c.Name)
	}
	if c.Email != "alvaro@example.com" {
		t.Fatalf("Email = %q, want lowercased", c.Email)
	}
	if c.Phone != "+55 11 99999-0000" {
		t.Fatalf("Phone = %q", c.Phone)
	}
	if c.CreatedAt.ClientMS != now.UnixMilli() {
		t.Fatalf("CreatedAt not stamped")
	}
}

func TestNormalize_AddressFieldWiseMerge(t *testing.T) {
	now := time.Now()

	prev := Normalize(nil, ContactPatch{
		Address: &AddressPatch{
			Street:     strPtr("Av. Paulista"),
			Number:     strPtr("1000"),
			City:       strPtr("São Paulo"),
			PostalCode: strPtr("01310-100"),
		},
	}, now)

	if prev.Address.PostalCode != "01310100" {
		t.Fatalf("PostalCode = %q, want digits only", prev.Address.PostalCode)
	}

	// patch de solo número: el resto de la dirección sobrevive
	n := Normalize(&prev, ContactPatch{
		Address: &AddressPatch{Number: strPtr("1500")},
	}, now)

	if n.Address.Number != "1500" {
		t.Fatalf("Number = %q", n.Address.Number)
	}
	if n.Address.Street != "Av. Paulista" || n.Address.City != "São Paulo" {
		t.Fatalf("untouched address fields must survive: %+v", n.Address)
	}
}

func TestNormalize_GeoCarriesOverWhenOmitted(t *testing.T) {
	now := time.Now()

	prev := Normalize(nil, ContactPatch{Name: strPtr("João")}, now)
	coord := geoCoord(-23.56, -46.65)
	prev.Geo = &coord

	n := Normalize(&prev, ContactPatch{Notes: strPtr("prefere manhã")}, now)
	if n.Geo == nil || n.Geo.Lat != -23.56 || n.Geo.Lng != -46.65 {
		t.Fatalf("Geo must carry over verbatim: %+v", n.Geo)
	}
}
