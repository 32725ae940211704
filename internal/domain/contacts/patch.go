package contacts

import "vet-agenda/internal/ports/geo"

// ContactPatch: punteros para merge real, nil = no tocar.
type ContactPatch struct {
	Name  *string
	Phone *string
	Email *string

	Address *AddressPatch

	// Geo lo setea el service tras geocodificar; la UI no lo manda.
	Geo *geo.Coordinate

	Notes *string
}

// AddressPatch se mergea campo a campo contra el sub-objeto previo
// (nunca reemplazo total: un patch con solo city no borra street).
type AddressPatch struct {
	Street       *string
	Number       *string
	Neighborhood *string
	City         *string
	Region       *string
	PostalCode   *string
	Formatted    *string
}

// TouchesAddress reporta si el patch cambia dirección o código postal
// (la condición para recalcular Geo).
func (p ContactPatch) TouchesAddress() bool {
	return p.Address != nil
}

// DocPatch arma el merge patch remoto con los campos tocados, tomando los
// valores ya normalizados de n.
func (p ContactPatch) DocPatch(n Contact) map[string]any {
	doc := map[string]any{}

	if p.Name != nil {
		doc["name"] = n.Name
	}
	if p.Phone != nil {
		doc["phone"] = n.Phone
	}
	if p.Email != nil {
		doc["email"] = n.Email
	}
	if p.Address != nil {
		a := map[string]any{}
		if p.Address.Street != nil {
			a["street"] = n.Address.Street
		}
		if p.Address.Number != nil {
			a["number"] = n.Address.Number
		}
		if p.Address.Neighborhood != nil {
			a["neighborhood"] = n.Address.Neighborhood
		}
		if p.Address.City != nil {
			a["city"] = n.Address.City
		}
		if p.Address.Region != nil {
			a["region"] = n.Address.Region
		}
		if p.Address.PostalCode != nil {
			a["postal_code"] = n.Address.PostalCode
		}
		if p.Address.Formatted != nil {
			a["formatted"] = n.Address.Formatted
		}
		doc["address"] = a
	}
	if p.Geo != nil {
		doc["geo"] = map[string]any{"lat": p.Geo.Lat, "lng": p.Geo.Lng}
	}
	if p.Notes != nil {
		doc["notes"] = n.Notes
	}

	return doc
}
