package events

import (
	"vet-agenda/internal/domain/record"
)

// EventPatch es un patch de merge real: punteros, nil = no tocar.
// SelectedAt es el valor transitorio del picker calendario+hora de la UI;
// deriva Start y jamás se persiste como campo propio.
type EventPatch struct {
	Title *string

	SelectedAt    *record.LocalTime
	Start         *record.LocalTime
	End           *record.LocalTime
	DurationLabel *string

	ContactID   *string
	ContactName *string

	// SubjectIDs puede llegar con ids numéricos o mixtos desde la UI;
	// la normalización los coerce a string canónico.
	SubjectIDs *[]any

	Location *string
	Notes    *string
	Status   *Status

	Billing *BillingPatch
}

// BillingPatch se mergea campo a campo contra el sub-objeto previo.
// Installments se mergea por índice: entrada nil = no tocar esa cuota.
type BillingPatch struct {
	AmountCents  *int64
	Method       *string
	Paid         *bool
	Installments []*InstallmentPatch
}

type InstallmentPatch struct {
	Due         *record.LocalTime
	AmountCents *int64
	Paid        *bool
}

// IsZero reporta si el patch no toca ningún campo.
func (p EventPatch) IsZero() bool {
	return p.Title == nil && p.SelectedAt == nil && p.Start == nil && p.End == nil &&
		p.DurationLabel == nil && p.ContactID == nil && p.ContactName == nil &&
		p.SubjectIDs == nil && p.Location == nil && p.Notes == nil &&
		p.Status == nil && p.Billing == nil
}

// DocPatch arma el merge patch que viaja al documento remoto: solo los
// campos tocados, con los valores ya normalizados de n (coerción y campos
// derivados incluidos). Los timestamps no viajan: los escribe el servidor.
func (p EventPatch) DocPatch(n Event) map[string]any {
	doc := map[string]any{}

	if p.Title != nil {
		doc["title"] = n.Title
	}
	if p.SelectedAt != nil || p.Start != nil {
		doc["start"] = n.Start.String()
	}
	if p.SelectedAt != nil || p.Start != nil || p.End != nil || p.DurationLabel != nil {
		// end es derivado: cualquier cambio temporal lo arrastra
		doc["end"] = n.End.String()
		doc["duration_label"] = n.DurationLabel
	}
	if p.ContactID != nil {
		doc["contact_id"] = n.ContactID
	}
	if p.ContactName != nil {
		doc["contact_name"] = n.ContactName
	}
	if p.SubjectIDs != nil {
		doc["subject_ids"] = n.SubjectIDs
	}
	if p.Location != nil {
		doc["location"] = n.Location
	}
	if p.Notes != nil {
		doc["notes"] = n.Notes
	}
	if p.Status != nil {
		doc["status"] = string(n.Status)
	}
	if p.Billing != nil {
		b := map[string]any{}
		if p.Billing.AmountCents != nil {
			b["amount_cents"] = n.Billing.AmountCents
		}
		if p.Billing.Method != nil {
			b["method"] = n.Billing.Method
		}
		if p.Billing.Paid != nil {
			b["paid"] = n.Billing.Paid
		}
		if len(p.Billing.Installments) > 0 {
			// la lista viaja ya mergeada; el doc remoto la reemplaza completa
			b["installments"] = n.Billing.Installments
		}
		doc["billing"] = b
	}

	return doc
}
