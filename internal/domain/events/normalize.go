package events

import (
	"strings"
	"time"

	"vet-agenda/internal/domain/record"
)

// Normalize produce el registro completo resultante de aplicar patch sobre
// prev (nil = registro nuevo). Es pura: sin I/O, idempotente dados los
// mismos inputs (solo UpdatedAt avanza con now).
//
// Reglas:
//   - campo omitido en patch => se arrastra de prev; ausente en ambos => vacío definido
//   - ids (contact_id y cada entrada de subject_ids) => string canónico
//   - SelectedAt (transitorio) deriva Start; End SIEMPRE = Start + duración
//   - duración malformada => default 1h, jamás error (leniencia deliberada)
//   - CreatedAt se estampa una sola vez; UpdatedAt siempre se refresca
func Normalize(prev *Event, patch EventPatch, now time.Time) Event {
	var e Event
	if prev != nil {
		e = cloneEvent(*prev)
	}

	if patch.Title != nil {
		e.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.ContactID != nil {
		e.ContactID = record.CoerceID(*patch.ContactID)
	}
	if patch.ContactName != nil {
		e.ContactName = strings.TrimSpace(*patch.ContactName)
	}
	if patch.SubjectIDs != nil {
		e.SubjectIDs = record.CoerceIDs(*patch.SubjectIDs)
	}
	if e.SubjectIDs == nil {
		e.SubjectIDs = []string{}
	}
	if patch.Location != nil {
		e.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Notes != nil {
		e.Notes = strings.TrimSpace(*patch.Notes)
	}

	if patch.Status != nil {
		e.Status = ParseStatus(string(*patch.Status))
	}
	if e.Status == "" {
		e.Status = StatusPending
	}

	if patch.DurationLabel != nil {
		e.DurationLabel = strings.TrimSpace(*patch.DurationLabel)
	}
	if e.DurationLabel == "" {
		e.DurationLabel = record.FormatDurationLabel(record.DefaultDuration)
	}

	// El instante seleccionado por la UI deriva Start y no se persiste.
	if patch.SelectedAt != nil {
		e.Start = *patch.SelectedAt
	} else if patch.Start != nil {
		e.Start = *patch.Start
	}

	if patch.End != nil && patch.SelectedAt == nil && patch.DurationLabel == nil {
		// Caller entregó start+end directos: la etiqueta se deriva de ellos
		// para sostener la invariante end = start + parse(duration_label).
		e.End = *patch.End
		if !e.Start.IsZero() && e.End.After(e.Start) {
			e.DurationLabel = record.FormatDurationLabel(e.End.Sub(e.Start))
		}
	} else {
		dur, _ := record.ParseDurationLabel(e.DurationLabel)
		e.End = e.Start.Add(dur)
	}

	if patch.Billing != nil {
		e.Billing = mergeBilling(e.Billing, *patch.Billing)
	}
	if e.Billing.Installments == nil {
		e.Billing.Installments = []Installment{}
	}

	if prev == nil || prev.CreatedAt.IsZero() {
		e.CreatedAt = record.StampNow(now)
	}
	e.UpdatedAt = record.StampNow(now)

	return e
}

// mergeBilling aplica el patch campo a campo; las cuotas se mergean por
// índice y las previas que el patch no alcanza se preservan.
func mergeBilling(prev Billing, patch BillingPatch) Billing {
	out := prev
	out.Installments = append([]Installment(nil), prev.Installments...)

	if patch.AmountCents != nil {
		out.AmountCents = *patch.AmountCents
	}
	if patch.Method != nil {
		out.Method = strings.TrimSpace(*patch.Method)
	}
	if patch.Paid != nil {
		out.Paid = *patch.Paid
	}

	for i, ip := range patch.Installments {
		if ip == nil {
			continue
		}
		for len(out.Installments) <= i {
			out.Installments = append(out.Installments, Installment{})
		}
		if ip.Due != nil {
			out.Installments[i].Due = *ip.Due
		}
		if ip.AmountCents != nil {
			out.Installments[i].AmountCents = *ip.AmountCents
		}
		if ip.Paid != nil {
			out.Installments[i].Paid = *ip.Paid
		}
	}

	return out
}

func cloneEvent(e Event) Event {
	e.SubjectIDs = append([]string(nil), e.SubjectIDs...)
	e.Billing.Installments = append([]Installment(nil), e.Billing.Installments...)
	return e
}
