package events

import (
	"vet-agenda/internal/domain/record"
)

// Event representa una cita agendada (consulta, vacuna, baño, etc.).
// Start/End son hora local sin zona; End SIEMPRE se deriva de
// Start + DurationLabel, nunca se persiste una selección de calendario aparte.
type Event struct {
	ID string `json:"id"`

	Title string `json:"title"`

	Start         record.LocalTime `json:"start"`
	End           record.LocalTime `json:"end"`
	DurationLabel string           `json:"duration_label"` // "H:MM" / "HH:MM"

	ContactID string `json:"contact_id"`
	// ContactName es un snapshot denormalizado para listar sin join remoto.
	ContactName string `json:"contact_name"`

	// SubjectIDs es un set ordenado de ids de mascotas (siempre strings).
	SubjectIDs []string `json:"subject_ids"`

	Location string `json:"location"`
	Notes    string `json:"notes"`

	Status Status `json:"status"`

	Billing Billing `json:"billing"`

	CreatedAt record.Stamp `json:"created_at"`
	UpdatedAt record.Stamp `json:"updated_at"`
}

// Billing es el sub-objeto financiero de la cita.
// En updates se mergea campo a campo (nunca reemplazo total).
type Billing struct {
	AmountCents  int64         `json:"amount_cents"`
	Method       string        `json:"method"` // "cash", "card", "pix"...
	Paid         bool          `json:"paid"`
	Installments []Installment `json:"installments"`
}

type Installment struct {
	Due         record.LocalTime `json:"due"`
	AmountCents int64            `json:"amount_cents"`
	Paid        bool             `json:"paid"`
}
