package events

// Status define el estado de la cita.
// @Enum pending, confirmed, cancelled
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus cae a pending ante cualquier valor desconocido.
func ParseStatus(s string) Status {
	switch Status(s) {
	case StatusConfirmed:
		return StatusConfirmed
	case StatusCancelled:
		return StatusCancelled
	default:
		return StatusPending
	}
}
