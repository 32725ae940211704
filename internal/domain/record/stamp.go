package record

import "time"

// Stamp modela el timestamp "doble" de cada registro:
// - At: valor autoritativo escrito por el servidor; es nil hasta que haya
//   round-trip remoto (registros creados offline no lo tienen).
// - ClientMS: espejo provisional en milisegundos del reloj del cliente,
//   siempre presente, para ordenar/mostrar sin esperar al reloj del server.
// Es un patrón deliberado, no colapsar en un solo campo.
type Stamp struct {
	At       *time.Time `json:"at,omitempty"`
	ClientMS int64      `json:"client_ms"`
}

// StampNow crea un Stamp solo-cliente (sin valor de servidor).
func StampNow(now time.Time) Stamp {
	return Stamp{ClientMS: now.UnixMilli()}
}

// Resolve setea el valor autoritativo preservando el espejo del cliente.
func (s Stamp) Resolve(server time.Time) Stamp {
	s.At = &server
	return s
}

func (s Stamp) IsZero() bool { return s.At == nil && s.ClientMS == 0 }

// Display prefiere el valor del servidor; si no llegó, usa el espejo.
func (s Stamp) Display() time.Time {
	if s.At != nil {
		return *s.At
	}
	return time.UnixMilli(s.ClientMS)
}
