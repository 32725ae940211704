package record

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDuration se usa cuando la etiqueta de duración es inválida.
// Política heredada del producto: nunca fallar por una duración malformada,
// caer a 1 hora. Los callers deben replicar esta leniencia, no "arreglarla".
const DefaultDuration = time.Hour

// ParseDurationLabel parsea etiquetas "H:MM" / "HH:MM" a duración.
// Retorna (DefaultDuration, false) ante cualquier cosa malformada.
func ParseDurationLabel(label string) (time.Duration, bool) {
	label = strings.TrimSpace(label)
	parts := strings.Split(label, ":")
	if len(parts) != 2 {
		return DefaultDuration, false
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return DefaultDuration, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return DefaultDuration, false
	}
	if h == 0 && m == 0 {
		return DefaultDuration, false
	}

	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, true
}

// FormatDurationLabel es la inversa: duración a "H:MM".
func FormatDurationLabel(d time.Duration) string {
	if d <= 0 {
		d = DefaultDuration
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return strconv.Itoa(h) + ":" + pad2(m)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
