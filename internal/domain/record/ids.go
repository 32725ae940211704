package record

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CoerceID lleva cualquier id (string, número JSON, int...) a su
// representación canónica string. Vacío si no hay nada coercible.
func CoerceID(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	case float64:
		// ids numéricos vienen así al decodificar JSON genérico
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", x))
	}
}

// CoerceIDs normaliza una lista de ids mixtos a un set ordenado de strings:
// coerción elemento a elemento, descarta vacíos, dedup preservando orden.
func CoerceIDs(vs []any) []string {
	out := make([]string, 0, len(vs))
	seen := make(map[string]struct{}, len(vs))
	for _, v := range vs {
		id := CoerceID(v)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
