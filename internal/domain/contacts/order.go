package contacts

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// El collator de x/text no es seguro para uso concurrente; el paquete
// serializa el orden natural con un mutex propio.
var (
	orderMu   sync.Mutex
	orderColl = collate.New(language.BrazilianPortuguese, collate.Loose)
)

// SortNatural ordena in-place por nombre con collation locale-aware
// (empate por id). Es la clave natural de la colección de tutores.
func SortNatural(list []Contact) {
	orderMu.Lock()
	defer orderMu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if cmp := orderColl.CompareString(list[i].Name, list[j].Name); cmp != 0 {
			return cmp < 0
		}
		return list[i].ID < list[j].ID
	})
}
