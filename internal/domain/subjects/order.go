package subjects

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	orderMu   sync.Mutex
	orderColl = collate.New(language.BrazilianPortuguese, collate.Loose)
)

// SortNatural ordena in-place por nombre collado (empate por id).
func SortNatural(list []Subject) {
	orderMu.Lock()
	defer orderMu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if cmp := orderColl.CompareString(list[i].Name, list[j].Name); cmp != 0 {
			return cmp < 0
		}
		return list[i].ID < list[j].ID
	})
}
