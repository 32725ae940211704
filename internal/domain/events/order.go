package events

import "sort"

// SortNatural ordena in-place por la clave natural de la colección
// (Start asc, empate por id). Es el orden que el mirror local debe
// recuperar después de cada operación exitosa.
func SortNatural(list []Event) {
	sort.Slice(list, func(i, j int) bool {
		return lessEvent(list[i], list[j])
	})
}
