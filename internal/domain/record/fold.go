package record

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone, tira marcas diacríticas y recompone.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lleva un texto a minúsculas sin diacríticos, para matching
// case/diacritic-insensitive ("São João" => "sao joao").
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// FoldContains reporta si needle (foldeado) aparece en haystack (foldeado).
func FoldContains(haystack, needle string) bool {
	needle = Fold(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), needle)
}
