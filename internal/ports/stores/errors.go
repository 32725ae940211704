package stores

import "errors"

// Taxonomía de errores compartida por los stores locales y remotos.
// Los adapters envuelven sus fallos con estos sentinels para que los
// services puedan clasificar con errors.Is sin importar el transporte.
var (
	// ErrNotFound: el lookup falló en el store consultado.
	ErrNotFound = errors.New("not found")

	// ErrUnreachable: el remoto no respondió por razones de transporte.
	// En lecturas degrada al mirror local; en escrituras se propaga tal cual.
	ErrUnreachable = errors.New("remote unreachable")

	// ErrInvalidRecord: la normalización no pudo producir un registro usable.
	// Hoy nunca se retorna (duración malformada cae a default 1h a propósito),
	// pero el sentinel existe para que los callers ya lo contemplen.
	ErrInvalidRecord = errors.New("invalid record")
)
