package auth

import "context"

// Session representa una sesión activa contra el backend remoto.
// AccountID es el id de scoping de las colecciones remotas
// (accounts/{accountID}/...). Token viaja como Bearer en cada request.
type Session struct {
	AccountID string
	Token     string
}

// SessionSource expone la sesión vigente (si la hay).
// La capa de sync NUNCA maneja login/logout; solo consume
// "¿hay sesión?" + "¿con qué account id?".
type SessionSource interface {
	Current(ctx context.Context) (Session, bool)
}

// StaticSession es un SessionSource fijo (útil en tests y en modo dev).
type StaticSession struct {
	Session Session
	Active  bool
}

func (s StaticSession) Current(_ context.Context) (Session, bool) {
	if !s.Active {
		return Session{}, false
	}
	return s.Session, true
}

// NoSession es un SessionSource sin sesión (modo offline puro).
type NoSession struct{}

func (NoSession) Current(_ context.Context) (Session, bool) {
	return Session{}, false
}
