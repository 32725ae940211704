package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const accountKey ctxKey = "account"

// AccountVerifier valida un token y retorna el account id al que pertenece.
type AccountVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// AccountContext:
// - Si verifier != nil y viene Bearer token => Verify() y setea el account.
// - Si verifier == nil => modo dev: el Bearer token ES el account id, y
//   también se acepta el header X-Debug-Account-ID.
// - Sin credenciales el request sigue igual; los handlers deciden si cortan.
func AccountContext(verifier AccountVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if acct := strings.TrimSpace(r.Header.Get("X-Debug-Account-ID")); acct != "" {
					next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), acct)))
					return
				}
				if token := bearerToken(r.Header.Get("Authorization")); token != "" {
					next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), token)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			acct, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos acá; el handler decide 401/403.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), acct)))
		})
	}
}

func withAccount(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountKey, accountID)
}

// GetAccount retorna el account id autenticado del contexto.
func GetAccount(ctx context.Context) (string, bool) {
	v := ctx.Value(accountKey)
	if v == nil {
		return "", false
	}
	acct, ok := v.(string)
	return acct, ok && acct != ""
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
