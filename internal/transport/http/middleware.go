package http

import (
	"context"
	"net/http"

	"contest-service/internal/auth"
	"contest-service/internal/domain"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const identityCtxKey contextKey = "identity"

// Authenticator requires a verified bearer token and stores the caller identity.
// It must run after jwtauth.Verifier.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			respondError(w, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		identity, err := auth.IdentityFromClaims(claims)
		if err != nil {
			respondError(w, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), identityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects callers whose role differs from role.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromContext(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, codeUnauthorized)
				return
			}
			if identity.Role != role {
				respondError(w, http.StatusForbidden, codeForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey).(domain.Identity)
	return identity, ok
}
