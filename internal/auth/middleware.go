package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/avolkonsky/taskboard-api/pkg/respond"
)

type contextKey struct{}

var principalKey contextKey

// PrincipalFrom returns the authenticated principal stored by the
// Authenticator middleware, or nil if the request carried none.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey).(*Principal)
	return p
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Authenticator rejects requests without a valid bearer token and puts
// the resolved principal on the request context.
func (i *TokenIssuer) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			respond.Error(w, r, http.StatusUnauthorized, "missing bearer token")
			return
		}

		principal, err := i.Verify(tokenString)
		if err != nil {
			respond.Error(w, r, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}
