package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/securefront/workforce-backend-go/internal/handler/http/response"
	"github.com/securefront/workforce-backend-go/internal/pkg/jwt"
)

type identityKey struct{}

// AuthRequired runs after jwtauth.Verifier and puts the caller's identity in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			id, err := jwt.IdentityFromToken(token)
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithIdentity(ctx context.Context, id jwt.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by AuthRequired.
func IdentityFrom(ctx context.Context) (jwt.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(jwt.Identity)
	return id, ok
}
