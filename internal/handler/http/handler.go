package http

import (
	"encoding/json"
	"net/http"

	"github.com/securefront/workforce-backend-go/internal/handler/http/middleware"
	"github.com/securefront/workforce-backend-go/internal/handler/http/response"
	"github.com/securefront/workforce-backend-go/internal/pkg/jwt"
)

// caller returns the authenticated identity or writes a 401.
func caller(w http.ResponseWriter, r *http.Request) (jwt.Identity, bool) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
	}
	return id, ok
}

// decodeJSON decodes the request body into v or writes a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}
