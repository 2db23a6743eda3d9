package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

// Verifier returns middleware that extracts and parses the bearer token
// from the Authorization header into the request context.
func (g *Gate) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(g.tokenAuth)
}

// Authenticator gates every mutating route: a missing token yields 401, a
// present but invalid or expired one yields 403.
func (g *Gate) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())

		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized", portfolio.ErrNoToken.Error())
			return
		}
		if err != nil || token == nil {
			writeAuthError(w, http.StatusForbidden, "forbidden", portfolio.ErrTokenInvalid.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}
