package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
	"github.com/dcamara/simple-portfolio/pkg/portfolio/auth"
)

// AuthHandler handles the login endpoint.
type AuthHandler struct {
	gate *auth.Gate
}

func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// Routes returns the router for auth endpoints
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	return r
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token and the authenticated identity.
type LoginResponse struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

// Login authenticates the credential pair and issues an access token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, &portfolio.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}

	identity, err := h.gate.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}

	token, err := h.gate.IssueToken(identity)
	if err != nil {
		renderError(w, r, err)
		return
	}

	slog.Info("login succeeded", "username", identity.Username)
	render.JSON(w, r, LoginResponse{Token: token, User: *identity})
}
