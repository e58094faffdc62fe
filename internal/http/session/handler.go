// Package session exposes login, registration and logout. Credentials
// are never verified; this mirrors the app's demo auth, where any
// email/password pair produces a session.
package session

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/centavoapp/centavo/internal/auth"
	"github.com/centavoapp/centavo/internal/http/respond"
	"github.com/centavoapp/centavo/internal/ledger"
)

type Handler struct {
	svc    *ledger.Service
	issuer *auth.Issuer
}

// NewHandler accepts a nil issuer, in which case responses carry no
// token and the API runs unauthenticated.
func NewHandler(svc *ledger.Service, issuer *auth.Issuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/register", h.register)
	r.Post("/logout", h.logout)
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type sessionResponse struct {
	User  *ledger.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.respondSession(w, user)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.respondSession(w, user)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondSession(w http.ResponseWriter, user *ledger.User) {
	resp := sessionResponse{User: user}

	if h.issuer != nil {
		token, err := h.issuer.Issue(user.ID, user.Email)
		if err != nil {
			respond.Error(w, err)
			return
		}

		resp.Token = token
	}

	respond.JSON(w, http.StatusOK, resp)
}
