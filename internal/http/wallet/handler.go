package wallet

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/http/respond"
	"github.com/centavoapp/centavo/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/current", h.current)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/select", h.selectWallet)
}

type createWalletRequest struct {
	Name        string `json:"name"`
	Currency    string `json:"currency"`
	Balance     int64  `json:"balance"`
	Description string `json:"description"`
	IsDefault   bool   `json:"is_default"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	wallet, err := h.svc.CreateWallet(r.Context(), ledger.WalletParams{
		Name:        req.Name,
		Currency:    req.Currency,
		Balance:     req.Balance,
		Description: req.Description,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, wallet)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Store().Wallets())
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	wallet := h.svc.Store().CurrentWallet()
	if wallet == nil {
		respond.Error(w, ledger.ErrNoWallet)
		return
	}

	respond.JSON(w, http.StatusOK, wallet)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	wallet := h.svc.Store().WalletByID(id)
	if wallet == nil {
		respond.JSON(w, http.StatusNotFound, map[string]string{"error": "wallet not found"})
		return
	}

	respond.JSON(w, http.StatusOK, wallet)
}

type updateWalletRequest struct {
	Name        *string `json:"name,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	Balance     *int64  `json:"balance,omitempty"`
	Description *string `json:"description,omitempty"`
	IsDefault   *bool   `json:"is_default,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	var req updateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	wallet, err := h.svc.UpdateWallet(r.Context(), id, ledger.WalletPatch{
		Name:        req.Name,
		Currency:    req.Currency,
		Balance:     req.Balance,
		Description: req.Description,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, wallet)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	if err := h.svc.DeleteWallet(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) selectWallet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	if err := h.svc.SelectWallet(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
