package budget

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/http/respond"
	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/report"
)

type Handler struct {
	svc     *ledger.Service
	reports *report.Service
}

func NewHandler(svc *ledger.Service, reports *report.Service) *Handler {
	return &Handler{svc: svc, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/status", h.status)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createBudgetRequest struct {
	CategoryID     uuid.UUID           `json:"category_id"`
	WalletID       uuid.UUID           `json:"wallet_id"`
	Limit          int64               `json:"limit"`
	Currency       string              `json:"currency"`
	Period         ledger.BudgetPeriod `json:"period"`
	AlertThreshold float64             `json:"alert_threshold"`
	StartDate      time.Time           `json:"start_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	budget, err := h.svc.CreateBudget(r.Context(), ledger.BudgetParams{
		CategoryID:     req.CategoryID,
		WalletID:       req.WalletID,
		Limit:          req.Limit,
		Currency:       req.Currency,
		Period:         req.Period,
		AlertThreshold: req.AlertThreshold,
		StartDate:      req.StartDate,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, budget)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Store().Budgets())
}

// status reports each budget's consumption with over-limit and alert
// flags resolved.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.reports.BudgetStatuses())
}

type updateBudgetRequest struct {
	CategoryID     *uuid.UUID           `json:"category_id,omitempty"`
	WalletID       *uuid.UUID           `json:"wallet_id,omitempty"`
	Limit          *int64               `json:"limit,omitempty"`
	Currency       *string              `json:"currency,omitempty"`
	Period         *ledger.BudgetPeriod `json:"period,omitempty"`
	AlertThreshold *float64             `json:"alert_threshold,omitempty"`
	StartDate      *time.Time           `json:"start_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	budget, err := h.svc.UpdateBudget(r.Context(), id, ledger.BudgetPatch{
		CategoryID:     req.CategoryID,
		WalletID:       req.WalletID,
		Limit:          req.Limit,
		Currency:       req.Currency,
		Period:         req.Period,
		AlertThreshold: req.AlertThreshold,
		StartDate:      req.StartDate,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, budget)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	if err := h.svc.DeleteBudget(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
