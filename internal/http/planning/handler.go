// Package planning serves savings goals and debts. Both are plain
// records with no effect on balances or budgets.
package planning

import (
	"encoding/json"
	"net/http"
	"time"

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

func (h *Handler) GoalRoutes(r chi.Router) {
	r.Get("/", h.listGoals)
	r.Post("/", h.createGoal)
	r.Patch("/{id}", h.updateGoal)
	r.Delete("/{id}", h.deleteGoal)
}

func (h *Handler) DebtRoutes(r chi.Router) {
	r.Get("/", h.listDebts)
	r.Post("/", h.createDebt)
	r.Patch("/{id}", h.updateDebt)
	r.Delete("/{id}", h.deleteDebt)
}

type createGoalRequest struct {
	WalletID      uuid.UUID       `json:"wallet_id"`
	Name          string          `json:"name"`
	TargetAmount  int64           `json:"target_amount"`
	CurrentAmount int64           `json:"current_amount"`
	Currency      string          `json:"currency"`
	Deadline      time.Time       `json:"deadline"`
	Description   string          `json:"description"`
	Priority      ledger.Priority `json:"priority"`
}

func (h *Handler) createGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	goal, err := h.svc.CreateGoal(r.Context(), ledger.GoalParams{
		WalletID:      req.WalletID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Currency:      req.Currency,
		Deadline:      req.Deadline,
		Description:   req.Description,
		Priority:      req.Priority,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, goal)
}

func (h *Handler) listGoals(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Store().Goals())
}

type updateGoalRequest struct {
	Name          *string          `json:"name,omitempty"`
	TargetAmount  *int64           `json:"target_amount,omitempty"`
	CurrentAmount *int64           `json:"current_amount,omitempty"`
	Deadline      *time.Time       `json:"deadline,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Priority      *ledger.Priority `json:"priority,omitempty"`
}

func (h *Handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	var req updateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	goal, err := h.svc.UpdateGoal(r.Context(), id, ledger.GoalPatch{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		Description:   req.Description,
		Priority:      req.Priority,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, goal)
}

func (h *Handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	if err := h.svc.DeleteGoal(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createDebtRequest struct {
	Name         string    `json:"name"`
	Amount       int64     `json:"amount"`
	Currency     string    `json:"currency"`
	InterestRate float64   `json:"interest_rate"`
	CreditorName string    `json:"creditor_name"`
	DueDate      time.Time `json:"due_date"`
	Notes        string    `json:"notes"`
}

func (h *Handler) createDebt(w http.ResponseWriter, r *http.Request) {
	var req createDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	debt, err := h.svc.CreateDebt(r.Context(), ledger.DebtParams{
		Name:         req.Name,
		Amount:       req.Amount,
		Currency:     req.Currency,
		InterestRate: req.InterestRate,
		CreditorName: req.CreditorName,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, debt)
}

func (h *Handler) listDebts(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.svc.Store().Debts())
}

type updateDebtRequest struct {
	Name         *string    `json:"name,omitempty"`
	Amount       *int64     `json:"amount,omitempty"`
	InterestRate *float64   `json:"interest_rate,omitempty"`
	CreditorName *string    `json:"creditor_name,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (h *Handler) updateDebt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	var req updateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	debt, err := h.svc.UpdateDebt(r.Context(), id, ledger.DebtPatch{
		Name:         req.Name,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		CreditorName: req.CreditorName,
		DueDate:      req.DueDate,
		Notes:        req.Notes,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, debt)
}

func (h *Handler) deleteDebt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	if err := h.svc.DeleteDebt(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
