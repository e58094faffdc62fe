package transaction

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

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	WalletID         uuid.UUID         `json:"wallet_id"`
	CategoryID       uuid.UUID         `json:"category_id"`
	Amount           int64             `json:"amount"`
	Type             ledger.TxType     `json:"type"`
	Description      string            `json:"description"`
	Date             time.Time         `json:"date"`
	IsRecurring      bool              `json:"is_recurring"`
	RecurringPattern ledger.Recurrence `json:"recurring_pattern"`
	Tags             []string          `json:"tags"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	tx, err := h.svc.CreateTransaction(r.Context(), ledger.TransactionParams{
		WalletID:         req.WalletID,
		CategoryID:       req.CategoryID,
		Amount:           req.Amount,
		Type:             req.Type,
		Description:      req.Description,
		Date:             req.Date,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
		Tags:             req.Tags,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, tx)
}

// list returns the transactions of one wallet: wallet_id when given,
// the current wallet otherwise. all=true disables the wallet filter.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs := h.svc.Store().Transactions()

	if r.URL.Query().Get("all") == "true" {
		respond.JSON(w, http.StatusOK, txs)
		return
	}

	walletID := uuid.Nil

	if s := r.URL.Query().Get("wallet_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			respond.BadRequest(w, "invalid wallet_id")
			return
		}

		walletID = id
	}

	if walletID == uuid.Nil {
		wallet := h.svc.Store().CurrentWallet()
		if wallet == nil {
			respond.JSON(w, http.StatusOK, []*ledger.Transaction{})
			return
		}

		walletID = wallet.ID
	}

	filtered := make([]*ledger.Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.WalletID == walletID {
			filtered = append(filtered, tx)
		}
	}

	respond.JSON(w, http.StatusOK, filtered)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	tx := h.svc.Store().TransactionByID(id)
	if tx == nil {
		respond.JSON(w, http.StatusNotFound, map[string]string{"error": "transaction not found"})
		return
	}

	respond.JSON(w, http.StatusOK, tx)
}

type updateTransactionRequest struct {
	WalletID         *uuid.UUID         `json:"wallet_id,omitempty"`
	CategoryID       *uuid.UUID         `json:"category_id,omitempty"`
	Amount           *int64             `json:"amount,omitempty"`
	Type             *ledger.TxType     `json:"type,omitempty"`
	Description      *string            `json:"description,omitempty"`
	Date             *time.Time         `json:"date,omitempty"`
	IsRecurring      *bool              `json:"is_recurring,omitempty"`
	RecurringPattern *ledger.Recurrence `json:"recurring_pattern,omitempty"`
	Tags             []string           `json:"tags,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	tx, err := h.svc.UpdateTransaction(r.Context(), id, ledger.TransactionPatch{
		WalletID:         req.WalletID,
		CategoryID:       req.CategoryID,
		Amount:           req.Amount,
		Type:             req.Type,
		Description:      req.Description,
		Date:             req.Date,
		IsRecurring:      req.IsRecurring,
		RecurringPattern: req.RecurringPattern,
		Tags:             req.Tags,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, tx)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}

	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
