package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TransactionParams struct {
	WalletID         uuid.UUID // uuid.Nil routes to the current wallet
	CategoryID       uuid.UUID
	Amount           int64
	Type             TxType
	Description      string
	Date             time.Time
	IsRecurring      bool
	RecurringPattern Recurrence
	Tags             []string
}

type TransactionPatch struct {
	WalletID         *uuid.UUID
	CategoryID       *uuid.UUID
	Amount           *int64
	Type             *TxType
	Description      *string
	Date             *time.Time
	IsRecurring      *bool
	RecurringPattern *Recurrence
	Tags             []string
}

func (s *Service) CreateTransaction(ctx context.Context, p TransactionParams) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if p.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if p.Type != TypeIncome && p.Type != TypeExpense {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}

	if p.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	if p.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	if s.store.categoryByID(p.CategoryID) == nil {
		return nil, fmt.Errorf("%w: category %s does not exist", ErrValidation, p.CategoryID)
	}

	walletID := p.WalletID
	if walletID == uuid.Nil {
		walletID = s.store.currentWalletID
	}

	if s.store.walletByID(walletID) == nil {
		return nil, fmt.Errorf("%w: wallet %s does not exist", ErrValidation, walletID)
	}

	now := s.now()
	tx := &Transaction{
		ID:               uuid.New(),
		UserID:           s.userID(),
		WalletID:         walletID,
		CategoryID:       p.CategoryID,
		Amount:           p.Amount,
		Type:             p.Type,
		Description:      p.Description,
		Date:             p.Date,
		IsRecurring:      p.IsRecurring,
		RecurringPattern: p.RecurringPattern,
		Tags:             p.Tags,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	s.store.transactions = append(s.store.transactions, tx)
	s.applyTransactionEffects(tx, +1)

	s.persist(ctx)

	return tx, nil
}

// UpdateTransaction first reverses the old transaction's effects against
// its own original wallet and budgets, then applies the patched version.
// This keeps balances correct even when the patched transaction belongs
// to a wallet other than the currently selected one.
func (s *Service) UpdateTransaction(ctx context.Context, id uuid.UUID, patch TransactionPatch) (*Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tx := s.store.transactionByID(id)
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}

	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if patch.Type != nil && *patch.Type != TypeIncome && *patch.Type != TypeExpense {
		return nil, fmt.Errorf("%w: type must be income or expense", ErrValidation)
	}

	if patch.Date != nil && patch.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}

	if patch.CategoryID != nil && s.store.categoryByID(*patch.CategoryID) == nil {
		return nil, fmt.Errorf("%w: category %s does not exist", ErrValidation, *patch.CategoryID)
	}

	if patch.WalletID != nil && s.store.walletByID(*patch.WalletID) == nil {
		return nil, fmt.Errorf("%w: wallet %s does not exist", ErrValidation, *patch.WalletID)
	}

	s.applyTransactionEffects(tx, -1)

	if patch.WalletID != nil {
		tx.WalletID = *patch.WalletID
	}

	if patch.CategoryID != nil {
		tx.CategoryID = *patch.CategoryID
	}

	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}

	if patch.Type != nil {
		tx.Type = *patch.Type
	}

	if patch.Description != nil {
		tx.Description = *patch.Description
	}

	if patch.Date != nil {
		tx.Date = *patch.Date
	}

	if patch.IsRecurring != nil {
		tx.IsRecurring = *patch.IsRecurring
	}

	if patch.RecurringPattern != nil {
		tx.RecurringPattern = *patch.RecurringPattern
	}

	if patch.Tags != nil {
		tx.Tags = patch.Tags
	}

	tx.UpdatedAt = s.now()

	s.applyTransactionEffects(tx, +1)

	s.persist(ctx)

	return tx, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	tx := s.store.transactionByID(id)
	if tx == nil {
		return fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}

	s.applyTransactionEffects(tx, -1)

	for i, t := range s.store.transactions {
		if t.ID == id {
			s.store.transactions = append(s.store.transactions[:i], s.store.transactions[i+1:]...)
			break
		}
	}

	s.persist(ctx)

	return nil
}

// userID returns the current user's ID, or uuid.Nil before login.
// Must be called with the store lock held.
func (s *Service) userID() uuid.UUID {
	if s.store.user == nil {
		return uuid.Nil
	}

	return s.store.user.ID
}
