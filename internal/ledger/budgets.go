package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BudgetParams struct {
	CategoryID     uuid.UUID
	WalletID       uuid.UUID // uuid.Nil scopes the budget to every wallet
	Limit          int64
	Currency       string
	Period         BudgetPeriod
	AlertThreshold float64
	StartDate      time.Time
}

type BudgetPatch struct {
	CategoryID     *uuid.UUID
	WalletID       *uuid.UUID
	Limit          *int64
	Currency       *string
	Period         *BudgetPeriod
	AlertThreshold *float64
	StartDate      *time.Time
}

// CreateBudget seeds the spent total from the existing transaction log
// rather than starting at zero, so a budget created after transactions
// exist immediately reflects them.
func (s *Service) CreateBudget(ctx context.Context, p BudgetParams) (*Budget, error) {
	if p.Limit <= 0 {
		return nil, fmt.Errorf("%w: budget limit must be positive", ErrValidation)
	}

	if p.CategoryID == uuid.Nil {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}

	if p.Period == "" {
		p.Period = PeriodMonthly
	}

	if p.Period != PeriodWeekly && p.Period != PeriodMonthly && p.Period != PeriodYearly {
		return nil, fmt.Errorf("%w: period must be weekly, monthly or yearly", ErrValidation)
	}

	if p.AlertThreshold < 0 || p.AlertThreshold > 100 {
		return nil, fmt.Errorf("%w: alert threshold must be between 0 and 100", ErrValidation)
	}

	if p.AlertThreshold == 0 {
		p.AlertThreshold = 80
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.categoryByID(p.CategoryID) == nil {
		return nil, fmt.Errorf("%w: category %s does not exist", ErrValidation, p.CategoryID)
	}

	if p.WalletID != uuid.Nil && s.store.walletByID(p.WalletID) == nil {
		return nil, fmt.Errorf("%w: wallet %s does not exist", ErrValidation, p.WalletID)
	}

	now := s.now()

	if p.Currency == "" {
		if w := s.store.walletByID(s.store.currentWalletID); w != nil {
			p.Currency = w.Currency
		} else {
			p.Currency = "USD"
		}
	}

	startDate := p.StartDate
	if startDate.IsZero() {
		startDate = now
	}

	b := &Budget{
		ID:             uuid.New(),
		UserID:         s.userID(),
		CategoryID:     p.CategoryID,
		WalletID:       p.WalletID,
		Limit:          p.Limit,
		Currency:       p.Currency,
		Period:         p.Period,
		AlertThreshold: p.AlertThreshold,
		StartDate:      startDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.recomputeBudgetSpent(b)

	s.store.budgets = append(s.store.budgets, b)

	s.persist(ctx)

	return b, nil
}

// UpdateBudget patches the budget's settings. Spent is derived state and
// cannot be set by callers; it is recomputed from the transaction log
// after every patch because category, wallet and start date all change
// which transactions qualify.
func (s *Service) UpdateBudget(ctx context.Context, id uuid.UUID, patch BudgetPatch) (*Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.store.budgetByID(id)
	if b == nil {
		return nil, fmt.Errorf("%w: budget %s", ErrNotFound, id)
	}

	if patch.Limit != nil && *patch.Limit <= 0 {
		return nil, fmt.Errorf("%w: budget limit must be positive", ErrValidation)
	}

	if patch.AlertThreshold != nil && (*patch.AlertThreshold <= 0 || *patch.AlertThreshold > 100) {
		return nil, fmt.Errorf("%w: alert threshold must be between 0 and 100", ErrValidation)
	}

	if patch.Period != nil && *patch.Period != PeriodWeekly && *patch.Period != PeriodMonthly && *patch.Period != PeriodYearly {
		return nil, fmt.Errorf("%w: period must be weekly, monthly or yearly", ErrValidation)
	}

	if patch.CategoryID != nil && s.store.categoryByID(*patch.CategoryID) == nil {
		return nil, fmt.Errorf("%w: category %s does not exist", ErrValidation, *patch.CategoryID)
	}

	if patch.WalletID != nil && *patch.WalletID != uuid.Nil && s.store.walletByID(*patch.WalletID) == nil {
		return nil, fmt.Errorf("%w: wallet %s does not exist", ErrValidation, *patch.WalletID)
	}

	if patch.CategoryID != nil {
		b.CategoryID = *patch.CategoryID
	}

	if patch.WalletID != nil {
		b.WalletID = *patch.WalletID
	}

	if patch.Limit != nil {
		b.Limit = *patch.Limit
	}

	if patch.Currency != nil {
		b.Currency = *patch.Currency
	}

	if patch.Period != nil {
		b.Period = *patch.Period
	}

	if patch.AlertThreshold != nil {
		b.AlertThreshold = *patch.AlertThreshold
	}

	if patch.StartDate != nil {
		b.StartDate = *patch.StartDate
	}

	b.UpdatedAt = s.now()

	s.recomputeBudgetSpent(b)

	s.persist(ctx)

	return b, nil
}

func (s *Service) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.budgetByID(id) == nil {
		return fmt.Errorf("%w: budget %s", ErrNotFound, id)
	}

	for i, b := range s.store.budgets {
		if b.ID == id {
			s.store.budgets = append(s.store.budgets[:i], s.store.budgets[i+1:]...)
			break
		}
	}

	s.persist(ctx)

	return nil
}
