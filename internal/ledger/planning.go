package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Savings goals and debts are pure CRUD: no derived-state side effects
// on wallets, budgets or transactions.

type GoalParams struct {
	WalletID      uuid.UUID
	Name          string
	TargetAmount  int64
	CurrentAmount int64
	Currency      string
	Deadline      time.Time
	Description   string
	Priority      Priority
}

type GoalPatch struct {
	Name          *string
	TargetAmount  *int64
	CurrentAmount *int64 // manually tracked progress
	Deadline      *time.Time
	Description   *string
	Priority      *Priority
}

func (s *Service) CreateGoal(ctx context.Context, p GoalParams) (*SavingsGoal, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: goal name is required", ErrValidation)
	}

	if p.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", ErrValidation)
	}

	if p.CurrentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", ErrValidation)
	}

	if p.Priority == "" {
		p.Priority = PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	walletID := p.WalletID
	if walletID == uuid.Nil {
		walletID = s.store.currentWalletID
	}

	if p.Currency == "" {
		if w := s.store.walletByID(walletID); w != nil {
			p.Currency = w.Currency
		} else {
			p.Currency = "USD"
		}
	}

	now := s.now()
	g := &SavingsGoal{
		ID:            uuid.New(),
		UserID:        s.userID(),
		WalletID:      walletID,
		Name:          p.Name,
		TargetAmount:  p.TargetAmount,
		CurrentAmount: p.CurrentAmount,
		Currency:      p.Currency,
		Deadline:      p.Deadline,
		Description:   p.Description,
		Priority:      p.Priority,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.store.goals = append(s.store.goals, g)

	s.persist(ctx)

	return g, nil
}

func (s *Service) UpdateGoal(ctx context.Context, id uuid.UUID, patch GoalPatch) (*SavingsGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	g := s.store.goalByID(id)
	if g == nil {
		return nil, fmt.Errorf("%w: savings goal %s", ErrNotFound, id)
	}

	if patch.TargetAmount != nil && *patch.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", ErrValidation)
	}

	if patch.CurrentAmount != nil && *patch.CurrentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", ErrValidation)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: goal name is required", ErrValidation)
		}

		g.Name = *patch.Name
	}

	if patch.TargetAmount != nil {
		g.TargetAmount = *patch.TargetAmount
	}

	if patch.CurrentAmount != nil {
		g.CurrentAmount = *patch.CurrentAmount
	}

	if patch.Deadline != nil {
		g.Deadline = *patch.Deadline
	}

	if patch.Description != nil {
		g.Description = *patch.Description
	}

	if patch.Priority != nil {
		g.Priority = *patch.Priority
	}

	g.UpdatedAt = s.now()

	s.persist(ctx)

	return g, nil
}

func (s *Service) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.goalByID(id) == nil {
		return fmt.Errorf("%w: savings goal %s", ErrNotFound, id)
	}

	for i, g := range s.store.goals {
		if g.ID == id {
			s.store.goals = append(s.store.goals[:i], s.store.goals[i+1:]...)
			break
		}
	}

	s.persist(ctx)

	return nil
}

type DebtParams struct {
	Name         string
	Amount       int64
	Currency     string
	InterestRate float64
	CreditorName string
	DueDate      time.Time
	Notes        string
}

type DebtPatch struct {
	Name         *string
	Amount       *int64
	InterestRate *float64
	CreditorName *string
	DueDate      *time.Time
	Notes        *string
}

func (s *Service) CreateDebt(ctx context.Context, p DebtParams) (*Debt, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: debt name is required", ErrValidation)
	}

	if p.Amount <= 0 {
		return nil, fmt.Errorf("%w: debt amount must be positive", ErrValidation)
	}

	if p.InterestRate < 0 {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	}

	if p.Currency == "" {
		p.Currency = "USD"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.now()
	d := &Debt{
		ID:           uuid.New(),
		UserID:       s.userID(),
		Name:         p.Name,
		Amount:       p.Amount,
		Currency:     p.Currency,
		InterestRate: p.InterestRate,
		CreditorName: p.CreditorName,
		DueDate:      p.DueDate,
		Notes:        p.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.store.debts = append(s.store.debts, d)

	s.persist(ctx)

	return d, nil
}

func (s *Service) UpdateDebt(ctx context.Context, id uuid.UUID, patch DebtPatch) (*Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	d := s.store.debtByID(id)
	if d == nil {
		return nil, fmt.Errorf("%w: debt %s", ErrNotFound, id)
	}

	if patch.Amount != nil && *patch.Amount <= 0 {
		return nil, fmt.Errorf("%w: debt amount must be positive", ErrValidation)
	}

	if patch.InterestRate != nil && *patch.InterestRate < 0 {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: debt name is required", ErrValidation)
		}

		d.Name = *patch.Name
	}

	if patch.Amount != nil {
		d.Amount = *patch.Amount
	}

	if patch.InterestRate != nil {
		d.InterestRate = *patch.InterestRate
	}

	if patch.CreditorName != nil {
		d.CreditorName = *patch.CreditorName
	}

	if patch.DueDate != nil {
		d.DueDate = *patch.DueDate
	}

	if patch.Notes != nil {
		d.Notes = *patch.Notes
	}

	d.UpdatedAt = s.now()

	s.persist(ctx)

	return d, nil
}

func (s *Service) DeleteDebt(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.debtByID(id) == nil {
		return fmt.Errorf("%w: debt %s", ErrNotFound, id)
	}

	for i, d := range s.store.debts {
		if d.ID == id {
			s.store.debts = append(s.store.debts[:i], s.store.debts[i+1:]...)
			break
		}
	}

	s.persist(ctx)

	return nil
}
