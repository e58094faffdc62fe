package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type WalletParams struct {
	Name        string
	Currency    string
	Balance     int64
	Description string
	IsDefault   bool
}

type WalletPatch struct {
	Name        *string
	Currency    *string
	Balance     *int64 // external adjustment; breaks the derived invariant on purpose
	Description *string
	IsDefault   *bool
}

func (s *Service) CreateWallet(ctx context.Context, p WalletParams) (*Wallet, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: wallet name is required", ErrValidation)
	}

	if p.Currency == "" {
		p.Currency = "USD"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.now()
	w := &Wallet{
		ID:          uuid.New(),
		UserID:      s.userID(),
		Name:        p.Name,
		Currency:    p.Currency,
		Balance:     p.Balance,
		Description: p.Description,
		IsDefault:   p.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The first wallet always becomes default and current.
	if len(s.store.wallets) == 0 {
		w.IsDefault = true
	}

	if w.IsDefault {
		s.demoteDefaults()
		s.store.currentWalletID = w.ID
	}

	s.store.wallets = append(s.store.wallets, w)

	s.persist(ctx)

	return w, nil
}

func (s *Service) UpdateWallet(ctx context.Context, id uuid.UUID, patch WalletPatch) (*Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	w := s.store.walletByID(id)
	if w == nil {
		return nil, fmt.Errorf("%w: wallet %s", ErrNotFound, id)
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: wallet name is required", ErrValidation)
		}

		w.Name = *patch.Name
	}

	if patch.Currency != nil {
		w.Currency = *patch.Currency
	}

	if patch.Balance != nil {
		w.Balance = *patch.Balance
	}

	if patch.Description != nil {
		w.Description = *patch.Description
	}

	if patch.IsDefault != nil && *patch.IsDefault && !w.IsDefault {
		s.demoteDefaults()
		w.IsDefault = true
	}

	w.UpdatedAt = s.now()

	s.persist(ctx)

	return w, nil
}

// DeleteWallet refuses to remove the last remaining wallet. When the
// deleted wallet was the current selection, the selection falls back to
// any remaining wallet.
func (s *Service) DeleteWallet(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.walletByID(id) == nil {
		return fmt.Errorf("%w: wallet %s", ErrNotFound, id)
	}

	if len(s.store.wallets) == 1 {
		return fmt.Errorf("%w: cannot delete the last wallet", ErrConstraint)
	}

	for i, w := range s.store.wallets {
		if w.ID == id {
			s.store.wallets = append(s.store.wallets[:i], s.store.wallets[i+1:]...)
			break
		}
	}

	if s.store.currentWalletID == id {
		s.store.currentWalletID = s.store.wallets[0].ID
	}

	s.persist(ctx)

	return nil
}

// SelectWallet makes the given wallet the active one for aggregation.
func (s *Service) SelectWallet(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.walletByID(id) == nil {
		return fmt.Errorf("%w: wallet %s", ErrNotFound, id)
	}

	s.store.currentWalletID = id

	s.persist(ctx)

	return nil
}

// demoteDefaults clears the default flag on every wallet so a new one
// can take it. Must be called with the store write lock held.
func (s *Service) demoteDefaults() {
	for _, w := range s.store.wallets {
		w.IsDefault = false
	}
}
