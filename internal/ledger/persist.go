package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Stable snapshot keys, one record per entity collection plus the
// session user and the active wallet selection.
const (
	snapKeyUser          = "user"
	snapKeyCurrentWallet = "current_wallet"
	snapKeyWallets       = "wallets"
	snapKeyCategories    = "categories"
	snapKeyTransactions  = "transactions"
	snapKeyBudgets       = "budgets"
	snapKeyGoals         = "goals"
	snapKeyDebts         = "debts"
)

// persist writes the full store snapshot. Failures are logged and
// swallowed: in-memory state stays authoritative for the session, the
// change may simply be lost on reload.
//
// Must be called with the store write lock held.
func (s *Service) persist(ctx context.Context) {
	records := []struct {
		key   string
		value any
	}{
		{snapKeyUser, s.store.user},
		{snapKeyCurrentWallet, s.store.currentWalletID},
		{snapKeyWallets, s.store.wallets},
		{snapKeyCategories, s.store.categories},
		{snapKeyTransactions, s.store.transactions},
		{snapKeyBudgets, s.store.budgets},
		{snapKeyGoals, s.store.goals},
		{snapKeyDebts, s.store.debts},
	}

	for _, rec := range records {
		data, err := json.Marshal(rec.value)
		if err != nil {
			s.log.Warn("snapshot encode failed", "key", rec.key, "error", err)
			continue
		}

		if err := s.snap.Put(ctx, rec.key, data); err != nil {
			s.log.Warn("snapshot write failed", "key", rec.key, "error", err)
		}
	}
}

// Load restores the store from the snapshotter. Absent keys default to
// empty collections, except categories and wallets, which receive seed
// defaults so a fresh user has a usable app.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := s.loadKey(ctx, snapKeyUser, &s.store.user); err != nil {
		return err
	}

	if err := s.loadKey(ctx, snapKeyWallets, &s.store.wallets); err != nil {
		return err
	}

	if err := s.loadKey(ctx, snapKeyCategories, &s.store.categories); err != nil {
		return err
	}

	if err := s.loadKey(ctx, snapKeyTransactions, &s.store.transactions); err != nil {
		return err
	}

	if err := s.loadKey(ctx, snapKeyBudgets, &s.store.budgets); err != nil {
		return err
	}

	if err := s.loadKey(ctx, snapKeyGoals, &s.store.goals); err != nil {
		return err
	}

	if err := s.loadKey(ctx, snapKeyDebts, &s.store.debts); err != nil {
		return err
	}

	var current uuid.UUID
	if err := s.loadKey(ctx, snapKeyCurrentWallet, &current); err != nil {
		return err
	}

	now := s.now()

	if len(s.store.categories) == 0 {
		s.store.categories = defaultCategories(s.userID(), now)
	}

	if len(s.store.wallets) == 0 {
		s.store.wallets = []*Wallet{defaultWallet(s.userID(), now)}
	}

	if s.store.walletByID(current) == nil {
		current = uuid.Nil

		for _, w := range s.store.wallets {
			if w.IsDefault {
				current = w.ID
				break
			}
		}

		if current == uuid.Nil {
			current = s.store.wallets[0].ID
		}
	}

	s.store.currentWalletID = current

	return nil
}

func (s *Service) loadKey(ctx context.Context, key string, dst any) error {
	data, err := s.snap.Get(ctx, key)
	if errors.Is(err, ErrNoSnapshot) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("loading snapshot %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding snapshot %q: %w", key, err)
	}

	return nil
}
