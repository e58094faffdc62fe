package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=snapshotter_mock.go -package=ledger

// Snapshotter is the persistence boundary: one JSON blob per entity
// collection under a stable key. Get returns ErrNoSnapshot for a key
// that has never been written.
type Snapshotter interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Wipe(ctx context.Context) error
}

// Service is the mutation layer: the only code allowed to change entity
// state, and the code responsible for keeping derived numbers (wallet
// balances, budget spent totals) consistent with the transaction log.
//
// Every mutation validates fully before touching the store, applies the
// state change and its derived-field effects atomically under the lock,
// and then writes a best-effort snapshot. Snapshot failures are logged
// and never fail the mutation; in-memory state stays authoritative.
type Service struct {
	mu    sync.Mutex
	store *Store
	snap  Snapshotter
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store *Store, snap Snapshotter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store: store,
		snap:  snap,
		log:   logger,
		now:   time.Now,
	}
}

// Store exposes the read side for aggregation and handlers.
func (s *Service) Store() *Store {
	return s.store
}

// Login fabricates a user record for any email/password pair. This is an
// explicit demo: the password is never checked or stored.
func (s *Service) Login(ctx context.Context, email, _ string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := &User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  displayName(email),
		CreatedAt: s.now(),
	}

	s.store.mu.Lock()
	s.store.user = user
	s.persist(ctx)
	s.store.mu.Unlock()

	return user, nil
}

// Register fabricates a user like Login and additionally seeds one
// default wallet and the standard category set, replacing whatever the
// store held before.
func (s *Service) Register(ctx context.Context, email, _, fullName string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	if strings.TrimSpace(fullName) == "" {
		fullName = displayName(email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  fullName,
		CreatedAt: now,
	}

	wallet := defaultWallet(user.ID, now)

	s.store.mu.Lock()
	s.store.user = user
	s.store.wallets = []*Wallet{wallet}
	s.store.currentWalletID = wallet.ID
	s.store.categories = defaultCategories(user.ID, now)
	s.persist(ctx)
	s.store.mu.Unlock()

	return user, nil
}

// Logout clears the in-memory store and the persisted snapshot. A wipe
// failure is logged and not surfaced; the session is gone either way.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.mu.Lock()
	s.store.reset()
	s.store.mu.Unlock()

	if err := s.snap.Wipe(ctx); err != nil {
		s.log.Warn("failed to wipe snapshot on logout", "error", err)
	}
}

func displayName(email string) string {
	name, _, found := strings.Cut(email, "@")
	if !found || name == "" {
		return email
	}

	return name
}

// applyTransactionEffects adjusts the derived fields that depend on tx:
// the balance of the transaction's own wallet and the spent totals of
// budgets the transaction qualifies for. sign is +1 when the transaction
// is being added and -1 when it is being reversed.
//
// Must be called with the store write lock held.
func (s *Service) applyTransactionEffects(tx *Transaction, sign int64) {
	if w := s.store.walletByID(tx.WalletID); w != nil {
		delta := tx.Amount * sign
		if tx.Type == TypeExpense {
			delta = -delta
		}

		w.Balance += delta
		w.UpdatedAt = s.now()
	}

	if tx.Type != TypeExpense {
		return
	}

	for _, b := range s.store.budgets {
		if !budgetMatches(b, tx) {
			continue
		}

		b.Spent += tx.Amount * sign
		b.UpdatedAt = s.now()
	}
}

// budgetMatches reports whether tx counts against b: an expense in the
// budget's category, dated on or after the budget's start, and on the
// budget's wallet when the budget is wallet-scoped.
func budgetMatches(b *Budget, tx *Transaction) bool {
	if tx.Type != TypeExpense {
		return false
	}

	if b.CategoryID != tx.CategoryID {
		return false
	}

	if tx.Date.Before(b.StartDate) {
		return false
	}

	if b.WalletID != uuid.Nil && b.WalletID != tx.WalletID {
		return false
	}

	return true
}

// recomputeBudgetSpent rebuilds b.Spent from the transaction log. Used
// when a budget is created or its matching rules change, so the spent
// total holds even for budgets added after transactions exist.
//
// Must be called with the store write lock held.
func (s *Service) recomputeBudgetSpent(b *Budget) {
	var spent int64

	for _, tx := range s.store.transactions {
		if budgetMatches(b, tx) {
			spent += tx.Amount
		}
	}

	b.Spent = spent
}
