package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds the in-memory entity collections and the active selections.
// It is a thin data holder: all validation and derived-field bookkeeping
// happens in Service, which is the only writer. Readers (aggregation,
// export, handlers) go through the accessors below.
type Store struct {
	mu sync.RWMutex

	user            *User
	wallets         []*Wallet
	currentWalletID uuid.UUID
	categories      []*Category
	transactions    []*Transaction
	budgets         []*Budget
	goals           []*SavingsGoal
	debts           []*Debt
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

func (s *Store) Wallets() []*Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Wallet, len(s.wallets))
	copy(out, s.wallets)

	return out
}

func (s *Store) WalletByID(id uuid.UUID) *Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.walletByID(id)
}

// CurrentWallet returns the active wallet, or nil when none is selected.
func (s *Store) CurrentWallet() *Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.walletByID(s.currentWalletID)
}

func (s *Store) Categories() []*Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Category, len(s.categories))
	copy(out, s.categories)

	return out
}

func (s *Store) CategoryByID(id uuid.UUID) *Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.categoryByID(id)
}

func (s *Store) Transactions() []*Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Transaction, len(s.transactions))
	copy(out, s.transactions)

	return out
}

func (s *Store) TransactionByID(id uuid.UUID) *Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.transactionByID(id)
}

func (s *Store) Budgets() []*Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Budget, len(s.budgets))
	copy(out, s.budgets)

	return out
}

func (s *Store) BudgetByID(id uuid.UUID) *Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.budgetByID(id)
}

func (s *Store) Goals() []*SavingsGoal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*SavingsGoal, len(s.goals))
	copy(out, s.goals)

	return out
}

func (s *Store) Debts() []*Debt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Debt, len(s.debts))
	copy(out, s.debts)

	return out
}

// Unlocked lookups, shared by accessors and the mutation layer.

func (s *Store) walletByID(id uuid.UUID) *Wallet {
	for _, w := range s.wallets {
		if w.ID == id {
			return w
		}
	}

	return nil
}

func (s *Store) categoryByID(id uuid.UUID) *Category {
	for _, c := range s.categories {
		if c.ID == id {
			return c
		}
	}

	return nil
}

func (s *Store) transactionByID(id uuid.UUID) *Transaction {
	for _, t := range s.transactions {
		if t.ID == id {
			return t
		}
	}

	return nil
}

func (s *Store) budgetByID(id uuid.UUID) *Budget {
	for _, b := range s.budgets {
		if b.ID == id {
			return b
		}
	}

	return nil
}

func (s *Store) goalByID(id uuid.UUID) *SavingsGoal {
	for _, g := range s.goals {
		if g.ID == id {
			return g
		}
	}

	return nil
}

func (s *Store) debtByID(id uuid.UUID) *Debt {
	for _, d := range s.debts {
		if d.ID == id {
			return d
		}
	}

	return nil
}

func (s *Store) reset() {
	s.user = nil
	s.wallets = nil
	s.currentWalletID = uuid.Nil
	s.categories = nil
	s.transactions = nil
	s.budgets = nil
	s.goals = nil
	s.debts = nil
}

// defaultCategories is the standard set seeded for a fresh user.
func defaultCategories(userID uuid.UUID, now time.Time) []*Category {
	seeds := []struct {
		name  string
		icon  string
		color string
		typ   TxType
	}{
		{"Salary", "💰", "#10b981", TypeIncome},
		{"Food", "🍔", "#f59e0b", TypeExpense},
		{"Transport", "🚗", "#3b82f6", TypeExpense},
		{"Shopping", "🛍️", "#ec4899", TypeExpense},
		{"Entertainment", "🎬", "#8b5cf6", TypeExpense},
		{"Utilities", "💡", "#06b6d4", TypeExpense},
		{"Other Income", "💵", "#14b8a6", TypeIncome},
	}

	out := make([]*Category, len(seeds))
	for i, seed := range seeds {
		out[i] = &Category{
			ID:        uuid.New(),
			UserID:    userID,
			Name:      seed.name,
			Icon:      seed.icon,
			Color:     seed.color,
			Type:      seed.typ,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return out
}

func defaultWallet(userID uuid.UUID, now time.Time) *Wallet {
	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Main Wallet",
		Currency:  "USD",
		Balance:   0,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
