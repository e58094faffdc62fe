package ledger

import (
	"time"

	"github.com/google/uuid"
)

// TxType represents the type of a transaction or category (income or expense).
type TxType string

const (
	TypeIncome  TxType = "income"
	TypeExpense TxType = "expense"
)

// BudgetPeriod is the recurring window a budget ceiling applies to.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Recurrence is the repeat cadence of a recurring transaction. Future
// instances are not auto-generated; only the flag and cadence are stored.
type Recurrence string

const (
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
	RecurYearly  Recurrence = "yearly"
)

// Priority ranks a savings goal.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// User is the demo session owner. There is no credential verification;
// a user record is fabricated at login or registration.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Wallet is a named account holding a running balance in one currency.
// Balance is derived: it equals the signed sum of the wallet's current
// transactions unless adjusted directly through UpdateWallet.
type Wallet struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Currency    string    `json:"currency"`
	Balance     int64     `json:"balance"` // cents
	Description string    `json:"description,omitempty"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category classifies transactions and scopes budgets.
type Category struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Type      TxType    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction is a single income or expense entry.
type Transaction struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	WalletID         uuid.UUID  `json:"wallet_id"`
	CategoryID       uuid.UUID  `json:"category_id"`
	Amount           int64      `json:"amount"` // cents, always positive
	Type             TxType     `json:"type"`
	Description      string     `json:"description"`
	Date             time.Time  `json:"date"`
	IsRecurring      bool       `json:"is_recurring,omitempty"`
	RecurringPattern Recurrence `json:"recurring_pattern,omitempty"`
	Tags             []string   `json:"tags,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Budget is a spending ceiling for one category over a recurring period.
// Spent is derived and owned by the mutation layer; WalletID narrows the
// budget to one wallet, uuid.Nil means every wallet counts.
type Budget struct {
	ID             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	CategoryID     uuid.UUID    `json:"category_id"`
	WalletID       uuid.UUID    `json:"wallet_id,omitempty"`
	Limit          int64        `json:"limit"` // cents
	Spent          int64        `json:"spent"` // cents
	Currency       string       `json:"currency"`
	Period         BudgetPeriod `json:"period"`
	AlertThreshold float64      `json:"alert_threshold"` // percent
	StartDate      time.Time    `json:"start_date"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// SavingsGoal is a target amount tracked manually toward a deadline.
// It has no automatic linkage to transactions.
type SavingsGoal struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	WalletID      uuid.UUID `json:"wallet_id"`
	Name          string    `json:"name"`
	TargetAmount  int64     `json:"target_amount"`  // cents
	CurrentAmount int64     `json:"current_amount"` // cents
	Currency      string    `json:"currency"`
	Deadline      time.Time `json:"deadline"`
	Description   string    `json:"description,omitempty"`
	Priority      Priority  `json:"priority"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Debt is purely informational; it has no side effects on other entities.
type Debt struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Amount       int64     `json:"amount"` // cents
	Currency     string    `json:"currency"`
	InterestRate float64   `json:"interest_rate"`
	CreditorName string    `json:"creditor_name"`
	DueDate      time.Time `json:"due_date"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
