// Package report derives read-side aggregates from the ledger store:
// totals, category breakdowns, budget status and period reports. All
// functions are pure over the current snapshot and never mutate it.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/ledger"
)

// Period is a trailing window ending now. The empty Period means all time.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Valid reports whether p is a known window (or all time).
func (p Period) Valid() bool {
	switch p {
	case "", PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return true
	}

	return false
}

type Service struct {
	store *ledger.Store
	now   func() time.Time
}

func New(store *ledger.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// windowStart returns the inclusive lower bound of the period, or false
// for all time. There is no upper bound; this mirrors how the app has
// always filtered.
func (s *Service) windowStart(p Period) (time.Time, bool) {
	now := s.now()

	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, -1, 0), true
	case PeriodQuarter:
		return now.AddDate(0, -3, 0), true
	case PeriodYear:
		return now.AddDate(-1, 0, 0), true
	}

	return time.Time{}, false
}

// TotalIncome sums income amounts on the current wallet, optionally
// restricted to the trailing period. An empty transaction set yields 0.
func (s *Service) TotalIncome(p Period) int64 {
	return s.totalByType(ledger.TypeIncome, p)
}

// TotalExpense sums expense amounts on the current wallet, optionally
// restricted to the trailing period.
func (s *Service) TotalExpense(p Period) int64 {
	return s.totalByType(ledger.TypeExpense, p)
}

func (s *Service) totalByType(t ledger.TxType, p Period) int64 {
	wallet := s.store.CurrentWallet()
	if wallet == nil {
		return 0
	}

	start, windowed := s.windowStart(p)

	var sum int64

	for _, tx := range s.store.Transactions() {
		if tx.Type != t || tx.WalletID != wallet.ID {
			continue
		}

		if windowed && tx.Date.Before(start) {
			continue
		}

		sum += tx.Amount
	}

	return sum
}

// ExpenseByCategory maps category name to summed expense amount for the
// current wallet. Transactions whose category no longer resolves are
// skipped.
func (s *Service) ExpenseByCategory() map[string]int64 {
	return s.byCategory(ledger.TypeExpense)
}

// IncomeByCategory is the income counterpart of ExpenseByCategory.
func (s *Service) IncomeByCategory() map[string]int64 {
	return s.byCategory(ledger.TypeIncome)
}

func (s *Service) byCategory(t ledger.TxType) map[string]int64 {
	out := make(map[string]int64)

	wallet := s.store.CurrentWallet()
	if wallet == nil {
		return out
	}

	for _, tx := range s.store.Transactions() {
		if tx.Type != t || tx.WalletID != wallet.ID {
			continue
		}

		cat := s.store.CategoryByID(tx.CategoryID)
		if cat == nil {
			continue
		}

		out[cat.Name] += tx.Amount
	}

	return out
}

// BudgetStatus is the consumption state of one budget.
type BudgetStatus struct {
	Budget       *ledger.Budget `json:"budget"`
	CategoryName string         `json:"category_name"`
	Percentage   float64        `json:"percentage"`
	IsOverBudget bool           `json:"is_over_budget"`
	IsWarning    bool           `json:"is_warning"`
}

// BudgetStatuses resolves every budget against its category and flags
// over-limit and alert-threshold conditions.
func (s *Service) BudgetStatuses() []BudgetStatus {
	budgets := s.store.Budgets()
	out := make([]BudgetStatus, 0, len(budgets))

	for _, b := range budgets {
		name := "Unknown"
		if cat := s.store.CategoryByID(b.CategoryID); cat != nil {
			name = cat.Name
		}

		pct := 0.0
		if b.Limit > 0 {
			pct = float64(b.Spent) / float64(b.Limit) * 100
		}

		out = append(out, BudgetStatus{
			Budget:       b,
			CategoryName: name,
			Percentage:   pct,
			IsOverBudget: b.Spent > b.Limit,
			IsWarning:    pct >= b.AlertThreshold,
		})
	}

	return out
}

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Amount     int64     `json:"amount"`
	Count      int       `json:"count"`
}

// DayTotals carries one day's income and expense sums for trend charts.
type DayTotals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}

// Report aggregates one wallet's transactions over a period.
type Report struct {
	Period             Period               `json:"period"`
	TotalIncome        int64                `json:"total_income"`
	TotalExpense       int64                `json:"total_expense"`
	Balance            int64                `json:"balance"`
	TransactionCount   int                  `json:"transaction_count"`
	ExpensesByCategory []CategoryTotal      `json:"expenses_by_category"`
	IncomeByCategory   []CategoryTotal      `json:"income_by_category"`
	DailyTotals        map[string]DayTotals `json:"daily_totals"`
}

// ForPeriod builds a report for the given wallet (uuid.Nil means the
// current wallet). Category breakdowns are sorted descending by amount;
// ties keep their original encounter order. Unresolvable category
// references are reported under "Unknown".
func (s *Service) ForPeriod(p Period, walletID uuid.UUID) *Report {
	rep := &Report{
		Period:      p,
		DailyTotals: make(map[string]DayTotals),
	}

	if walletID == uuid.Nil {
		wallet := s.store.CurrentWallet()
		if wallet == nil {
			return rep
		}

		walletID = wallet.ID
	}

	start, windowed := s.windowStart(p)

	var expenses, income []CategoryTotal

	expenseIdx := make(map[uuid.UUID]int)
	incomeIdx := make(map[uuid.UUID]int)

	for _, tx := range s.store.Transactions() {
		if tx.WalletID != walletID {
			continue
		}

		if windowed && tx.Date.Before(start) {
			continue
		}

		rep.TransactionCount++

		day := tx.Date.Format(time.DateOnly)
		totals := rep.DailyTotals[day]

		switch tx.Type {
		case ledger.TypeIncome:
			rep.TotalIncome += tx.Amount
			totals.Income += tx.Amount
			income = s.accumulate(income, incomeIdx, tx)
		case ledger.TypeExpense:
			rep.TotalExpense += tx.Amount
			totals.Expense += tx.Amount
			expenses = s.accumulate(expenses, expenseIdx, tx)
		}

		rep.DailyTotals[day] = totals
	}

	rep.Balance = rep.TotalIncome - rep.TotalExpense

	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Amount > expenses[j].Amount })
	sort.SliceStable(income, func(i, j int) bool { return income[i].Amount > income[j].Amount })

	rep.ExpensesByCategory = expenses
	rep.IncomeByCategory = income

	return rep
}

func (s *Service) accumulate(rows []CategoryTotal, idx map[uuid.UUID]int, tx *ledger.Transaction) []CategoryTotal {
	if i, ok := idx[tx.CategoryID]; ok {
		rows[i].Amount += tx.Amount
		rows[i].Count++

		return rows
	}

	name := "Unknown"
	if cat := s.store.CategoryByID(tx.CategoryID); cat != nil {
		name = cat.Name
	}

	idx[tx.CategoryID] = len(rows)

	return append(rows, CategoryTotal{
		CategoryID: tx.CategoryID,
		Name:       name,
		Amount:     tx.Amount,
		Count:      1,
	})
}
