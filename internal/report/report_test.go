package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/report"
	"github.com/centavoapp/centavo/internal/snapshot/memstore"
)

func newLedger(t *testing.T) *ledger.Service {
	t.Helper()

	svc := ledger.NewService(ledger.NewStore(), memstore.New(), nil)

	_, err := svc.Register(context.Background(), "pat@example.com", "secret", "Pat Tester")
	require.NoError(t, err)

	return svc
}

func categoryNamed(t *testing.T, svc *ledger.Service, name string) *ledger.Category {
	t.Helper()

	for _, c := range svc.Store().Categories() {
		if c.Name == name {
			return c
		}
	}

	t.Fatalf("category %q not seeded", name)

	return nil
}

func addTx(t *testing.T, svc *ledger.Service, cat *ledger.Category, amount int64, date time.Time) *ledger.Transaction {
	t.Helper()

	tx, err := svc.CreateTransaction(context.Background(), ledger.TransactionParams{
		CategoryID: cat.ID,
		Amount:     amount,
		Type:       cat.Type,
		Date:       date,
	})
	require.NoError(t, err)

	return tx
}

func TestEmptyLedgerReportsZero(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())

	assert.Zero(t, reports.TotalIncome(""))
	assert.Zero(t, reports.TotalExpense(""))
	assert.Empty(t, reports.ExpenseByCategory())
	assert.Empty(t, reports.BudgetStatuses())

	rep := reports.ForPeriod("", uuid.Nil)
	assert.Zero(t, rep.TransactionCount)
	assert.Zero(t, rep.Balance)
	assert.Empty(t, rep.DailyTotals)
}

func TestTotalsAndBalance(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())

	now := time.Now()

	addTx(t, svc, categoryNamed(t, svc, "Salary"), 100_000, now)
	addTx(t, svc, categoryNamed(t, svc, "Food"), 20_000, now)
	addTx(t, svc, categoryNamed(t, svc, "Transport"), 10_000, now)

	assert.Equal(t, int64(100_000), reports.TotalIncome(""))
	assert.Equal(t, int64(30_000), reports.TotalExpense(""))

	rep := reports.ForPeriod("", uuid.Nil)
	assert.Equal(t, int64(70_000), rep.Balance)
	assert.Equal(t, rep.TotalIncome-rep.TotalExpense, rep.Balance)
	assert.Equal(t, 3, rep.TransactionCount)
}

func TestPeriodWindowing(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())

	food := categoryNamed(t, svc, "Food")

	addTx(t, svc, food, 1_000, time.Now().AddDate(0, 0, -1))
	addTx(t, svc, food, 2_000, time.Now().AddDate(0, 0, -10))
	addTx(t, svc, food, 4_000, time.Now().AddDate(0, -2, 0))

	assert.Equal(t, int64(1_000), reports.TotalExpense(report.PeriodWeek))
	assert.Equal(t, int64(3_000), reports.TotalExpense(report.PeriodMonth))
	assert.Equal(t, int64(7_000), reports.TotalExpense(report.PeriodQuarter))
	assert.Equal(t, int64(7_000), reports.TotalExpense(""))
}

func TestPeriodValid(t *testing.T) {
	assert.True(t, report.Period("").Valid())
	assert.True(t, report.PeriodWeek.Valid())
	assert.True(t, report.PeriodYear.Valid())
	assert.False(t, report.Period("fortnight").Valid())
}

func TestCategoryBreakdownSortedDescending(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())

	now := time.Now()
	food := categoryNamed(t, svc, "Food")
	transport := categoryNamed(t, svc, "Transport")

	addTx(t, svc, food, 2_000, now)
	addTx(t, svc, food, 3_000, now)
	addTx(t, svc, transport, 8_000, now)

	rep := reports.ForPeriod("", uuid.Nil)

	require.Len(t, rep.ExpensesByCategory, 2)
	assert.Equal(t, "Transport", rep.ExpensesByCategory[0].Name)
	assert.Equal(t, int64(8_000), rep.ExpensesByCategory[0].Amount)
	assert.Equal(t, 1, rep.ExpensesByCategory[0].Count)
	assert.Equal(t, "Food", rep.ExpensesByCategory[1].Name)
	assert.Equal(t, int64(5_000), rep.ExpensesByCategory[1].Amount)
	assert.Equal(t, 2, rep.ExpensesByCategory[1].Count)

	byCat := reports.ExpenseByCategory()
	assert.Equal(t, int64(5_000), byCat["Food"])
	assert.Equal(t, int64(8_000), byCat["Transport"])
}

func TestDanglingCategoryReportedAsUnknown(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())

	food := categoryNamed(t, svc, "Food")
	addTx(t, svc, food, 2_500, time.Now())

	require.NoError(t, svc.DeleteCategory(context.Background(), food.ID))

	rep := reports.ForPeriod("", uuid.Nil)
	require.Len(t, rep.ExpensesByCategory, 1)
	assert.Equal(t, "Unknown", rep.ExpensesByCategory[0].Name)
	assert.Equal(t, int64(2_500), rep.ExpensesByCategory[0].Amount)

	// The name-keyed map skips dangling references entirely.
	assert.Empty(t, reports.ExpenseByCategory())
}

func TestTotalsScopedToCurrentWallet(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())
	ctx := context.Background()

	food := categoryNamed(t, svc, "Food")
	addTx(t, svc, food, 5_000, time.Now())

	other, err := svc.CreateWallet(ctx, ledger.WalletParams{Name: "Cash"})
	require.NoError(t, err)
	require.NoError(t, svc.SelectWallet(ctx, other.ID))

	assert.Zero(t, reports.TotalExpense(""))
	assert.Zero(t, reports.ForPeriod("", uuid.Nil).TransactionCount)

	// An explicit wallet ID overrides the current selection.
	main := svc.Store().Wallets()[0]
	assert.Equal(t, 1, reports.ForPeriod("", main.ID).TransactionCount)
}

func TestDailyTotals(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())

	day := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)

	addTx(t, svc, categoryNamed(t, svc, "Salary"), 10_000, day)
	addTx(t, svc, categoryNamed(t, svc, "Food"), 4_000, day)
	addTx(t, svc, categoryNamed(t, svc, "Food"), 1_000, day.AddDate(0, 0, 1))

	rep := reports.ForPeriod("", uuid.Nil)

	require.Len(t, rep.DailyTotals, 2)
	assert.Equal(t, report.DayTotals{Income: 10_000, Expense: 4_000}, rep.DailyTotals["2026-08-20"])
	assert.Equal(t, report.DayTotals{Expense: 1_000}, rep.DailyTotals["2026-08-21"])
}

func TestBudgetStatuses(t *testing.T) {
	svc := newLedger(t)
	reports := report.New(svc.Store())
	ctx := context.Background()

	food := categoryNamed(t, svc, "Food")

	_, err := svc.CreateBudget(ctx, ledger.BudgetParams{
		CategoryID: food.ID,
		Limit:      10_000,
		StartDate:  time.Now().AddDate(0, 0, -7),
	})
	require.NoError(t, err)

	addTx(t, svc, food, 9_000, time.Now())

	statuses := reports.BudgetStatuses()
	require.Len(t, statuses, 1)

	status := statuses[0]
	assert.Equal(t, "Food", status.CategoryName)
	assert.InDelta(t, 90.0, status.Percentage, 0.001)
	assert.True(t, status.IsWarning, "90% is past the default 80% alert threshold")
	assert.False(t, status.IsOverBudget, "spent equal to or under the limit is not over")

	addTx(t, svc, food, 2_000, time.Now())

	status = reports.BudgetStatuses()[0]
	assert.InDelta(t, 110.0, status.Percentage, 0.001)
	assert.True(t, status.IsOverBudget)
}
