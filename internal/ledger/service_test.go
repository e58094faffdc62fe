package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/snapshot/memstore"
)

func newTestService(t *testing.T) *ledger.Service {
	t.Helper()

	svc := ledger.NewService(ledger.NewStore(), memstore.New(), nil)

	_, err := svc.Register(context.Background(), "pat@example.com", "secret", "Pat Tester")
	require.NoError(t, err)

	return svc
}

func expenseCategory(t *testing.T, svc *ledger.Service) *ledger.Category {
	t.Helper()

	for _, c := range svc.Store().Categories() {
		if c.Type == ledger.TypeExpense {
			return c
		}
	}

	t.Fatal("no expense category seeded")

	return nil
}

func incomeCategory(t *testing.T, svc *ledger.Service) *ledger.Category {
	t.Helper()

	for _, c := range svc.Store().Categories() {
		if c.Type == ledger.TypeIncome {
			return c
		}
	}

	t.Fatal("no income category seeded")

	return nil
}

func TestRegisterSeedsDefaults(t *testing.T) {
	svc := newTestService(t)

	user := svc.Store().User()
	require.NotNil(t, user)
	assert.Equal(t, "pat@example.com", user.Email)
	assert.Equal(t, "Pat Tester", user.FullName)

	wallets := svc.Store().Wallets()
	require.Len(t, wallets, 1)
	assert.Equal(t, "Main Wallet", wallets[0].Name)
	assert.True(t, wallets[0].IsDefault)
	assert.Equal(t, wallets[0].ID, svc.Store().CurrentWallet().ID)

	assert.Len(t, svc.Store().Categories(), 7)
}

func TestLoginDerivesDisplayName(t *testing.T) {
	svc := ledger.NewService(ledger.NewStore(), memstore.New(), nil)

	user, err := svc.Login(context.Background(), "casey@example.com", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "casey", user.FullName)

	_, err = svc.Login(context.Background(), "   ", "whatever")
	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestCreateTransactionAdjustsBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	wallet := svc.Store().CurrentWallet()

	_, err := svc.CreateTransaction(ctx, ledger.TransactionParams{
		CategoryID:  incomeCategory(t, svc).ID,
		Amount:      250_000,
		Type:        ledger.TypeIncome,
		Description: "Paycheck",
		Date:        time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, ledger.TransactionParams{
		CategoryID:  expenseCategory(t, svc).ID,
		Amount:      1_250,
		Type:        ledger.TypeExpense,
		Description: "Coffee",
		Date:        time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(248_750), svc.Store().WalletByID(wallet.ID).Balance)
}

func TestCreateTransactionValidation(t *testing.T) {
	svc := newTestService(t)
	catID := expenseCategory(t, svc).ID

	tests := []struct {
		name   string
		params ledger.TransactionParams
	}{
		{
			name:   "zero amount",
			params: ledger.TransactionParams{CategoryID: catID, Amount: 0, Type: ledger.TypeExpense, Date: time.Now()},
		},
		{
			name:   "negative amount",
			params: ledger.TransactionParams{CategoryID: catID, Amount: -100, Type: ledger.TypeExpense, Date: time.Now()},
		},
		{
			name:   "unknown type",
			params: ledger.TransactionParams{CategoryID: catID, Amount: 100, Type: "transfer", Date: time.Now()},
		},
		{
			name:   "missing date",
			params: ledger.TransactionParams{CategoryID: catID, Amount: 100, Type: ledger.TypeExpense},
		},
		{
			name:   "missing category",
			params: ledger.TransactionParams{Amount: 100, Type: ledger.TypeExpense, Date: time.Now()},
		},
		{
			name:   "unknown category",
			params: ledger.TransactionParams{CategoryID: uuid.New(), Amount: 100, Type: ledger.TypeExpense, Date: time.Now()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(context.Background(), tt.params)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}

	assert.Zero(t, svc.Store().CurrentWallet().Balance, "failed creates must not touch the balance")
}

func TestUpdateTransactionReversesOriginalWallet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := svc.Store().CurrentWallet()

	second, err := svc.CreateWallet(ctx, ledger.WalletParams{Name: "Savings"})
	require.NoError(t, err)

	tx, err := svc.CreateTransaction(ctx, ledger.TransactionParams{
		WalletID:   first.ID,
		CategoryID: expenseCategory(t, svc).ID,
		Amount:     5_000,
		Type:       ledger.TypeExpense,
		Date:       time.Now(),
	})
	require.NoError(t, err)

	require.Equal(t, int64(-5_000), svc.Store().WalletByID(first.ID).Balance)

	// Moving the transaction must restore the first wallet and charge
	// the second.
	_, err = svc.UpdateTransaction(ctx, tx.ID, ledger.TransactionPatch{WalletID: &second.ID})
	require.NoError(t, err)

	assert.Zero(t, svc.Store().WalletByID(first.ID).Balance)
	assert.Equal(t, int64(-5_000), svc.Store().WalletByID(second.ID).Balance)

	amount := int64(7_500)
	_, err = svc.UpdateTransaction(ctx, tx.ID, ledger.TransactionPatch{Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, int64(-7_500), svc.Store().WalletByID(second.ID).Balance)
}

func TestDeleteTransactionRestoresBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tx, err := svc.CreateTransaction(ctx, ledger.TransactionParams{
		CategoryID: expenseCategory(t, svc).ID,
		Amount:     4_000,
		Type:       ledger.TypeExpense,
		Date:       time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(-4_000), svc.Store().CurrentWallet().Balance)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))

	assert.Zero(t, svc.Store().CurrentWallet().Balance)
	assert.Empty(t, svc.Store().Transactions())

	err = svc.DeleteTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestBudgetSpentTracksTransactions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cat := expenseCategory(t, svc)
	start := time.Now().AddDate(0, 0, -30)

	// One expense predates the budget's creation; seeding from the log
	// must still count it.
	_, err := svc.CreateTransaction(ctx, ledger.TransactionParams{
		CategoryID: cat.ID,
		Amount:     3_000,
		Type:       ledger.TypeExpense,
		Date:       time.Now().AddDate(0, 0, -2),
	})
	require.NoError(t, err)

	budget, err := svc.CreateBudget(ctx, ledger.BudgetParams{
		CategoryID: cat.ID,
		Limit:      10_000,
		StartDate:  start,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3_000), budget.Spent)
	assert.Equal(t, ledger.PeriodMonthly, budget.Period)
	assert.Equal(t, 80.0, budget.AlertThreshold)

	tx, err := svc.CreateTransaction(ctx, ledger.TransactionParams{
		CategoryID: cat.ID,
		Amount:     3_000,
		Type:       ledger.TypeExpense,
		Date:       time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6_000), svc.Store().BudgetByID(budget.ID).Spent)

	// Income in the same period never counts against a budget.
	_, err = svc.CreateTransaction(ctx, ledger.TransactionParams{
		CategoryID: incomeCategory(t, svc).ID,
		Amount:     50_000,
		Type:       ledger.TypeIncome,
		Date:       time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6_000), svc.Store().BudgetByID(budget.ID).Spent)

	require.NoError(t, svc.DeleteTransaction(ctx, tx.ID))
	assert.Equal(t, int64(3_000), svc.Store().BudgetByID(budget.ID).Spent)
}

func TestBudgetScopedToWallet(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	main := svc.Store().CurrentWallet()
	cat := expenseCategory(t, svc)

	other, err := svc.CreateWallet(ctx, ledger.WalletParams{Name: "Cash"})
	require.NoError(t, err)

	budget, err := svc.CreateBudget(ctx, ledger.BudgetParams{
		CategoryID: cat.ID,
		WalletID:   main.ID,
		Limit:      10_000,
		StartDate:  time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, ledger.TransactionParams{
		WalletID:   other.ID,
		CategoryID: cat.ID,
		Amount:     2_000,
		Type:       ledger.TypeExpense,
		Date:       time.Now(),
	})
	require.NoError(t, err)

	assert.Zero(t, svc.Store().BudgetByID(budget.ID).Spent, "other wallet's spend must not count")

	_, err = svc.CreateTransaction(ctx, ledger.TransactionParams{
		WalletID:   main.ID,
		CategoryID: cat.ID,
		Amount:     2_000,
		Type:       ledger.TypeExpense,
		Date:       time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2_000), svc.Store().BudgetByID(budget.ID).Spent)
}

func TestDeleteLastWalletRefused(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	only := svc.Store().CurrentWallet()

	err := svc.DeleteWallet(ctx, only.ID)
	assert.ErrorIs(t, err, ledger.ErrConstraint)
	require.Len(t, svc.Store().Wallets(), 1)

	second, err := svc.CreateWallet(ctx, ledger.WalletParams{Name: "Spare"})
	require.NoError(t, err)

	// The new wallet took the current selection; deleting it must fall
	// back to the remaining one.
	require.NoError(t, svc.DeleteWallet(ctx, second.ID))
	assert.Equal(t, only.ID, svc.Store().CurrentWallet().ID)
}

func TestSnapshotFailureDoesNotFailMutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	snap := ledger.NewMockSnapshotter(ctrl)

	snap.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full")).AnyTimes()

	svc := ledger.NewService(ledger.NewStore(), snap, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "pat@example.com", "secret", "")
	require.NoError(t, err)

	wallet, err := svc.CreateWallet(ctx, ledger.WalletParams{Name: "Volatile"})
	require.NoError(t, err)
	assert.NotNil(t, svc.Store().WalletByID(wallet.ID), "in-memory state stays authoritative")
}

func TestLogoutClearsStateAndWipesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	snap := ledger.NewMockSnapshotter(ctrl)

	snap.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	snap.EXPECT().Wipe(gomock.Any()).Return(nil)

	svc := ledger.NewService(ledger.NewStore(), snap, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "pat@example.com", "secret", "")
	require.NoError(t, err)

	svc.Logout(ctx)

	assert.Nil(t, svc.Store().User())
	assert.Empty(t, svc.Store().Wallets())
	assert.Nil(t, svc.Store().CurrentWallet())
}

func TestLoadRestoresSnapshot(t *testing.T) {
	snap := memstore.New()
	ctx := context.Background()

	svc := ledger.NewService(ledger.NewStore(), snap, nil)

	_, err := svc.Register(ctx, "pat@example.com", "secret", "Pat Tester")
	require.NoError(t, err)

	_, err = svc.CreateTransaction(ctx, ledger.TransactionParams{
		CategoryID: incomeCategory(t, svc).ID,
		Amount:     100_000,
		Type:       ledger.TypeIncome,
		Date:       time.Now(),
	})
	require.NoError(t, err)

	second, err := svc.CreateWallet(ctx, ledger.WalletParams{Name: "Savings"})
	require.NoError(t, err)
	require.NoError(t, svc.SelectWallet(ctx, second.ID))

	reloaded := ledger.NewService(ledger.NewStore(), snap, nil)
	require.NoError(t, reloaded.Load(ctx))

	user := reloaded.Store().User()
	require.NotNil(t, user)
	assert.Equal(t, "pat@example.com", user.Email)

	require.Len(t, reloaded.Store().Wallets(), 2)
	assert.Equal(t, second.ID, reloaded.Store().CurrentWallet().ID)
	require.Len(t, reloaded.Store().Transactions(), 1)

	var total int64
	for _, w := range reloaded.Store().Wallets() {
		total += w.Balance
	}

	assert.Equal(t, int64(100_000), total)
}

func TestLoadSeedsFreshState(t *testing.T) {
	svc := ledger.NewService(ledger.NewStore(), memstore.New(), nil)

	require.NoError(t, svc.Load(context.Background()))

	require.Len(t, svc.Store().Wallets(), 1)
	assert.Len(t, svc.Store().Categories(), 7)
	require.NotNil(t, svc.Store().CurrentWallet())
	assert.True(t, svc.Store().CurrentWallet().IsDefault)
}
