package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/snapshot/memstore"
)

func seedLedger(t *testing.T) (*ledger.Service, *ledger.Store) {
	t.Helper()

	store := ledger.NewStore()
	svc := ledger.NewService(store, memstore.New(), nil)

	_, err := svc.Register(context.Background(), "pat@example.com", "pw", "Pat")
	require.NoError(t, err)

	return svc, store
}

func categoryID(t *testing.T, store *ledger.Store, name string) uuid.UUID {
	t.Helper()

	for _, c := range store.Categories() {
		if c.Name == name {
			return c.ID
		}
	}

	t.Fatalf("category %q not seeded", name)

	return uuid.Nil
}

func TestWriteCSV(t *testing.T) {
	svc, store := seedLedger(t)

	food := categoryID(t, store, "Food")
	salary := categoryID(t, store, "Salary")

	_, err := svc.CreateTransaction(context.Background(), ledger.TransactionParams{
		CategoryID:  salary,
		Amount:      250000,
		Type:        ledger.TypeIncome,
		Description: "August salary",
		Date:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.CreateTransaction(context.Background(), ledger.TransactionParams{
		CategoryID:  food,
		Amount:      1250,
		Type:        ledger.TypeExpense,
		Description: `Lunch at "Rosa's"`,
		Date:        time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewService(store).WriteCSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, `"Date","Category","Type","Amount","Description"`, lines[0])
	assert.Equal(t, `"2024-08-01","Salary","income","2500.00","August salary"`, lines[1])
	assert.Equal(t, `"2024-08-02","Food","expense","12.50","Lunch at ""Rosa's"""`, lines[2])
}

func TestWriteCSVNoWallet(t *testing.T) {
	store := ledger.NewStore()

	var buf bytes.Buffer

	err := NewService(store).WriteCSV(&buf)
	assert.ErrorIs(t, err, ledger.ErrNoWallet)
}

func TestJSONRoundTrip(t *testing.T) {
	svc, store := seedLedger(t)

	food := categoryID(t, store, "Food")
	salary := categoryID(t, store, "Salary")

	_, err := svc.CreateTransaction(context.Background(), ledger.TransactionParams{
		CategoryID:  salary,
		Amount:      100000,
		Type:        ledger.TypeIncome,
		Description: "pay",
		Date:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = svc.CreateTransaction(context.Background(), ledger.TransactionParams{
		CategoryID:  food,
		Amount:      4000,
		Type:        ledger.TypeExpense,
		Description: "groceries",
		Date:        time.Date(2024, 8, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewService(store).WriteJSON(&buf))

	doc, err := ReadDocument(&buf)
	require.NoError(t, err)

	assert.Equal(t, "Main Wallet", doc.Wallet.Name)
	assert.Equal(t, 2, doc.Summary.TotalTransactions)
	assert.Equal(t, int64(100000), doc.Summary.TotalIncome)
	assert.Equal(t, int64(4000), doc.Summary.TotalExpense)
	assert.Equal(t, int64(96000), doc.Summary.Balance)
	require.Len(t, doc.Transactions, 2)
	assert.Equal(t, "pay", doc.Transactions[0].Description)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "12.50", FormatAmount(1250))
	assert.Equal(t, "-3.07", FormatAmount(-307))
}
