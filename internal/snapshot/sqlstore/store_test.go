package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centavoapp/centavo/internal/database"
	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/snapshot/sqlstore"
)

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return sqlstore.New(db)
}

func TestGetMissingKey(t *testing.T) {
	store := newStore(t)

	_, err := store.Get(context.Background(), "wallets")
	assert.ErrorIs(t, err, ledger.ErrNoSnapshot)
}

func TestPutGetOverwrite(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "wallets", []byte(`[{"name":"Main"}]`)))

	got, err := store.Get(ctx, "wallets")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"name":"Main"}]`), got)

	// Same key again takes the upsert path.
	require.NoError(t, store.Put(ctx, "wallets", []byte(`[]`)))

	got, err = store.Get(ctx, "wallets")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestWipe(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "wallets", []byte(`[]`)))
	require.NoError(t, store.Put(ctx, "transactions", []byte(`[]`)))

	require.NoError(t, store.Wipe(ctx))

	_, err := store.Get(ctx, "wallets")
	assert.ErrorIs(t, err, ledger.ErrNoSnapshot)

	_, err = store.Get(ctx, "transactions")
	assert.ErrorIs(t, err, ledger.ErrNoSnapshot)
}

func TestLedgerRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	svc := ledger.NewService(ledger.NewStore(), store, nil)

	_, err := svc.Register(ctx, "pat@example.com", "secret", "Pat Tester")
	require.NoError(t, err)

	reloaded := ledger.NewService(ledger.NewStore(), store, nil)
	require.NoError(t, reloaded.Load(ctx))

	user := reloaded.Store().User()
	require.NotNil(t, user)
	assert.Equal(t, "pat@example.com", user.Email)
	require.Len(t, reloaded.Store().Wallets(), 1)
}
