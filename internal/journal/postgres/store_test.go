package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"jupkit/internal/journal"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	store, err := Open(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	// migrations are idempotent
	require.NoError(t, Migrate(ctx, store.pool))
	return store
}

func TestStore(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	big := &journal.Entry{Kind: journal.KindClaim, Wallet: "w1", Mint: "m", Signature: "sig1", Amount: 18446744073709551615, Status: journal.StatusSent}
	require.NoError(t, s.Record(ctx, big))
	assert.NotZero(t, big.ID)

	err := s.Record(ctx, &journal.Entry{Kind: journal.KindSwap, Wallet: "w1", Signature: "sig1", Status: journal.StatusSent})
	assert.ErrorIs(t, err, journal.ErrDuplicateKey)

	require.NoError(t, s.Record(ctx, &journal.Entry{Kind: journal.KindStake, Wallet: "w1", Status: journal.StatusSimulated}))
	require.NoError(t, s.Record(ctx, &journal.Entry{Kind: journal.KindStake, Wallet: "w1", Status: journal.StatusSimulated}))

	require.NoError(t, s.UpdateStatus(ctx, "sig1", journal.StatusConfirmed, ""))
	got, err := s.Get(ctx, "sig1")
	require.NoError(t, err)
	assert.Equal(t, journal.StatusConfirmed, got.Status)
	assert.Equal(t, uint64(18446744073709551615), got.Amount)
	assert.Equal(t, "m", got.Mint)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, journal.ErrNotFound)
	assert.ErrorIs(t, s.UpdateStatus(ctx, "missing", journal.StatusFailed, "x"), journal.ErrNotFound)

	list, err := s.ListByWallet(ctx, "w1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)
	assert.Equal(t, "", list[0].Signature)

	list, err = s.ListByWallet(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
