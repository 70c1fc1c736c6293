package database

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/NotionPet_Go/internal/testing/leaktest"
	"github.com/osse101/NotionPet_Go/internal/testing/pgtest"
)

var (
	pg               *pgtest.Instance
	testDBConnString string
)

func TestMain(m *testing.M) {
	flag.Parse()

	ctx := context.Background()
	if !testing.Short() {
		pg = pgtest.Start(ctx, "petdb")
		testDBConnString = pg.ConnString
	}
	code := m.Run()
	pg.Stop(ctx)
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	pg.Require(t)
}

func requirePool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	requireDB(t)
	pool, err := NewPool(testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestNewPool_BadConnString(t *testing.T) {
	_, err := NewPool("postgres://%zz", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestNewPool_AppliesLimits(t *testing.T) {
	pool := requirePool(t, 4)

	cfg := pool.Config()
	assert.Equal(t, int32(4), cfg.MaxConns)
	assert.Equal(t, DefaultMinConnections, cfg.MinConns)
	assert.Equal(t, time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
}

func TestPool_ExhaustedPoolTimesOut(t *testing.T) {
	pool := requirePool(t, 2)
	ctx := context.Background()

	a, err := pool.Acquire(ctx)
	require.NoError(t, err)
	b, err := pool.Acquire(ctx)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = pool.Acquire(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	a.Release()
	c, err := pool.Acquire(ctx)
	require.NoError(t, err)
	c.Release()
	b.Release()
	assert.Zero(t, pool.Stat().AcquiredConns())
}

// A sync run fans out over the pool; failed statements must not strand connections
func TestPool_ConcurrentQueriesReleaseConnections(t *testing.T) {
	pool := requirePool(t, 5)
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			if i%4 == 0 {
				_, err := pool.Exec(ctx, "SELECT * FROM missing_table")
				assert.Error(t, err)
				return nil
			}
			var got int
			if err := pool.QueryRow(ctx, "SELECT $1::int", i).Scan(&got); err != nil {
				return err
			}
			assert.Equal(t, i, got)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Zero(t, pool.Stat().AcquiredConns())
}

func TestMigrate(t *testing.T) {
	pool := requirePool(t, 5)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool), "second run is a no-op")

	pending, err := PendingMigrations(ctx, pool)
	require.NoError(t, err)
	assert.Zero(t, pending)

	for _, table := range []string{"pets", "user_settings", "notion_tokens", "events", "user_cooldowns", "goose_db_version"} {
		var exists bool
		require.NoError(t, pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists))
		assert.True(t, exists, "table %s", table)
	}

	_, err = pool.Exec(ctx, "INSERT INTO pets (user_id, total_exp) VALUES ('neg', -1)")
	assert.Error(t, err, "negative experience violates the check constraint")
}

func TestEnsureDatabase(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	created, err := EnsureDatabase(ctx, testDBConnString, "pet_ensure_test")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureDatabase(ctx, testDBConnString, "pet_ensure_test")
	require.NoError(t, err)
	assert.False(t, created, "existing database is left alone")
}

func TestEnsureDatabase_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := EnsureDatabase(ctx, "postgres://nobody@127.0.0.1:1/postgres?sslmode=disable", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToConnectMaintenance)
}

func TestPool_CloseLeavesNoGoroutines(t *testing.T) {
	requireDB(t)

	leaktest.CheckNoGoroutineLeak(t, func() {
		pool, err := NewPool(testDBConnString, 3, time.Minute, 5*time.Minute)
		require.NoError(t, err)
		var one int
		require.NoError(t, pool.QueryRow(context.Background(), "SELECT 1").Scan(&one))
		pool.Close()
	})
}
