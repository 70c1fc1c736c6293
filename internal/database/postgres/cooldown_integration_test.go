package postgres

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/NotionPet_Go/internal/cooldown"
)

func TestCooldown_Integration(t *testing.T) {
	pool := requireDB(t)
	svc := cooldown.NewPostgresService(pool, cooldown.Config{
		Cooldowns: map[string]time.Duration{cooldown.ActionRefresh: time.Hour},
	})
	ctx := context.Background()
	ok := func(context.Context) error { return nil }

	t.Run("failed action does not start the cooldown", func(t *testing.T) {
		boom := errors.New("notion down")
		assert.ErrorIs(t, svc.Run(ctx, "cd-fail", cooldown.ActionRefresh, func(context.Context) error { return boom }), boom)

		remaining, err := svc.Remaining(ctx, "cd-fail", cooldown.ActionRefresh)
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})

	t.Run("success starts the cooldown", func(t *testing.T) {
		require.NoError(t, svc.Run(ctx, "cd-ok", cooldown.ActionRefresh, ok))

		err := svc.Run(ctx, "cd-ok", cooldown.ActionRefresh, ok)
		var onCooldown cooldown.ErrOnCooldown
		require.ErrorAs(t, err, &onCooldown)
		assert.InDelta(t, time.Hour.Seconds(), onCooldown.Remaining.Seconds(), 60)

		require.NoError(t, svc.Clear(ctx, "cd-ok", cooldown.ActionRefresh))
		assert.NoError(t, svc.Run(ctx, "cd-ok", cooldown.ActionRefresh, ok))
	})

	t.Run("concurrent runs execute once", func(t *testing.T) {
		var ran atomic.Int32
		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = svc.Run(ctx, "cd-race", cooldown.ActionRefresh, func(context.Context) error {
					ran.Add(1)
					time.Sleep(20 * time.Millisecond)
					return nil
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), ran.Load())
		rejected := 0
		for _, err := range errs {
			if errors.Is(err, cooldown.ErrOnCooldown{}) {
				rejected++
			}
		}
		assert.Equal(t, len(errs)-1, rejected)
	})
}
