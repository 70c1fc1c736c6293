// Package cooldown spaces out expensive per-user actions.
package cooldown

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Service gates actions per user. A cooldown starts only when the gated action succeeds.
type Service interface {
	// Remaining reports how long until userID may run action again, zero when it may now
	Remaining(ctx context.Context, userID, action string) (time.Duration, error)

	// Run executes fn unless action is cooling down for userID, in which case it
	// returns ErrOnCooldown without calling fn. Concurrent calls for the same user
	// and action run fn at most once per window.
	Run(ctx context.Context, userID, action string, fn func(ctx context.Context) error) error

	// Clear forgets the last use so the action is available immediately
	Clear(ctx context.Context, userID, action string) error
}

// ErrOnCooldown is returned when action is still on cooldown
type ErrOnCooldown struct {
	Action    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	return fmt.Sprintf(ErrFmtOnCooldown, e.Action, e.Remaining.Round(time.Second))
}

// Is matches any ErrOnCooldown regardless of its fields
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}

// RetryAfterSeconds rounds the remaining time up to whole seconds, at least 1
func (e ErrOnCooldown) RetryAfterSeconds() int {
	return max(int(math.Ceil(e.Remaining.Seconds())), 1)
}

// remainingAt is the cooldown left at now for an action last used at lastUsed
func remainingAt(now, lastUsed time.Time, window time.Duration) time.Duration {
	if lastUsed.IsZero() {
		return 0
	}
	return max(window-now.Sub(lastUsed), 0)
}
