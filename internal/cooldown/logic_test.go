package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingAt(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	tests := []struct {
		name     string
		lastUsed time.Time
		want     time.Duration
	}{
		{"never used", time.Time{}, 0},
		{"active", now.Add(-2 * time.Minute), 3 * time.Minute},
		{"expired", now.Add(-6 * time.Minute), 0},
		{"exact boundary", now.Add(-5 * time.Minute), 0},
		{"just before expiry", now.Add(-5*time.Minute + time.Second), time.Second},
		{"clock skew puts last use ahead", now.Add(time.Minute), 6 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remainingAt(now, tt.lastUsed, window))
		})
	}
}

func TestGetCooldownDuration(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]time.Duration
		action    string
		want      time.Duration
	}{
		{"builtin refresh", nil, ActionRefresh, DefaultRefreshCooldown},
		{"unknown action", nil, "unknown", DefaultCooldownDuration},
		{"override", map[string]time.Duration{ActionRefresh: 10 * time.Second}, ActionRefresh, 10 * time.Second},
		{"zero override turns it off", map[string]time.Duration{ActionRefresh: 0}, ActionRefresh, 0},
		{"negative clamps to zero", map[string]time.Duration{ActionRefresh: -time.Second}, ActionRefresh, 0},
		{"override of another action", map[string]time.Duration{"other": time.Hour}, ActionRefresh, DefaultRefreshCooldown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Cooldowns: tt.overrides}
			assert.Equal(t, tt.want, cfg.GetCooldownDuration(tt.action))
		})
	}
}
