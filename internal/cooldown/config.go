package cooldown

import "time"

// Config holds cooldown service configuration
type Config struct {
	// Disabled bypasses all cooldowns when true
	Disabled bool

	// Cooldowns overrides the built-in duration of an action. Zero or negative
	// turns that action's cooldown off.
	Cooldowns map[string]time.Duration
}

var builtinCooldowns = map[string]time.Duration{
	ActionRefresh: DefaultRefreshCooldown,
}

// GetCooldownDuration returns how long an action stays locked after it succeeds
func (c Config) GetCooldownDuration(action string) time.Duration {
	if d, ok := c.Cooldowns[action]; ok {
		return max(d, 0)
	}
	if d, ok := builtinCooldowns[action]; ok {
		return d
	}
	return DefaultCooldownDuration
}
