package cooldown

import "time"

// ActionRefresh is a manual experience refresh, which reads every page of the task database
const ActionRefresh = "refresh experience"

const (
	// DefaultCooldownDuration applies to actions without a built-in or configured window
	DefaultCooldownDuration = time.Minute

	// DefaultRefreshCooldown spaces out manual refreshes of one user
	DefaultRefreshCooldown = 30 * time.Second
)

// sqlClaim takes the slot for user+action when the previous use is at least $4
// seconds old. It returns no row while the action is still cooling down. The
// row lock it takes is held until the surrounding transaction ends.
const sqlClaim = `
	INSERT INTO user_cooldowns (user_id, action_name, last_used_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, action_name) DO UPDATE
	SET last_used_at = EXCLUDED.last_used_at
	WHERE user_cooldowns.last_used_at <= $3 - make_interval(secs => $4)
	RETURNING last_used_at`

const (
	sqlLastUsed = `SELECT last_used_at FROM user_cooldowns WHERE user_id = $1 AND action_name = $2`
	sqlClear    = `DELETE FROM user_cooldowns WHERE user_id = $1 AND action_name = $2`
)

const (
	ErrMsgLastUsed = "read last use of %q: %w"
	ErrMsgBeginTx  = "begin cooldown transaction: %w"
	ErrMsgClaim    = "claim cooldown for %q: %w"
	ErrMsgCommitTx = "commit cooldown for %q: %w"
	ErrMsgClear    = "clear cooldown for %q: %w"

	ErrFmtOnCooldown = "you can %s again in %s"
)

const (
	LogMsgCooldownBypassed = "Cooldowns disabled, running action"
	LogMsgLostClaimRace    = "Concurrent request claimed the cooldown first"
	LogMsgCooldownStarted  = "Cooldown started"
)
