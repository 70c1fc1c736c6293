package domain

import "time"

// PetState is the stored experience record for a user's pet.
// TotalExp is the lifetime experience and never decreases.
type PetState struct {
	UserID       string     `json:"user_id"`
	TotalExp     int64      `json:"total_exp"`
	RebirthCount int64      `json:"rebirth_count"` // mirror of the count computed from TotalExp
	PageCount    int        `json:"page_count"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}

// ProgressionResult is derived from lifetime experience on every read
type ProgressionResult struct {
	Level            int     `json:"level"`
	Progress         float64 `json:"progress"`
	XPInCurrentLevel int64   `json:"xp_in_current_level"`
	XPForNextLevel   int64   `json:"xp_for_next_level"`
	RebirthCount     int64   `json:"rebirth_count"`
	CurrentCycleXP   int64   `json:"current_cycle_xp"`
}

// LevelTheme describes how the pet is drawn at a given level
type LevelTheme struct {
	Level          int    `json:"level"`
	BodyFill       string `json:"body_fill"`
	HighlightFill  string `json:"highlight_fill"`
	StrokeFill     string `json:"stroke_fill"`
	TongueFill     string `json:"tongue_fill"`
	ShowCrown      bool   `json:"show_crown"`
	CrownFill      string `json:"crown_fill,omitempty"`
	ShowGem        bool   `json:"show_gem"`
	GemFill        string `json:"gem_fill,omitempty"`
	ShowWings      bool   `json:"show_wings"`
	ShowAura       bool   `json:"show_aura"`
	AuraFill       string `json:"aura_fill,omitempty"`
	WingStyle      string `json:"wing_style,omitempty"`
	MagicRuneCount int    `json:"magic_rune_count,omitempty"`
}

// HealthStatus reflects how recently the linked task database produced experience
type HealthStatus struct {
	Icon           string `json:"icon"`
	Status         string `json:"status"`
	Message        string `json:"message"`
	Color          string `json:"color"`
	LastUpdateText string `json:"last_update_text"`
	DaysSince      int    `json:"days_since"`
}

// PetCard combines stored state with everything computed from it for display
type PetCard struct {
	UserID      string            `json:"user_id"`
	TotalExp    int64             `json:"total_exp"`
	PageCount   int               `json:"page_count"`
	LastUpdated *time.Time        `json:"last_updated,omitempty"`
	Progression ProgressionResult `json:"progression"`
	Theme       LevelTheme        `json:"theme"`
	Health      *HealthStatus     `json:"health,omitempty"`
}

// ExperienceSummary is the outcome of recomputing experience from the task database
type ExperienceSummary struct {
	UserID       string `json:"user_id"`
	TotalExp     int64  `json:"total_exp"`
	PageCount    int    `json:"page_count"`
	OldLevel     int    `json:"old_level"`
	NewLevel     int    `json:"new_level"`
	OldRebirths  int64  `json:"old_rebirths"`
	NewRebirths  int64  `json:"new_rebirths"`
	LeveledUp    bool   `json:"leveled_up"`
	Reborn       bool   `json:"reborn"`
	ExpUnchanged bool   `json:"exp_unchanged"`
}
