package domain

import "time"

// Settings is the per-user configuration of the linked task database
type Settings struct {
	UserID                 string    `json:"user_id"`
	SelectedDBID           string    `json:"selected_db_id"`
	XPPropertyName         string    `json:"xp_property_name"`
	StatusPropertyName     string    `json:"status_property_name,omitempty"`
	DifficultyPropertyName string    `json:"difficulty_property_name,omitempty"`
	DifficultyOptionsOrder []string  `json:"difficulty_options_order"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Direction is a manual re-ranking direction for a difficulty option
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// RewardTier is one positional experience reward slot
type RewardTier struct {
	Rank       int    `json:"rank"`
	OptionName string `json:"option_name,omitempty"` // empty when no option holds this rank
	Exp        int    `json:"exp"`
}

// DifficultyView is the reconciled order plus the rewards it implies
type DifficultyView struct {
	PropertyName string       `json:"property_name"`
	Order        []string     `json:"order"`
	Rewards      []RewardTier `json:"rewards"`
	Unranked     []string     `json:"unranked,omitempty"` // options past the last tier, rewarded as "other"
	OtherExp     int          `json:"other_exp"`
}
