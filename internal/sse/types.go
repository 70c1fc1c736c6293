package sse

import "github.com/osse101/NotionPet_Go/internal/domain"

// PetUpdatedPayload is the SSE payload for a refreshed pet
type PetUpdatedPayload struct {
	Card   domain.PetCard `json:"card"`
	Source string         `json:"source,omitempty"`
}

// LevelUpPayload is the SSE payload for a level-up or rebirth
type LevelUpPayload struct {
	TotalExp    int64  `json:"total_exp"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	OldRebirths int64  `json:"old_rebirths"`
	NewRebirths int64  `json:"new_rebirths"`
	Reborn      bool   `json:"reborn"`
	Source      string `json:"source,omitempty"` // manual or scheduled
}
