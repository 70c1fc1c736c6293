package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/progression"
)

// URLParamExperience is the route parameter of the progression preview
const URLParamExperience = "exp"

// ProgressionResponse previews the pet for an arbitrary lifetime experience
type ProgressionResponse struct {
	TotalExp    int64                    `json:"total_exp"`
	Progression domain.ProgressionResult `json:"progression"`
	Theme       domain.LevelTheme        `json:"theme"`
	LevelTable  []int64                  `json:"level_table"`
}

// HandleProgression computes level, progress and rebirths for a lifetime experience value
// @Summary Preview progression
// @Description Pure computation, no account required
// @Tags progression
// @Produce json
// @Param exp path int true "Lifetime experience"
// @Success 200 {object} ProgressionResponse
// @Failure 400 {object} ErrorResponse
// @Router /progression/{exp} [get]
func HandleProgression() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exp, err := strconv.ParseInt(chi.URLParam(r, URLParamExperience), 10, 64)
		if err != nil || exp < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidExperience)
			return
		}

		result, err := progression.Compute(exp)
		if err != nil {
			respondServiceError(w, r, "Preview progression", err)
			return
		}

		respondJSON(w, http.StatusOK, ProgressionResponse{
			TotalExp:    exp,
			Progression: result,
			Theme:       progression.ThemeFor(result.Level),
			LevelTable:  progression.LevelTable(),
		})
	}
}
