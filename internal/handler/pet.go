package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/NotionPet_Go/internal/cooldown"
	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/eventlog"
	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/pet"
)

const (
	// URLParamUserID is the route parameter of the shared public card
	URLParamUserID = "uid"

	// HeaderRetryAfter tells a client on cooldown when to try again
	HeaderRetryAfter = "Retry-After"

	defaultHistoryLimit = 50
)

// RefreshResponse is returned after experience was recomputed
type RefreshResponse struct {
	Message string                   `json:"message"`
	Summary domain.ExperienceSummary `json:"summary"`
}

// HistoryResponse lists a user's logged pet events
type HistoryResponse struct {
	Events []eventlog.Event `json:"events"`
}

// PetHandlers contains HTTP handlers for the pet card
type PetHandlers struct {
	service   pet.Service
	history   eventlog.Service
	cooldowns cooldown.Service // nil disables the manual refresh cooldown
}

// NewPetHandlers creates new pet handlers
func NewPetHandlers(service pet.Service, history eventlog.Service, cooldowns cooldown.Service) *PetHandlers {
	return &PetHandlers{service: service, history: history, cooldowns: cooldowns}
}

// HandleGetCard returns the owner's pet card
// @Summary Get pet card
// @Description Returns level, progress, rebirths, theme and task database health of the signed-in user's pet
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.PetCard
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /pet [get]
func (h *PetHandlers) HandleGetCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		card, err := h.service.GetCard(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get pet card", err)
			return
		}

		respondJSON(w, http.StatusOK, card)
	}
}

// HandleGetPublicCard returns the shared read-only card of any user
// @Summary Get public pet card
// @Tags pet
// @Produce json
// @Param uid path string true "User ID"
// @Success 200 {object} domain.PetCard
// @Failure 404 {object} ErrorResponse
// @Router /pet/public/{uid} [get]
func (h *PetHandlers) HandleGetPublicCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, URLParamUserID)
		if userID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingUserID)
			return
		}

		card, err := h.service.GetPublicCard(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get public pet card", err)
			return
		}

		respondJSON(w, http.StatusOK, card)
	}
}

// HandleRefresh recomputes lifetime experience from the linked task database
// @Summary Refresh experience
// @Description Reads every page of the selected task database and stores the new lifetime experience
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RefreshResponse
// @Failure 409 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /pet/refresh [post]
func (h *PetHandlers) HandleRefresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var summary *domain.ExperienceSummary
		refresh := func(ctx context.Context) error {
			var err error
			summary, err = h.service.RefreshExperience(ctx, userID)
			return err
		}

		var err error
		if h.cooldowns != nil {
			err = h.cooldowns.Run(r.Context(), userID, cooldown.ActionRefresh, refresh)
		} else {
			err = refresh(r.Context())
		}

		var onCooldown cooldown.ErrOnCooldown
		if errors.As(err, &onCooldown) {
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(onCooldown.RetryAfterSeconds()))
			respondError(w, http.StatusTooManyRequests, onCooldown.Error())
			return
		}
		if err != nil {
			respondServiceError(w, r, "Refresh experience", err)
			return
		}

		msg := MsgExperienceRefreshed
		if summary.ExpUnchanged {
			msg = MsgExperienceUnchanged
		}

		logger.FromContext(r.Context()).Info("Refresh experience: success",
			"total_exp", summary.TotalExp, "leveled_up", summary.LeveledUp)
		respondJSON(w, http.StatusOK, RefreshResponse{Message: msg, Summary: *summary})
	}
}

// HandleHistory lists the user's recent pet events
// @Summary Pet event history
// @Tags pet
// @Produce json
// @Security BearerAuth
// @Param type query string false "Event type filter"
// @Param since query string false "RFC 3339 lower bound"
// @Param limit query int false "Maximum events" default(50)
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Router /pet/history [get]
func (h *PetHandlers) HandleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		limit, err := queryInt(q, "limit", defaultHistoryLimit)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		since, err := queryTime(q, "since")
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidSince)
			return
		}
		eventType := q.Get("type")

		events, err := h.history.History(r.Context(), userID, eventType, since, limit)
		if err != nil {
			respondServiceError(w, r, "Pet history", err)
			return
		}

		respondJSON(w, http.StatusOK, HistoryResponse{Events: events})
	}
}
