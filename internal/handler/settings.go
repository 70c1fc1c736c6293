package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/NotionPet_Go/internal/domain"
	"github.com/osse101/NotionPet_Go/internal/logger"
	"github.com/osse101/NotionPet_Go/internal/settings"
)

// URLParamDatabaseID is the route parameter naming a task database
const URLParamDatabaseID = "id"

// SaveSettingsRequest is the body of PUT /settings
type SaveSettingsRequest struct {
	SelectedDBID           string   `json:"selected_db_id" validate:"max=64"`
	XPPropertyName         string   `json:"xp_property_name" validate:"max=200"`
	StatusPropertyName     string   `json:"status_property_name" validate:"max=200"`
	DifficultyPropertyName string   `json:"difficulty_property_name" validate:"max=200"`
	DifficultyOptionsOrder []string `json:"difficulty_options_order" validate:"omitempty,max=100,dive,max=100"`
}

// MoveDifficultyRequest is the body of POST /difficulty/move
type MoveDifficultyRequest struct {
	Index     *int   `json:"index" validate:"required,min=0"`
	Direction string `json:"direction" validate:"required,direction"`
}

// ManageOptionRequest is the body of POST /notion/options
type ManageOptionRequest struct {
	Action   string `json:"action" validate:"required,optionaction"`
	OptionID string `json:"option_id" validate:"required_unless=Action ADD_OPTION"`
	Name     string `json:"name" validate:"required_unless=Action DELETE_OPTION,max=100"`
}

// ConnectNotionRequest is the body of POST /notion/connect
type ConnectNotionRequest struct {
	Code string `json:"code" validate:"required,max=512"`
}

// CreatePropertyRequest is the body of POST /notion/databases/{id}/properties
type CreatePropertyRequest struct {
	Type string `json:"type" validate:"required,proptype"`
}

// ConnectResponse reports the linked workspace without exposing the token
type ConnectResponse struct {
	Message       string `json:"message"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
}

// DatabasesResponse lists selectable task databases
type DatabasesResponse struct {
	Databases []domain.NotionDatabase `json:"databases"`
}

// PropertiesResponse lists the properties of a task database
type PropertiesResponse struct {
	Properties []domain.NotionProperty `json:"properties"`
}

// SettingsHandlers contains HTTP handlers for settings, difficulty and the Notion link
type SettingsHandlers struct {
	service     settings.Service
	redirectURI string
}

// NewSettingsHandlers creates new settings handlers. redirectURI is the OAuth
// callback registered with the Notion integration.
func NewSettingsHandlers(service settings.Service, redirectURI string) *SettingsHandlers {
	return &SettingsHandlers{service: service, redirectURI: redirectURI}
}

// HandleGetSettings returns the stored settings
// @Summary Get settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Settings
// @Router /settings [get]
func (h *SettingsHandlers) HandleGetSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		s, err := h.service.Get(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get settings", err)
			return
		}
		respondJSON(w, http.StatusOK, s)
	}
}

// HandleSaveSettings stores settings and reconciles the difficulty order
// @Summary Save settings
// @Description Changing the database or the difficulty property resets the difficulty order
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SaveSettingsRequest true "Settings"
// @Success 200 {object} domain.Settings
// @Failure 400 {object} ValidationErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /settings [put]
func (h *SettingsHandlers) HandleSaveSettings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req SaveSettingsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Save settings"); err != nil {
			return
		}

		saved, err := h.service.Save(r.Context(), userID, domain.Settings{
			UserID:                 userID,
			SelectedDBID:           req.SelectedDBID,
			XPPropertyName:         req.XPPropertyName,
			StatusPropertyName:     req.StatusPropertyName,
			DifficultyPropertyName: req.DifficultyPropertyName,
			DifficultyOptionsOrder: req.DifficultyOptionsOrder,
		})
		if err != nil {
			respondServiceError(w, r, "Save settings", err)
			return
		}

		logger.FromContext(r.Context()).Info("Save settings: success", "database_id", saved.SelectedDBID)
		respondJSON(w, http.StatusOK, saved)
	}
}

// HandleGetDifficulty returns the reconciled difficulty order and its rewards
// @Summary Get difficulty ranking
// @Tags difficulty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DifficultyView
// @Failure 409 {object} ErrorResponse
// @Router /difficulty [get]
func (h *SettingsHandlers) HandleGetDifficulty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		view, err := h.service.DifficultyOptions(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get difficulty", err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleMoveDifficulty moves one option up or down the ranking
// @Summary Re-rank a difficulty option
// @Tags difficulty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MoveDifficultyRequest true "Move"
// @Success 200 {object} domain.DifficultyView
// @Failure 400 {object} ErrorResponse
// @Router /difficulty/move [post]
func (h *SettingsHandlers) HandleMoveDifficulty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req MoveDifficultyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Move difficulty option"); err != nil {
			return
		}

		view, err := h.service.MoveDifficultyOption(r.Context(), userID, *req.Index, domain.Direction(req.Direction))
		if err != nil {
			respondServiceError(w, r, "Move difficulty option", err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleManageOption adds, renames or deletes an option of the difficulty property
// @Summary Manage a difficulty option
// @Tags notion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ManageOptionRequest true "Option change"
// @Success 200 {object} domain.DifficultyView
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /notion/options [post]
func (h *SettingsHandlers) HandleManageOption() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req ManageOptionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Manage option"); err != nil {
			return
		}

		view, err := h.service.ManageSelectOption(r.Context(), userID, domain.OptionChange{
			Action:   req.Action,
			OptionID: req.OptionID,
			Name:     req.Name,
		})
		if err != nil {
			respondServiceError(w, r, "Manage option", err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleConnect exchanges an OAuth code for a workspace grant
// @Summary Connect Notion
// @Tags notion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConnectNotionRequest true "OAuth code"
// @Success 200 {object} ConnectResponse
// @Failure 502 {object} ErrorResponse
// @Router /notion/connect [post]
func (h *SettingsHandlers) HandleConnect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req ConnectNotionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Connect Notion"); err != nil {
			return
		}

		token, err := h.service.ConnectNotion(r.Context(), userID, req.Code, h.redirectURI)
		if err != nil {
			respondServiceError(w, r, "Connect Notion", err)
			return
		}

		logger.FromContext(r.Context()).Info("Connect Notion: success", "workspace_id", token.WorkspaceID)
		respondJSON(w, http.StatusOK, ConnectResponse{
			Message:       MsgNotionConnected,
			WorkspaceID:   token.WorkspaceID,
			WorkspaceName: token.WorkspaceName,
		})
	}
}

// HandleListDatabases lists the task databases shared with the integration
// @Summary List task databases
// @Tags notion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DatabasesResponse
// @Failure 409 {object} ErrorResponse
// @Router /notion/databases [get]
func (h *SettingsHandlers) HandleListDatabases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		dbs, err := h.service.ListDatabases(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List databases", err)
			return
		}
		if dbs == nil {
			dbs = []domain.NotionDatabase{}
		}
		respondJSON(w, http.StatusOK, DatabasesResponse{Databases: dbs})
	}
}

// HandleGetProperties returns the property schema of a task database
// @Summary List database properties
// @Tags notion
// @Produce json
// @Security BearerAuth
// @Param id path string true "Database ID"
// @Success 200 {object} PropertiesResponse
// @Router /notion/databases/{id}/properties [get]
func (h *SettingsHandlers) HandleGetProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		props, err := h.service.GetProperties(r.Context(), userID, chi.URLParam(r, URLParamDatabaseID))
		if err != nil {
			respondServiceError(w, r, "Get properties", err)
			return
		}
		if props == nil {
			props = []domain.NotionProperty{}
		}
		respondJSON(w, http.StatusOK, PropertiesResponse{Properties: props})
	}
}

// HandleCreateProperty creates the default status or difficulty property
// @Summary Create a default property
// @Description The database in the path must be the selected one
// @Tags notion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Database ID"
// @Param request body CreatePropertyRequest true "Property type"
// @Success 201 {object} domain.NotionProperty
// @Failure 400 {object} ErrorResponse
// @Router /notion/databases/{id}/properties [post]
func (h *SettingsHandlers) HandleCreateProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req CreatePropertyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create property"); err != nil {
			return
		}

		current, err := h.service.Get(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Create property", err)
			return
		}
		if current.SelectedDBID == "" || current.SelectedDBID != chi.URLParam(r, URLParamDatabaseID) {
			respondError(w, http.StatusConflict, ErrMsgDatabaseNotSelectedError)
			return
		}

		prop, err := h.service.CreateProperty(r.Context(), userID, req.Type)
		if err != nil {
			respondServiceError(w, r, "Create property", err)
			return
		}
		respondJSON(w, http.StatusCreated, prop)
	}
}
