package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

const testRedirectURI = "https://pet.example.com/oauth/callback"

func newSettingsHandlers(svc *MockSettingsService) *SettingsHandlers {
	return NewSettingsHandlers(svc, testRedirectURI)
}

func TestHandleSaveSettings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockSettingsService)
		want := domain.Settings{
			UserID:                 testUserID,
			SelectedDBID:           "db1",
			XPPropertyName:         "XP",
			DifficultyPropertyName: "난이도",
			DifficultyOptionsOrder: []string{"상", "하"},
		}
		svc.On("Save", mock.Anything, testUserID, want).Return(&want, nil)

		body := SaveSettingsRequest{
			SelectedDBID:           "db1",
			XPPropertyName:         "XP",
			DifficultyPropertyName: "난이도",
			DifficultyOptionsOrder: []string{"상", "하"},
		}
		rec := httptest.NewRecorder()
		newSettingsHandlers(svc).HandleSaveSettings()(rec, newRequest(t, http.MethodPut, "/settings", body, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "db1", decode[domain.Settings](t, rec).SelectedDBID)
		svc.AssertExpectations(t)
	})

	t.Run("Malformed body", func(t *testing.T) {
		svc := new(MockSettingsService)
		rec := httptest.NewRecorder()
		newSettingsHandlers(svc).HandleSaveSettings()(rec, newRequest(t, http.MethodPut, "/settings", "{not json", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Difficulty property is not a select", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("Save", mock.Anything, testUserID, mock.Anything).
			Return(nil, fmt.Errorf("%w: Tags", domain.ErrPropertyNotSelect))

		rec := httptest.NewRecorder()
		body := SaveSettingsRequest{SelectedDBID: "db1", DifficultyPropertyName: "Tags"}
		newSettingsHandlers(svc).HandleSaveSettings()(rec, newRequest(t, http.MethodPut, "/settings", body, nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestHandleGetSettings(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get", mock.Anything, testUserID).Return(&domain.Settings{UserID: testUserID, DifficultyOptionsOrder: []string{}}, nil)

	rec := httptest.NewRecorder()
	newSettingsHandlers(svc).HandleGetSettings()(rec, newRequest(t, http.MethodGet, "/settings", nil, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"difficulty_options_order":[]`)
}

func TestHandleMoveDifficulty(t *testing.T) {
	view := &domain.DifficultyView{PropertyName: "난이도", Order: []string{"중", "상", "하"}}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("MoveDifficultyOption", mock.Anything, testUserID, 1, domain.DirectionUp).Return(view, nil)

		rec := httptest.NewRecorder()
		body := map[string]interface{}{"index": 1, "direction": "up"}
		newSettingsHandlers(svc).HandleMoveDifficulty()(rec, newRequest(t, http.MethodPost, "/difficulty/move", body, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, view.Order, decode[domain.DifficultyView](t, rec).Order)
	})

	t.Run("Index zero is valid", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("MoveDifficultyOption", mock.Anything, testUserID, 0, domain.DirectionDown).Return(view, nil)

		rec := httptest.NewRecorder()
		body := map[string]interface{}{"index": 0, "direction": "down"}
		newSettingsHandlers(svc).HandleMoveDifficulty()(rec, newRequest(t, http.MethodPost, "/difficulty/move", body, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		bodies := []map[string]interface{}{
			{"direction": "up"},
			{"index": 0, "direction": "sideways"},
			{"index": -1, "direction": "up"},
		}
		for _, body := range bodies {
			svc := new(MockSettingsService)
			rec := httptest.NewRecorder()
			newSettingsHandlers(svc).HandleMoveDifficulty()(rec, newRequest(t, http.MethodPost, "/difficulty/move", body, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			svc.AssertNotCalled(t, "MoveDifficultyOption", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Out of range", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("MoveDifficultyOption", mock.Anything, testUserID, 7, domain.DirectionDown).
			Return(nil, fmt.Errorf("%w: index 7 out of range", domain.ErrInvalidInput))

		rec := httptest.NewRecorder()
		body := map[string]interface{}{"index": 7, "direction": "down"}
		newSettingsHandlers(svc).HandleMoveDifficulty()(rec, newRequest(t, http.MethodPost, "/difficulty/move", body, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleManageOption(t *testing.T) {
	tests := []struct {
		name       string
		body       ManageOptionRequest
		wantStatus int
		callsSvc   bool
	}{
		{"add", ManageOptionRequest{Action: domain.OptionActionAdd, Name: "최상"}, http.StatusOK, true},
		{"rename", ManageOptionRequest{Action: domain.OptionActionUpdate, OptionID: "o1", Name: "쉬움"}, http.StatusOK, true},
		{"delete", ManageOptionRequest{Action: domain.OptionActionDelete, OptionID: "o1"}, http.StatusOK, true},
		{"add without name", ManageOptionRequest{Action: domain.OptionActionAdd}, http.StatusBadRequest, false},
		{"delete without id", ManageOptionRequest{Action: domain.OptionActionDelete}, http.StatusBadRequest, false},
		{"unknown action", ManageOptionRequest{Action: "MERGE_OPTION", OptionID: "o1", Name: "x"}, http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSettingsService)
			change := domain.OptionChange{Action: tt.body.Action, OptionID: tt.body.OptionID, Name: tt.body.Name}
			svc.On("ManageSelectOption", mock.Anything, testUserID, change).Return(&domain.DifficultyView{}, nil).Maybe()

			rec := httptest.NewRecorder()
			newSettingsHandlers(svc).HandleManageOption()(rec, newRequest(t, http.MethodPost, "/notion/options", tt.body, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.callsSvc {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "ManageSelectOption", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHandleManageOption_OptionMissing(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("ManageSelectOption", mock.Anything, testUserID, mock.Anything).Return(nil, domain.ErrOptionNotFound)

	rec := httptest.NewRecorder()
	body := ManageOptionRequest{Action: domain.OptionActionDelete, OptionID: "gone"}
	newSettingsHandlers(svc).HandleManageOption()(rec, newRequest(t, http.MethodPost, "/notion/options", body, nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleConnect(t *testing.T) {
	t.Run("Success hides token", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("ConnectNotion", mock.Anything, testUserID, "code-1", testRedirectURI).
			Return(&domain.NotionToken{AccessToken: "secret_abc", WorkspaceID: "ws", WorkspaceName: "Team"}, nil)

		rec := httptest.NewRecorder()
		newSettingsHandlers(svc).HandleConnect()(rec, newRequest(t, http.MethodPost, "/notion/connect", ConnectNotionRequest{Code: "code-1"}, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret_abc")
		assert.Equal(t, "Team", decode[ConnectResponse](t, rec).WorkspaceName)
	})

	t.Run("Missing code", func(t *testing.T) {
		svc := new(MockSettingsService)
		rec := httptest.NewRecorder()
		newSettingsHandlers(svc).HandleConnect()(rec, newRequest(t, http.MethodPost, "/notion/connect", ConnectNotionRequest{}, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[ValidationErrorResponse](t, rec).Fields, "code")
	})

	t.Run("Exchange rejected", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("ConnectNotion", mock.Anything, testUserID, "bad", testRedirectURI).
			Return(nil, fmt.Errorf("%w: invalid_grant", domain.ErrUpstream))

		rec := httptest.NewRecorder()
		newSettingsHandlers(svc).HandleConnect()(rec, newRequest(t, http.MethodPost, "/notion/connect", ConnectNotionRequest{Code: "bad"}, nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHandleListDatabases(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("ListDatabases", mock.Anything, testUserID).Return(nil, nil)

	rec := httptest.NewRecorder()
	newSettingsHandlers(svc).HandleListDatabases()(rec, newRequest(t, http.MethodGet, "/notion/databases", nil, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"databases":[]}`, rec.Body.String())
}

func TestHandleGetProperties(t *testing.T) {
	svc := new(MockSettingsService)
	props := []domain.NotionProperty{{ID: "p1", Name: "XP", Type: domain.PropertyTypeNumber}}
	svc.On("GetProperties", mock.Anything, testUserID, "db1").Return(props, nil)

	rec := httptest.NewRecorder()
	req := newRequest(t, http.MethodGet, "/notion/databases/db1/properties", nil, map[string]string{URLParamDatabaseID: "db1"})
	newSettingsHandlers(svc).HandleGetProperties()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "XP", decode[PropertiesResponse](t, rec).Properties[0].Name)
}

func TestHandleCreateProperty(t *testing.T) {
	selected := &domain.Settings{UserID: testUserID, SelectedDBID: "db1"}

	t.Run("Created", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("Get", mock.Anything, testUserID).Return(selected, nil)
		svc.On("CreateProperty", mock.Anything, testUserID, domain.PropertyTypeSelect).
			Return(&domain.NotionProperty{Name: "난이도", Type: domain.PropertyTypeSelect}, nil)

		rec := httptest.NewRecorder()
		req := newRequest(t, http.MethodPost, "/notion/databases/db1/properties", CreatePropertyRequest{Type: "select"}, map[string]string{URLParamDatabaseID: "db1"})
		newSettingsHandlers(svc).HandleCreateProperty()(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Other database", func(t *testing.T) {
		svc := new(MockSettingsService)
		svc.On("Get", mock.Anything, testUserID).Return(selected, nil)

		rec := httptest.NewRecorder()
		req := newRequest(t, http.MethodPost, "/notion/databases/db2/properties", CreatePropertyRequest{Type: "status"}, map[string]string{URLParamDatabaseID: "db2"})
		newSettingsHandlers(svc).HandleCreateProperty()(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		svc.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Bad type", func(t *testing.T) {
		svc := new(MockSettingsService)
		rec := httptest.NewRecorder()
		req := newRequest(t, http.MethodPost, "/notion/databases/db1/properties", CreatePropertyRequest{Type: "number"}, map[string]string{URLParamDatabaseID: "db1"})
		newSettingsHandlers(svc).HandleCreateProperty()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
