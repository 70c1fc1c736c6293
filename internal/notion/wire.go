package notion

import (
	"strings"
	"time"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// Request and response bodies of the Notion REST API. Only the fields read here are mapped.

type tokenRequest struct {
	GrantType   string `json:"grant_type"`
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri,omitempty"`
}

type tokenResponse struct {
	AccessToken   string `json:"access_token"`
	BotID         string `json:"bot_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceName string `json:"workspace_name"`
}

type searchFilter struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

type searchRequest struct {
	Filter      searchFilter `json:"filter"`
	StartCursor string       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type databaseObject struct {
	ID         string                    `json:"id"`
	Title      []richText                `json:"title"`
	Properties map[string]propertySchema `json:"properties"`
}

type searchResponse struct {
	Results    []databaseObject `json:"results"`
	HasMore    bool             `json:"has_more"`
	NextCursor string           `json:"next_cursor"`
}

type selectSchema struct {
	Options []domain.SelectOption `json:"options"`
}

type propertySchema struct {
	ID      string        `json:"id,omitempty"`
	Name    string        `json:"name,omitempty"`
	Type    string        `json:"type,omitempty"`
	Select  *selectSchema `json:"select,omitempty"`
	Status  *struct{}     `json:"status,omitempty"`
	Number  *struct{}     `json:"number,omitempty"`
	Formula *struct{}     `json:"formula,omitempty"`
}

type updateDatabaseRequest struct {
	Properties map[string]propertySchema `json:"properties"`
}

type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size"`
}

type namedValue struct {
	Name string `json:"name"`
}

type formulaValue struct {
	Type   string   `json:"type"`
	Number *float64 `json:"number"`
}

type propertyValue struct {
	Type    string        `json:"type"`
	Number  *float64      `json:"number"`
	Formula *formulaValue `json:"formula"`
	Select  *namedValue   `json:"select"`
	Status  *namedValue   `json:"status"`
}

type pageObject struct {
	ID             string                   `json:"id"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	Properties     map[string]propertyValue `json:"properties"`
}

type queryResponse struct {
	Results    []pageObject `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (d databaseObject) toDomain() domain.NotionDatabase {
	var b strings.Builder
	for _, t := range d.Title {
		b.WriteString(t.PlainText)
	}
	title := strings.TrimSpace(b.String())
	if title == "" {
		title = UntitledDatabase
	}
	return domain.NotionDatabase{ID: d.ID, Title: title}
}

func (p propertySchema) toDomain(name string) domain.NotionProperty {
	prop := domain.NotionProperty{ID: p.ID, Name: name, Type: p.Type}
	if p.Select != nil {
		prop.Select = &domain.SelectConfig{Options: p.Select.Options}
	}
	return prop
}

func (p pageObject) toDomain() domain.NotionPage {
	page := domain.NotionPage{
		ID:         p.ID,
		Numbers:    make(map[string]*float64),
		Selects:    make(map[string]string),
		Statuses:   make(map[string]string),
		LastEdited: p.LastEditedTime,
	}
	for name, v := range p.Properties {
		switch v.Type {
		case domain.PropertyTypeNumber:
			page.Numbers[name] = v.Number
		case domain.PropertyTypeFormula:
			if v.Formula != nil && v.Formula.Type == domain.PropertyTypeNumber {
				page.Numbers[name] = v.Formula.Number
			}
		case domain.PropertyTypeSelect:
			if v.Select != nil {
				page.Selects[name] = v.Select.Name
			}
		case domain.PropertyTypeStatus:
			if v.Status != nil {
				page.Statuses[name] = v.Status.Name
			}
		}
	}
	return page
}
