package domain

import "time"

// Property types the service reads from the task database
const (
	PropertyTypeNumber  = "number"
	PropertyTypeFormula = "formula"
	PropertyTypeStatus  = "status"
	PropertyTypeSelect  = "select"
)

// Select option management actions
const (
	OptionActionAdd    = "ADD_OPTION"
	OptionActionUpdate = "UPDATE_OPTION"
	OptionActionDelete = "DELETE_OPTION"
)

// NotionToken is the stored OAuth grant for a user's workspace
type NotionToken struct {
	UserID        string    `json:"user_id"`
	AccessToken   string    `json:"access_token"`
	WorkspaceID   string    `json:"workspace_id"`
	WorkspaceName string    `json:"workspace_name"`
	BotID         string    `json:"bot_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// NotionDatabase is a selectable task database
type NotionDatabase struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SelectOption is one option of a select property
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// SelectConfig holds the options of a select property
type SelectConfig struct {
	Options []SelectOption `json:"options"`
}

// NotionProperty describes one column of a task database
type NotionProperty struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Select *SelectConfig `json:"select,omitempty"`
}

// NotionPage is the subset of a task page the experience sync reads
type NotionPage struct {
	ID         string
	Numbers    map[string]*float64 // number and numeric formula values by property name
	Selects    map[string]string   // select option name by property name
	Statuses   map[string]string   // status name by property name
	LastEdited time.Time
}

// OptionChange is a request to add, rename or delete a select option
type OptionChange struct {
	Action   string `json:"action" validate:"required,oneof=ADD_OPTION UPDATE_OPTION DELETE_OPTION"`
	OptionID string `json:"option_id,omitempty"`
	Name     string `json:"name,omitempty" validate:"max=100"`
}
