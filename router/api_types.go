package router

import (
	"github.com/lunarweave/modctl/modules"
)

// ErrorResponse represents the common error payload returned by the API.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorDetail is the structured error object returned when request
// validation rejects a parameter. Data carries contextual fields such as the
// offending parameter, its value, or the module involved.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// ModuleLinks are the resource links attached to a module item.
type ModuleLinks struct {
	Self       string `json:"self"`
	Collection string `json:"collection"`
	Settings   string `json:"settings"`
}

// ModuleItem represents a module in API responses.
type ModuleItem struct {
	Module                  string      `json:"module"`
	ID                      string      `json:"id"`
	IsEnabled               bool        `json:"isEnabled"`
	CanBeEnabled            bool        `json:"canBeEnabled"`
	CanBeDisabled           bool        `json:"canBeDisabled"`
	HasSettings             bool        `json:"hasSettings"`
	Name                    string      `json:"name"`
	Description             string      `json:"description"`
	DependsOn               []string    `json:"dependsOn"`
	RequiresActivePlugins   []string    `json:"requiresActivePlugins"`
	RequiresInactivePlugins []string    `json:"requiresInactivePlugins"`
	Slug                    string      `json:"slug"`
	HasDocs                 bool        `json:"hasDocumentation"`
	Links                   ModuleLinks `json:"links"`
}

// ModuleListResponse contains the module collection.
type ModuleListResponse struct {
	Data []ModuleItem `json:"data"`
}

// ModuleStateRequest is the body of a module update request. State is
// optional; when present it must be either "enabled" or "disabled".
type ModuleStateRequest struct {
	State string `json:"state"`
}

// SettingsLinks are the resource links attached to a module settings item.
type SettingsLinks struct {
	Self       string `json:"self"`
	Collection string `json:"collection"`
	Module     string `json:"module"`
}

// SettingEntry is an editable setting definition augmented with its currently
// persisted value.
type SettingEntry struct {
	modules.SettingDefinition
	Value interface{} `json:"value"`
}

// ModuleSettingsItem represents one module's editable settings collection.
type ModuleSettingsItem struct {
	ID       string         `json:"id"`
	Module   string         `json:"module"`
	Settings []SettingEntry `json:"settings"`
	Links    SettingsLinks  `json:"links"`
}

// ModuleSettingsListResponse contains the settings collection across modules.
type ModuleSettingsListResponse struct {
	Data []ModuleSettingsItem `json:"data"`
}

// ModuleSettingsUpdateRequest is the body of a settings update request. The
// option values arrive as a JSON-encoded string of option to value pairs.
type ModuleSettingsUpdateRequest struct {
	JSONEncodedOptionValues string `json:"jsonEncodedOptionValues"`
}

// SystemInformationResponse describes this daemon instance.
type SystemInformationResponse struct {
	Version        string `json:"version"`
	OS             string `json:"os"`
	Architecture   string `json:"architecture"`
	GoVersion      string `json:"go_version"`
	ModuleCount    int    `json:"module_count"`
	ModulesEnabled int    `json:"modules_enabled"`
}
