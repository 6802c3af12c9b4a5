package modules

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// SettingType identifies how a setting value is normalized before it is
// persisted.
type SettingType string

const (
	SettingTypeBool   SettingType = "bool"
	SettingTypeInt    SettingType = "int"
	SettingTypeString SettingType = "string"
	SettingTypeURL    SettingType = "url"
	// SettingTypePath marks settings whose value feeds the host's URL routing
	// table. Updating one invalidates previously generated rewrite rules.
	SettingTypePath SettingType = "path"
	SettingTypeEnum SettingType = "enum"
)

// SettingDefinition describes a single setting attached to a module. An entry
// without an Input key is purely informational and cannot be edited through
// the API.
type SettingDefinition struct {
	// Input is the option key under which the value is persisted. Empty for
	// informational entries.
	Input string `json:"input,omitempty"`

	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Type        SettingType `json:"type,omitempty"`

	// Options is the value domain for enum typed settings.
	Options []string `json:"options,omitempty"`

	// Min and Max bound int typed settings. Both zero means unbounded.
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`

	DefaultValue interface{} `json:"defaultValue,omitempty"`
}

// Editable reports whether this setting can be updated through the API.
func (s SettingDefinition) Editable() bool {
	return s.Input != ""
}

// Descriptor is the static definition of a module: a toggleable feature unit
// of the host application, with its associated settings. Descriptors are
// registered once at boot; only the enabled flag and setting values change at
// runtime, and those live in the settings store.
type Descriptor struct {
	// Key is the internal module identifier, namespaced with slashes, for
	// example "clients/graphiql".
	Key string

	Name        string
	Description string

	// EnabledByDefault is used when no enablement state has been persisted
	// for the module yet.
	EnabledByDefault bool

	// CanBeDisabled is false for modules the host application depends on
	// unconditionally.
	CanBeDisabled bool

	// DependsOn lists module keys that must be enabled for this module to be
	// enabled.
	DependsOn []string

	// RequiresActivePlugins and RequiresInactivePlugins name host plugins
	// that must be active or inactive for this module to function.
	RequiresActivePlugins   []string
	RequiresInactivePlugins []string

	// Slug overrides the derived URL slug when set.
	Slug string

	// HasDocs indicates that documentation exists for this module.
	HasDocs bool

	Settings []SettingDefinition
}

// ID returns the human-facing identifier for the module, derived from the
// namespaced key: "clients/graphiql" becomes "clients-graphiql".
func (d *Descriptor) ID() string {
	return strcase.ToKebab(strings.ReplaceAll(d.Key, "/", " "))
}

// URLSlug returns the slug used when linking to module documentation.
func (d *Descriptor) URLSlug() string {
	if d.Slug != "" {
		return d.Slug
	}
	parts := strings.Split(d.Key, "/")
	return strcase.ToKebab(parts[len(parts)-1])
}

// HasSettings reports whether the module defines any settings at all,
// editable or informational.
func (d *Descriptor) HasSettings() bool {
	return len(d.Settings) > 0
}

// EditableSettings returns only the settings that carry an option key and can
// therefore be read and updated through the API.
func (d *Descriptor) EditableSettings() []SettingDefinition {
	out := make([]SettingDefinition, 0, len(d.Settings))
	for _, s := range d.Settings {
		if s.Editable() {
			out = append(out, s)
		}
	}
	return out
}

// Setting looks up an editable setting definition by its option key.
func (d *Descriptor) Setting(input string) (SettingDefinition, bool) {
	for _, s := range d.Settings {
		if s.Editable() && s.Input == input {
			return s, true
		}
	}
	return SettingDefinition{}, false
}
