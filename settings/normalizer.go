package settings

import (
	"fmt"
	"strconv"
	"strings"

	"emperror.dev/errors"
	"github.com/asaskevich/govalidator"

	"github.com/lunarweave/modctl/modules"
)

// Normalizer canonicalizes raw user-submitted option values against a
// module's setting definitions before they are persisted. Values that cannot
// be coerced into the definition's type degrade to the definition default
// rather than failing the whole update.
type Normalizer struct{}

// NewNormalizer creates a settings normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize returns the canonical form of the submitted option values for the
// given module. Option keys without a matching editable definition produce an
// error; request validation rejects those earlier, so hitting one here means
// the caller skipped validation.
func (n *Normalizer) Normalize(d *modules.Descriptor, values map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(values))
	for input, raw := range values {
		def, ok := d.Setting(input)
		if !ok {
			return nil, errors.Errorf("option %s is not defined for module %s", input, d.Key)
		}
		out[input] = normalizeValue(def, raw)
	}
	return out, nil
}

func normalizeValue(def modules.SettingDefinition, raw interface{}) interface{} {
	switch def.Type {
	case modules.SettingTypeBool:
		return coerceBool(raw)
	case modules.SettingTypeInt:
		return clampInt(def, coerceInt(def, raw))
	case modules.SettingTypePath:
		return normalizePath(def, raw)
	case modules.SettingTypeURL:
		s := strings.TrimSpace(fmt.Sprint(raw))
		if s == "" || !govalidator.IsRequestURL(s) {
			return def.DefaultValue
		}
		return s
	case modules.SettingTypeEnum:
		s := fmt.Sprint(raw)
		for _, option := range def.Options {
			if s == option {
				return s
			}
		}
		return def.DefaultValue
	default:
		return fmt.Sprint(raw)
	}
}

func coerceBool(raw interface{}) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

func coerceInt(def modules.SettingDefinition, raw interface{}) int {
	switch v := raw.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	if i, ok := def.DefaultValue.(int); ok {
		return i
	}
	return 0
}

func clampInt(def modules.SettingDefinition, v int) int {
	if def.Min == 0 && def.Max == 0 {
		return v
	}
	if v < def.Min {
		return def.Min
	}
	if def.Max > def.Min && v > def.Max {
		return def.Max
	}
	return v
}

// normalizePath reduces a submitted path to "/segment[/...]" form. Leading and
// trailing slashes and whitespace collapse; an empty result falls back to the
// definition default.
func normalizePath(def modules.SettingDefinition, raw interface{}) interface{} {
	s := strings.Trim(strings.TrimSpace(fmt.Sprint(raw)), "/")
	if s == "" {
		return def.DefaultValue
	}
	return "/" + s
}
