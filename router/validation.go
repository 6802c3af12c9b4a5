package router

import (
	"fmt"
	"net/http"

	"github.com/Jeffail/gabs/v2"
	"github.com/gin-gonic/gin"

	"github.com/lunarweave/modctl/modules"
)

// Module state values accepted by the modules update endpoint.
const (
	ModuleStateEnabled  = "enabled"
	ModuleStateDisabled = "disabled"
)

// ValidationResult is the outcome of a named request validator: either
// accepted, or rejected with a status code and a structured error detail.
type ValidationResult struct {
	ok     bool
	status int
	detail ErrorDetail
}

// Accepted returns a passing validation result.
func Accepted() ValidationResult {
	return ValidationResult{ok: true}
}

// Rejected returns a failing validation result carrying the error detail to
// send back to the client.
func Rejected(status int, detail ErrorDetail) ValidationResult {
	return ValidationResult{status: status, detail: detail}
}

// OK reports whether validation passed.
func (r ValidationResult) OK() bool {
	return r.ok
}

// Abort writes the rejection to the response and aborts the request. Calling
// it on an accepted result is a no-op.
func (r ValidationResult) Abort(c *gin.Context) {
	if r.ok {
		return
	}
	c.AbortWithStatusJSON(r.status, r.detail)
}

// validateModuleState checks the optional state parameter of a module update.
// An empty state is valid and results in a no-op update.
func validateModuleState(state string) ValidationResult {
	if state == "" || state == ModuleStateEnabled || state == ModuleStateDisabled {
		return Accepted()
	}
	return Rejected(http.StatusBadRequest, ErrorDetail{
		Code:    "invalid_parameter",
		Message: fmt.Sprintf("Parameter state must be either %q or %q, %q given.", ModuleStateEnabled, ModuleStateDisabled, state),
		Data: map[string]interface{}{
			"parameter": "state",
			"value":     state,
		},
	})
}

// validateOptionValues checks the jsonEncodedOptionValues parameter of a
// settings update against the module's setting definitions: the payload must
// be a JSON object, and every option key must name an editable setting of the
// module.
func validateOptionValues(d *modules.Descriptor, raw string) ValidationResult {
	if raw == "" {
		return Rejected(http.StatusBadRequest, ErrorDetail{
			Code:    "missing_parameter",
			Message: "Parameter jsonEncodedOptionValues is required.",
			Data: map[string]interface{}{
				"parameter": "jsonEncodedOptionValues",
			},
		})
	}

	parsed, err := gabs.ParseJSON([]byte(raw))
	if err != nil {
		return Rejected(http.StatusBadRequest, ErrorDetail{
			Code:    "malformed_json",
			Message: fmt.Sprintf("Parameter jsonEncodedOptionValues is not valid JSON: %q.", raw),
			Data: map[string]interface{}{
				"parameter": "jsonEncodedOptionValues",
				"value":     raw,
			},
		})
	}

	if _, isObject := parsed.Data().(map[string]interface{}); !isObject {
		return Rejected(http.StatusBadRequest, ErrorDetail{
			Code:    "malformed_json",
			Message: "Parameter jsonEncodedOptionValues must encode an object of option to value pairs.",
			Data: map[string]interface{}{
				"parameter": "jsonEncodedOptionValues",
				"value":     raw,
			},
		})
	}

	for option := range parsed.ChildrenMap() {
		if _, ok := d.Setting(option); !ok {
			return Rejected(http.StatusBadRequest, ErrorDetail{
				Code:    "unknown_option",
				Message: fmt.Sprintf("There is no option %q in module %q (ID %q).", option, d.Key, d.ID()),
				Data: map[string]interface{}{
					"option":   option,
					"module":   d.Key,
					"moduleID": d.ID(),
				},
			})
		}
	}
	return Accepted()
}
