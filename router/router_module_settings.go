package router

import (
	"fmt"
	"net/http"

	"emperror.dev/errors"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/router/middleware"
	"github.com/lunarweave/modctl/settings"
)

// buildSettingsItem shapes a module's editable settings, augmented with their
// persisted values, into the API representation. Informational entries
// without an option key are filtered out.
func buildSettingsItem(c *gin.Context, d *modules.Descriptor, store *settings.Store) ModuleSettingsItem {
	editable := d.EditableSettings()
	entries := make([]SettingEntry, 0, len(editable))
	for _, def := range editable {
		entries = append(entries, SettingEntry{
			SettingDefinition: def,
			Value:             store.Value(d.Key, def),
		})
	}

	id := d.ID()
	return ModuleSettingsItem{
		ID:       id,
		Module:   d.Key,
		Settings: entries,
		Links: SettingsLinks{
			Self:       apiBase(c) + "/module-settings/" + id,
			Collection: apiBase(c) + "/module-settings",
			Module:     apiBase(c) + "/modules/" + id,
		},
	}
}

// getModuleSettingsList returns the editable settings of every module.
// @Summary List module settings
// @Tags Module Settings
// @Produce json
// @Success 200 {object} router.ModuleSettingsListResponse
// @Router /api/module-settings [get]
func getModuleSettingsList(c *gin.Context) {
	registry := middleware.ExtractRegistry(c)
	store := middleware.ExtractSettings(c)

	list := registry.List()
	data := make([]ModuleSettingsItem, 0, len(list))
	for _, d := range list {
		data = append(data, buildSettingsItem(c, d, store))
	}
	c.JSON(http.StatusOK, ModuleSettingsListResponse{Data: data})
}

// getModuleSettings returns the editable settings of a single module.
// @Summary Get settings for a module
// @Tags Module Settings
// @Produce json
// @Param module path string true "Module ID"
// @Success 200 {object} router.ModuleSettingsItem
// @Failure 404 {object} ErrorResponse
// @Router /api/module-settings/{module} [get]
func getModuleSettings(c *gin.Context) {
	registry := middleware.ExtractRegistry(c)

	d, err := registry.ResolveID(c.Param("module"))
	if err != nil {
		middleware.CaptureAndAbort(c, err)
		return
	}
	c.JSON(http.StatusOK, buildSettingsItem(c, d, middleware.ExtractSettings(c)))
}

// postModuleSettings updates option values for a module. Values arrive as a
// JSON-encoded string; every option key must exist among the module's setting
// definitions or the whole request is rejected before anything is persisted.
// @Summary Update settings for a module
// @Tags Module Settings
// @Accept json
// @Produce json
// @Param module path string true "Module ID"
// @Param values body router.ModuleSettingsUpdateRequest true "JSON encoded option values"
// @Success 200 {object} remote.Envelope
// @Failure 400 {object} ErrorDetail
// @Failure 404 {object} ErrorResponse
// @Security AdminToken
// @Router /api/module-settings/{module} [post]
func postModuleSettings(c *gin.Context) {
	registry := middleware.ExtractRegistry(c)

	// An unresolvable module ID short-circuits validation; the resolution
	// error is the one surfaced.
	d, err := registry.ResolveID(c.Param("module"))
	if err != nil {
		middleware.CaptureAndAbort(c, err)
		return
	}

	var req ModuleSettingsUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.CaptureAndAbort(c, errors.Wrap(err, "invalid request body"))
		return
	}

	if result := validateOptionValues(d, req.JSONEncodedOptionValues); !result.OK() {
		result.Abort(c)
		return
	}

	c.JSON(http.StatusOK, applyModuleSettings(c, d, req.JSONEncodedOptionValues).envelope())
}

// applyModuleSettings normalizes and persists the submitted option values.
// When any of them is a path setting the routing table is stale afterwards,
// so exactly one rewrite flush is enqueued.
func applyModuleSettings(c *gin.Context, d *modules.Descriptor, raw string) updateResult {
	var values map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return updateResult{err: errors.Wrap(err, "failed to decode option values")}
	}

	normalized, err := middleware.ExtractNormalizer(c).Normalize(d, values)
	if err != nil {
		return updateResult{err: err}
	}
	if err := middleware.ExtractSettings(c).SetValues(d.Key, normalized); err != nil {
		return updateResult{err: err}
	}

	for input := range normalized {
		if def, ok := d.Setting(input); ok && def.Type == modules.SettingTypePath {
			middleware.ExtractScheduler(c).Enqueue()
			break
		}
	}

	return updateResult{message: fmt.Sprintf("Settings for module %s have been updated.", d.Key)}
}
