package router

import (
	"fmt"
	"net/http"

	"emperror.dev/errors"
	"github.com/gin-gonic/gin"

	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/remote"
	"github.com/lunarweave/modctl/router/middleware"
	"github.com/lunarweave/modctl/settings"
)

// buildModuleItem shapes a module descriptor plus its live enablement state
// into the API representation.
func buildModuleItem(c *gin.Context, d *modules.Descriptor, store *settings.Store) ModuleItem {
	registry := middleware.ExtractRegistry(c)
	enabled := store.IsEnabled(d)

	// A module can only be enabled when everything it depends on is enabled.
	canBeEnabled := !enabled
	for _, dep := range d.DependsOn {
		parent, ok := registry.Get(dep)
		if !ok || !store.IsEnabled(parent) {
			canBeEnabled = false
			break
		}
	}

	id := d.ID()
	return ModuleItem{
		Module:                  d.Key,
		ID:                      id,
		IsEnabled:               enabled,
		CanBeEnabled:            canBeEnabled,
		CanBeDisabled:           enabled && d.CanBeDisabled,
		HasSettings:             d.HasSettings(),
		Name:                    d.Name,
		Description:             d.Description,
		DependsOn:               orEmpty(d.DependsOn),
		RequiresActivePlugins:   orEmpty(d.RequiresActivePlugins),
		RequiresInactivePlugins: orEmpty(d.RequiresInactivePlugins),
		Slug:                    d.URLSlug(),
		HasDocs:                 d.HasDocs,
		Links: ModuleLinks{
			Self:       apiBase(c) + "/modules/" + id,
			Collection: apiBase(c) + "/modules",
			Settings:   apiBase(c) + "/module-settings/" + id,
		},
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// getModules returns every registered module.
// @Summary List modules
// @Tags Modules
// @Produce json
// @Success 200 {object} router.ModuleListResponse
// @Router /api/modules [get]
func getModules(c *gin.Context) {
	registry := middleware.ExtractRegistry(c)
	store := middleware.ExtractSettings(c)

	list := registry.List()
	data := make([]ModuleItem, 0, len(list))
	for _, d := range list {
		data = append(data, buildModuleItem(c, d, store))
	}
	c.JSON(http.StatusOK, ModuleListResponse{Data: data})
}

// getModule returns a single module resolved by its human-facing ID.
// @Summary Get a module
// @Tags Modules
// @Produce json
// @Param module path string true "Module ID"
// @Success 200 {object} router.ModuleItem
// @Failure 404 {object} ErrorResponse
// @Router /api/modules/{module} [get]
func getModule(c *gin.Context) {
	registry := middleware.ExtractRegistry(c)

	d, err := registry.ResolveID(c.Param("module"))
	if err != nil {
		middleware.CaptureAndAbort(c, err)
		return
	}
	c.JSON(http.StatusOK, buildModuleItem(c, d, middleware.ExtractSettings(c)))
}

// postModule updates a module's enablement state. The state parameter is
// optional; omitting it performs no change and returns a success envelope.
// @Summary Enable or disable a module
// @Tags Modules
// @Accept json
// @Produce json
// @Param module path string true "Module ID"
// @Param state body router.ModuleStateRequest false "Target state"
// @Success 200 {object} remote.Envelope
// @Failure 400 {object} ErrorDetail
// @Failure 404 {object} ErrorResponse
// @Security AdminToken
// @Router /api/modules/{module} [post]
func postModule(c *gin.Context) {
	registry := middleware.ExtractRegistry(c)

	d, err := registry.ResolveID(c.Param("module"))
	if err != nil {
		middleware.CaptureAndAbort(c, err)
		return
	}

	var req ModuleStateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.CaptureAndAbort(c, errors.Wrap(err, "invalid request body"))
			return
		}
	}

	if result := validateModuleState(req.State); !result.OK() {
		result.Abort(c)
		return
	}

	c.JSON(http.StatusOK, applyModuleState(c, d, req.State).envelope())
}

// updateResult is the outcome of an update handler, mapped onto the wire
// envelope at the response boundary.
type updateResult struct {
	message string
	err     error
}

func (r updateResult) envelope() *remote.Envelope {
	if r.err != nil {
		return remote.ErrorEnvelope(r.err.Error())
	}
	return remote.SuccessEnvelope(r.message)
}

// applyModuleState toggles the module's enabled flag when a state was
// submitted. Toggling a module can change which URLs are valid (a client
// module exposes a route, for instance), so a rewrite flush is enqueued.
func applyModuleState(c *gin.Context, d *modules.Descriptor, state string) updateResult {
	if state == "" {
		return updateResult{message: fmt.Sprintf("No changes were applied to module %s.", d.Key)}
	}

	enabled := state == ModuleStateEnabled
	if err := middleware.ExtractSettings(c).SetEnabled(d.Key, enabled); err != nil {
		return updateResult{err: err}
	}
	middleware.ExtractScheduler(c).Enqueue()

	return updateResult{message: fmt.Sprintf("Module %s has been %s.", d.Key, state)}
}
