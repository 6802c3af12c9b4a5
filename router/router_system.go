package router

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/lunarweave/modctl/router/middleware"
	"github.com/lunarweave/modctl/system"
)

// getSystemInformation returns version and module statistics for this daemon.
// @Summary Get system information
// @Tags System
// @Produce json
// @Success 200 {object} router.SystemInformationResponse
// @Security AdminToken
// @Router /api/system [get]
func getSystemInformation(c *gin.Context) {
	registry := middleware.ExtractRegistry(c)
	store := middleware.ExtractSettings(c)

	enabled := 0
	for _, d := range registry.List() {
		if store.IsEnabled(d) {
			enabled++
		}
	}

	c.JSON(http.StatusOK, SystemInformationResponse{
		Version:        system.Version,
		OS:             runtime.GOOS,
		Architecture:   runtime.GOARCH,
		GoVersion:      runtime.Version(),
		ModuleCount:    registry.Len(),
		ModulesEnabled: enabled,
	})
}
