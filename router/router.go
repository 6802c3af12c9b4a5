package router

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"github.com/lunarweave/modctl/config"
	"github.com/lunarweave/modctl/graphql"
	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/rewrite"
	"github.com/lunarweave/modctl/router/middleware"
	"github.com/lunarweave/modctl/settings"
)

// Configure configures the routing infrastructure for this daemon instance.
// All collaborators are injected here and attached to the request context;
// handlers never reach for globals.
func Configure(registry *modules.Registry, store *settings.Store, normalizer *settings.Normalizer, scheduler *rewrite.Scheduler, engine *graphql.Engine) *gin.Engine {
	gin.SetMode("release")

	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(config.Get().Api.TrustedProxies); err != nil {
		panic(errors.WithStack(err))
	}
	router.Use(middleware.AttachRequestID(), middleware.CaptureErrors(), middleware.SetAccessControlHeaders())
	router.Use(
		middleware.AttachRegistry(registry),
		middleware.AttachSettings(store),
		middleware.AttachNormalizer(normalizer),
		middleware.AttachScheduler(scheduler),
		middleware.AttachEngine(engine),
	)
	// A rewrite flush enqueued by an earlier request runs at the next request
	// boundary, before that request is handled.
	router.Use(middleware.ConsumePendingFlush())

	router.Use(gin.LoggerWithFormatter(func(params gin.LogFormatterParams) string {
		log.WithFields(log.Fields{
			"client_ip":  params.ClientIP,
			"status":     params.StatusCode,
			"latency":    params.Latency,
			"request_id": params.Keys["request_id"],
		}).Debugf("%s %s", params.MethodColor()+params.Method+params.ResetColor(), params.Path)

		return ""
	}))

	// Public documentation endpoints
	if config.Get().Api.Docs.Enabled {
		registerDocumentationRoutes(router)
	}

	// Module and settings reads are world-readable; only mutations require
	// the administrative token.
	router.GET("/api/modules", getModules)
	router.GET("/api/modules/:module", getModule)
	router.GET("/api/module-settings", getModuleSettingsList)
	router.GET("/api/module-settings/:module", getModuleSettings)

	protected := router.Group("")
	protected.Use(middleware.RequireAuthorization())
	protected.GET("/api/system", getSystemInformation)
	protected.POST("/api/modules/:module", postModule)
	protected.POST("/api/module-settings/:module", postModuleSettings)

	return router
}

// apiBase returns the base URL under which resource links are assembled,
// preferring the configured public base URL and falling back to the host of
// the request being served.
func apiBase(c *gin.Context) string {
	if base := config.Get().Api.PublicBaseURL; base != "" {
		return strings.TrimSuffix(base, "/") + "/api"
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api", scheme, c.Request.Host)
}
