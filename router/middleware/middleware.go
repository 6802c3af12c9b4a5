package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"emperror.dev/errors"
	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lunarweave/modctl/config"
	"github.com/lunarweave/modctl/graphql"
	"github.com/lunarweave/modctl/modules"
	"github.com/lunarweave/modctl/rewrite"
	"github.com/lunarweave/modctl/settings"
)

// AttachRequestID attaches a unique ID to the incoming request and resolves a
// logger instance scoped to it.
func AttachRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		c.Set("logger", log.WithField("request_id", id))
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// CaptureErrors is custom handler function allowing for errors bubbled up by
// c.Error() to be returned in a standardized format with tracking UUIDs on
// them for easier log searching.
func CaptureErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		err := c.Errors.Last()
		if err == nil || err.Err == nil {
			return
		}

		status := http.StatusInternalServerError
		if c.Writer.Status() != http.StatusOK {
			status = c.Writer.Status()
		}
		if modules.IsNotFound(err.Err) {
			status = http.StatusNotFound
		}

		if status >= http.StatusInternalServerError {
			ExtractLogger(c).WithField("error", err.Err).Error("error while handling HTTP request")
		} else {
			ExtractLogger(c).WithField("error", err.Err).Debug("error handling HTTP request (not a server error)")
		}
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(status, gin.H{
				"error":      err.Err.Error(),
				"request_id": c.GetString("request_id"),
			})
		}
	}
}

// CaptureAndAbort aborts the request and attaches the provided error to the
// gin context, so it can be reported correctly by the error handling middleware.
func CaptureAndAbort(c *gin.Context, err error) {
	c.Abort()
	_ = c.Error(errors.WithStackDepthIf(err, 1))
}

// SetAccessControlHeaders sets the access request control headers on all of
// the requests.
func SetAccessControlHeaders() gin.HandlerFunc {
	origins := config.Get().AllowedOrigins
	return func(c *gin.Context) {
		c.Header("Access-Control-Max-Age", "7200")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Accept, Accept-Encoding, Authorization, Cache-Control, Content-Type, Content-Length, Origin, X-Real-IP, X-CSRF-Token")

		o := c.GetHeader("Origin")
		for _, origin := range origins {
			if o != origin && origin != "*" {
				continue
			}
			c.Header("Access-Control-Allow-Origin", origin)
			break
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireAuthorization authenticates the request against the daemon's
// configured administrative token. All routes behind this middleware require
// an `Authorization: Bearer <token>` header.
func RequireAuthorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(auth) != 2 || auth[0] != "Bearer" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "The required authorization heads were not present in the request.",
			})
			return
		}

		token := config.Get().AuthenticationToken
		if token == "" || subtle.ConstantTimeCompare([]byte(auth[1]), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "You are not authorized to access this endpoint.",
			})
			return
		}
		c.Next()
	}
}

// AttachRegistry attaches the module registry to the request context.
func AttachRegistry(r *modules.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("registry", r)
		c.Next()
	}
}

// AttachSettings attaches the settings store to the request context.
func AttachSettings(s *settings.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("settings", s)
		c.Next()
	}
}

// AttachNormalizer attaches the settings normalizer to the request context.
func AttachNormalizer(n *settings.Normalizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("normalizer", n)
		c.Next()
	}
}

// AttachScheduler attaches the rewrite flush scheduler to the request context.
func AttachScheduler(s *rewrite.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("scheduler", s)
		c.Next()
	}
}

// AttachEngine attaches the GraphQL engine shim to the request context.
func AttachEngine(e *graphql.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("engine", e)
		c.Next()
	}
}

// ConsumePendingFlush executes a pending rewrite-rule flush before the
// request is handled. The flush is enqueued during an earlier request and
// deliberately runs at the next request boundary, mirroring how the host
// framework defers rewrite regeneration.
func ConsumePendingFlush() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ExtractScheduler(c).Consume() {
			ExtractEngine(c).RebuildRoutes(ExtractRegistry(c), ExtractSettings(c))
		}
		c.Next()
	}
}

// ExtractLogger pulls the logger instance out of the request context.
func ExtractLogger(c *gin.Context) *log.Entry {
	if v, ok := c.Get("logger"); ok {
		return v.(*log.Entry)
	}
	return log.WithField("request_id", c.GetString("request_id"))
}

// ExtractRegistry pulls the module registry out of the request context.
func ExtractRegistry(c *gin.Context) *modules.Registry {
	return c.MustGet("registry").(*modules.Registry)
}

// ExtractSettings pulls the settings store out of the request context.
func ExtractSettings(c *gin.Context) *settings.Store {
	return c.MustGet("settings").(*settings.Store)
}

// ExtractNormalizer pulls the settings normalizer out of the request context.
func ExtractNormalizer(c *gin.Context) *settings.Normalizer {
	return c.MustGet("normalizer").(*settings.Normalizer)
}

// ExtractScheduler pulls the rewrite flush scheduler out of the request context.
func ExtractScheduler(c *gin.Context) *rewrite.Scheduler {
	return c.MustGet("scheduler").(*rewrite.Scheduler)
}

// ExtractEngine pulls the GraphQL engine shim out of the request context.
func ExtractEngine(c *gin.Context) *graphql.Engine {
	return c.MustGet("engine").(*graphql.Engine)
}
