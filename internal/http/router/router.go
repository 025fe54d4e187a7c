// Package router builds the Gin engine from the application's modules.
package router

import (
	"net/http"
	"time"

	apphttp "hampstead_backend/internal/http"
	"hampstead_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New assembles the HTTP router: global middleware, health endpoints and the
// routes of every registered module.
func New(app *apphttp.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "lead-intake-api",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	engine.GET("/ready", func(c *gin.Context) {
		payload := gin.H{"status": "ready"}
		if app.Health != nil {
			for name, configured := range app.Health.Readiness(c.Request.Context()) {
				payload[name] = configured
			}
		}
		c.JSON(http.StatusOK, payload)
	})

	v1 := engine.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(httpkit.APIKeyRequired(app.Config))

	ctx := &apphttp.RouterContext{
		Engine:            engine,
		V1:                v1,
		Protected:         protected,
		Config:            app.Config,
		SubmitRateLimiter: httpkit.NewSubmitRateLimiter(app.Logger),
		ScoreRateLimiter:  httpkit.NewScoreRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization", httpkit.APIKeyHeader,
	}
	corsConfig.AllowCredentials = cfg.GetCORSAllowCreds()

	if cfg.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.GetCORSOrigins()
	}

	return corsConfig
}
