// Package router builds the Gin engine and mounts all domain modules.
package router

import (
	"net/http"
	"strings"

	apphttp "github.com/Avi0202/hubspot-task/internal/http"
	"github.com/Avi0202/hubspot-task/platform/config"
	"github.com/Avi0202/hubspot-task/platform/httpkit"
	"github.com/Avi0202/hubspot-task/platform/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New creates the Gin engine, applies shared middleware, and registers
// every domain module's routes.
func New(cfg config.HTTPConfig, log *logger.Logger, modules []apphttp.Module) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(log))
	engine.Use(cors.New(corsConfig(cfg)))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctx := &apphttp.RouterContext{
		Engine: engine,
		Root:   engine.Group(""),
	}

	for _, m := range modules {
		m.RegisterRoutes(ctx)
		log.Info("module routes registered", "module", m.Name())
	}

	return engine
}

func corsConfig(cfg config.HTTPConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}

	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	origins := cfg.GetCORSOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:4200"}
	}
	corsCfg.AllowOrigins = make([]string, 0, len(origins))
	for _, o := range origins {
		corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, strings.TrimRight(o, "/"))
	}
	corsCfg.AllowCredentials = cfg.GetCORSAllowCreds()

	return corsCfg
}
