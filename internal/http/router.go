package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	if cfg.MetricsEnabled {
		router.Use(Metrics())
	}

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	tmpl, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	serveStatic(router, cfg.StaticPath)

	health := NewHealthController(cfg.Database, cfg.Catalog, cfg.Registry, cfg.Version)
	ui := NewUIController(cfg.Version)
	api := NewAPIController(cfg.Catalog)
	stream := NewStreamController()

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		respondSuccess(c, "pong", nil)
	})
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.GET("/api/genres", api.Genres)

	client := router.Group("/", ClientMiddleware(cfg.Registry, cfg.SessionManager, cfg.DefaultClientID))

	// UI routes
	client.GET("/", ui.Index)
	client.POST("/actions/:action", ui.Action)

	// JSON API
	client.GET("/api/books", api.Books)
	client.GET("/api/favorites", api.Favorites)
	client.POST("/api/favorites/toggle", api.ToggleFavorite)
	client.DELETE("/api/favorites", api.RemoveFavorite)
	client.DELETE("/api/favorites/all", api.ClearFavorites)
	client.GET("/api/grid/stream", stream.Grid)

	return router, nil
}
