package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/config"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/database"
	"github.com/mrlokans/bookhub/internal/database/slots"
	"github.com/mrlokans/bookhub/internal/favorites"
	http_controllers "github.com/mrlokans/bookhub/internal/http"
	"github.com/mrlokans/bookhub/internal/logger"
	"github.com/mrlokans/bookhub/internal/reveal"
	"github.com/mrlokans/bookhub/internal/sessions"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the long-lived collaborators shared by every front end.
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Database *database.Database
	Slots    *slots.Repository
	Sessions *sessions.SessionManager
	Registry *controller.Registry
}

// Build validates cfg and wires the application. withSessions enables the
// browser session manager; terminal commands run without it.
func Build(cfg *config.Config, withSessions bool) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format, nil)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"genres": len(cat.Genres()),
		"books":  cat.Len(),
	}).Info("catalog loaded")

	db, err := database.NewDatabase(cfg.Database.Path, database.ParseLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Catalog:  cat,
		Database: db,
		Slots:    slots.NewRepository(db.DB),
	}

	if withSessions {
		sqlDB, err := db.DB.DB()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		app.Sessions, err = sessions.NewSessionManager(sqlDB, cfg.Sessions)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	app.Registry, err = controller.NewRegistry(cfg.Clients.CacheSize, app.NewController)
	if err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// NewController builds a controller for clientID with its favorites loaded.
// The session backend is used only when sessions are enabled.
func (a *App) NewController(ctx context.Context, clientID string) (*controller.Controller, error) {
	var kv favorites.KV = a.Slots.ForClient(clientID)
	if a.Sessions != nil && a.Config.Favorites.Backend == config.SlotBackendSession {
		kv = a.Sessions.KV()
	}

	return controller.New(ctx, controller.Config{
		ClientID:  clientID,
		Catalog:   a.Catalog,
		Store:     favorites.NewStore(kv, a.Config.Favorites.SlotKey),
		Scheduler: reveal.New(a.Config.Reveal.Step),
	}), nil
}

// Close releases everything Build opened.
func (a *App) Close() {
	if a.Registry != nil {
		a.Registry.Close()
	}
	if a.Sessions != nil {
		a.Sessions.Close()
	}
	if err := a.Database.Close(); err != nil {
		logrus.WithError(err).Error("closing database")
	}
}

// Router builds the HTTP router for the app.
func (a *App) Router(version string) (*gin.Engine, error) {
	var csrfSecret []byte
	if a.Config.Sessions.CSRFSecret != "" {
		csrfSecret = []byte(a.Config.Sessions.CSRFSecret)
	} else {
		logrus.Warn("CSRF_SECRET is not set, form posts are not CSRF protected")
	}

	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:         a.Catalog,
		Registry:        a.Registry,
		Database:        a.Database,
		SessionManager:  a.Sessions,
		DefaultClientID: a.Config.Clients.ClientID,
		CSRFSecret:      csrfSecret,
		SecureCookies:   a.Config.Sessions.SecureCookies,
		TemplatesPath:   a.Config.UI.TemplatesPath,
		StaticPath:      a.Config.UI.StaticPath,
		MetricsEnabled:  a.Config.Metrics.Enabled,
		Version:         version,
	})
}

// Serve runs the server until SIGINT or SIGTERM, then shuts down gracefully.
func Serve(router http.Handler, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logrus.Infof("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop live controllers first so open grid streams end
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logrus.Info("Server exiting")
	return nil
}

// Run starts the web front end.
func Run(cfg *config.Config, version string) error {
	logrus.Infof("Starting BookHub %s", version)
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := Build(cfg, true)
	if err != nil {
		return err
	}
	defer app.Close()

	router, err := app.Router(version)
	if err != nil {
		return err
	}

	return Serve(router, cfg, func(context.Context) {
		app.Registry.Close()
	})
}
