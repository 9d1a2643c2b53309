package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/config"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/database"
	"github.com/mrlokans/bookhub/internal/database/slots"
	"github.com/mrlokans/bookhub/internal/entities"
	"github.com/mrlokans/bookhub/internal/favorites"
	"github.com/mrlokans/bookhub/internal/reveal"
	"github.com/mrlokans/bookhub/internal/sessions"
)

const testClientID = "test-client"

type testEnv struct {
	router   *gin.Engine
	registry *controller.Registry
	db       *database.Database
}

type envOption func(*RouterConfig)

func withSessions(t *testing.T) envOption {
	return func(cfg *RouterConfig) {
		sqlDB, err := cfg.Database.DB.DB()
		require.NoError(t, err)
		sm, err := sessions.NewSessionManager(sqlDB, config.Sessions{Lifetime: time.Hour})
		require.NoError(t, err)
		t.Cleanup(sm.Close)
		cfg.SessionManager = sm
	}
}

func withCSRF(secret string) envOption {
	return func(cfg *RouterConfig) {
		cfg.CSRFSecret = []byte(secret)
	}
}

func setupTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "bookhub.db"), gormlogger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cat := catalog.Default()
	repo := slots.NewRepository(db.DB)
	registry, err := controller.NewRegistry(16, func(ctx context.Context, clientID string) (*controller.Controller, error) {
		return controller.New(ctx, controller.Config{
			ClientID:  clientID,
			Catalog:   cat,
			Store:     favorites.NewStore(repo.ForClient(clientID), entities.SlotKeyFavorites),
			Scheduler: reveal.New(reveal.DefaultStep),
		}), nil
	})
	require.NoError(t, err)
	t.Cleanup(registry.Close)

	cfg := RouterConfig{
		Catalog:         cat,
		Registry:        registry,
		Database:        db,
		DefaultClientID: testClientID,
		MetricsEnabled:  true,
		Version:         "test",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	router, err := NewRouter(cfg)
	require.NoError(t, err)

	return &testEnv{router: router, registry: registry, db: db}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) postForm(target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) sendJSON(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) controller(t *testing.T) *controller.Controller {
	t.Helper()
	ctrl, err := e.registry.Get(context.Background(), testClientID)
	require.NoError(t, err)
	return ctrl
}
