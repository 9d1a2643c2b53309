package http

import (
	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/database"
	"github.com/mrlokans/bookhub/internal/sessions"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog  *catalog.Catalog
	Registry *controller.Registry
	Database *database.Database

	// Client identity. Without a session manager every request is served
	// as DefaultClientID.
	SessionManager  *sessions.SessionManager
	DefaultClientID string

	// CSRF protection is enabled when the secret is set
	CSRFSecret    []byte
	SecureCookies bool

	// UI overrides; empty means the embedded assets
	TemplatesPath string
	StaticPath    string

	MetricsEnabled bool

	// Application info
	Version string
}
