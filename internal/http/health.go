package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookhub/internal/catalog"
	"github.com/mrlokans/bookhub/internal/controller"
	"github.com/mrlokans/bookhub/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
	Stats   HealthStats       `json:"stats"`
}

// HealthStats is informational; it never changes the status.
type HealthStats struct {
	Genres  int `json:"genres"`
	Books   int `json:"books"`
	Clients int `json:"clients"`
}

type HealthController struct {
	db       *database.Database
	catalog  *catalog.Catalog
	registry *controller.Registry
	version  string
}

func NewHealthController(db *database.Database, cat *catalog.Catalog, registry *controller.Registry, version string) *HealthController {
	return &HealthController{db: db, catalog: cat, registry: registry, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{},
	}

	if h.db == nil {
		resp.Checks["database"] = "not configured"
	} else if err := h.db.Ping(); err != nil {
		resp.Checks["database"] = "error: " + err.Error()
		resp.Status = "unhealthy"
	} else {
		resp.Checks["database"] = "ok"
	}

	// An empty catalog still serves; every search just comes back empty.
	if h.catalog == nil || h.catalog.Len() == 0 {
		resp.Checks["catalog"] = "empty"
	} else {
		resp.Checks["catalog"] = "ok"
		resp.Stats.Genres = len(h.catalog.Genres())
		resp.Stats.Books = h.catalog.Len()
	}

	if h.registry != nil {
		resp.Stats.Clients = h.registry.Len()
	}

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.IndentedJSON(code, resp)
}
