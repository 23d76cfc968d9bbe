package handlers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/httpx"
	"github.com/diewo77/go-hebergement/internal/preview"
	"github.com/diewo77/go-hebergement/internal/templating"
)

// Health reports liveness along with database reachability.
type Health struct {
	DB       *gorm.DB
	Registry *templating.Registry
	Previews *preview.Store
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	database := "ok"
	if err := h.ping(r.Context()); err != nil {
		status, code, database = "degraded", http.StatusServiceUnavailable, err.Error()
	}
	httpx.JSON(w, code, map[string]any{
		"status":    status,
		"database":  database,
		"templates": h.Registry.Len(),
		"previews":  h.Previews.Len(),
	})
}

func (h *Health) ping(ctx context.Context) error {
	sqlDB, err := h.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
