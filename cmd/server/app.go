package main

import (
	"net/http"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/auth"
	"github.com/diewo77/go-hebergement/internal/gate"
	"github.com/diewo77/go-hebergement/internal/handlers"
	"github.com/diewo77/go-hebergement/internal/logging"
	"github.com/diewo77/go-hebergement/internal/middleware"
	"github.com/diewo77/go-hebergement/internal/policy"
	"github.com/diewo77/go-hebergement/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	db        *gorm.DB
	gate      *policy.AuthGate
	templates *services.TemplateService
	documents *services.DocumentService
	logger    zerolog.Logger
}

func NewApp(db *gorm.DB, ag *policy.AuthGate, templates *services.TemplateService, documents *services.DocumentService, logger zerolog.Logger) *App {
	app := &App{
		mux:       http.NewServeMux(),
		db:        db,
		gate:      ag,
		templates: templates,
		documents: documents,
		logger:    logger,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP applies the global middleware: access log, session, language.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := logging.AccessLog(a.logger)(auth.Middleware(middleware.Prefs(a.mux)))
	handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	health := &handlers.Health{DB: a.db, Registry: a.templates.Registry(), Previews: a.documents.Previews()}
	a.mux.Handle("GET /health", health)
	a.mux.Handle("GET /healthz", health)

	th := handlers.NewTemplateHandler(a.templates, a.documents, a.gate, logging.Component(a.logger, "templates"))
	tpl := func(action gate.Action, h http.HandlerFunc) http.Handler {
		return a.protect(gate.ResourceTemplate, action, h)
	}
	a.mux.Handle("GET /templates", tpl(gate.ActionList, th.List))
	a.mux.Handle("POST /templates", tpl(gate.ActionCreate, th.Create))
	a.mux.Handle("GET /templates/{id}", tpl(gate.ActionView, th.View))
	a.mux.Handle("PUT /templates/{id}", tpl(gate.ActionUpdate, th.Update))
	a.mux.Handle("POST /templates/{id}/duplicate", tpl(gate.ActionDuplicate, th.Duplicate))
	a.mux.Handle("POST /templates/{id}/activate", tpl(gate.ActionActivate, th.Activate))
	a.mux.Handle("POST /templates/{id}/deactivate", tpl(gate.ActionActivate, th.Deactivate))
	a.mux.Handle("POST /templates/{id}/missing", tpl(gate.ActionView, th.Missing))

	dh := handlers.NewDocumentHandler(a.documents, logging.Component(a.logger, "documents"))
	a.mux.Handle("POST /documents/preview", a.protect(gate.ResourceDocument, gate.ActionGenerate, http.HandlerFunc(dh.Preview)))
	a.mux.Handle("GET /documents/previews/{token}", a.protect(gate.ResourceDocument, gate.ActionView, http.HandlerFunc(dh.View)))
	a.mux.Handle("DELETE /documents/previews/{token}", a.protect(gate.ResourceDocument, gate.ActionView, http.HandlerFunc(dh.Release)))
	a.mux.Handle("POST /documents/download", a.protect(gate.ResourceDocument, gate.ActionGenerate, http.HandlerFunc(dh.Download)))
	a.mux.Handle("GET /reservations/{id}/documents/{type}/eligibility",
		a.protect(gate.ResourceReservation, gate.ActionView, http.HandlerFunc(dh.Eligibility)))

	admin := logging.Component(a.logger, "admin")
	aph := handlers.NewAdminProfileHandler(a.db, a.gate, admin)
	auph := handlers.NewAdminUserProfileHandler(a.db, a.gate, admin)
	a.mux.Handle("GET /admin/profiles", a.requireAdmin(http.HandlerFunc(aph.List)))
	a.mux.Handle("POST /admin/profiles", a.requireAdmin(http.HandlerFunc(aph.Create)))
	a.mux.Handle("DELETE /admin/profiles/{id}", a.requireAdmin(http.HandlerFunc(aph.Delete)))
	a.mux.Handle("PUT /admin/profiles/{id}/permissions", a.requireAdmin(http.HandlerFunc(aph.SavePermissions)))
	a.mux.Handle("GET /admin/permissions", a.requireAdmin(http.HandlerFunc(aph.ListPermissions)))
	a.mux.Handle("GET /admin/users", a.requireAdmin(http.HandlerFunc(auph.List)))
	a.mux.Handle("PUT /admin/users/{id}/profile", a.requireAdmin(http.HandlerFunc(auph.AssignProfile)))
}

// protect requires a session and the resource:action permission.
func (a *App) protect(resourceType string, action gate.Action, next http.Handler) http.Handler {
	return auth.RequireAuth(a.gate.RequirePermission(resourceType, action)(next))
}

func (a *App) requireAdmin(next http.Handler) http.Handler {
	return a.gate.RequireAdmin()(next)
}
