// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/storefront/internal/api"
	"github.com/codr1/storefront/internal/api/customizer"
	themesapi "github.com/codr1/storefront/internal/api/themes"
	"github.com/codr1/storefront/internal/config"
	"github.com/codr1/storefront/internal/db"
	"github.com/codr1/storefront/internal/models"
	"github.com/codr1/storefront/internal/ratelimit"
	"github.com/codr1/storefront/internal/themes"
)

type serverDeps struct {
	database *db.DB
	presets  []models.ThemeConfig
	store    *themes.Store
	scheme   *themes.Scheme
	limiter  *ratelimit.Limiter
}

func newServer(cfg *config.Config, deps serverDeps) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
		api.WithColorSchemeHint(deps.scheme),
	)

	themesapi.InitHandlers(themesapi.Deps{
		Queries:    deps.database.Queries,
		Presets:    deps.presets,
		Limiter:    deps.limiter,
		TrustProxy: cfg.App.TrustProxy,
	})
	customizer.InitHandlers(deps.store)

	registerRoutes(router, cfg.App.StaticDir)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, staticDir string) {
	// Storefront preview with the customizer panel
	mux.HandleFunc("GET /{$}", customizer.HandleStorefrontPage)
	mux.HandleFunc("GET /theme.css", customizer.HandleThemeStylesheet)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write health response")
		}
	})

	// Theme store routes
	mux.HandleFunc("GET /api/v1/theme", customizer.HandleThemeState)
	mux.HandleFunc("PUT /api/v1/theme/current", customizer.HandleSetTheme)
	mux.HandleFunc("PUT /api/v1/theme/mode", customizer.HandleSetMode)
	mux.HandleFunc("PATCH /api/v1/theme/customizations", customizer.HandleUpdateCustomizations)
	mux.HandleFunc("DELETE /api/v1/theme/customizations", customizer.HandleResetCustomizations)
	mux.HandleFunc("POST /api/v1/theme/custom", customizer.HandleSaveCustomTheme)
	mux.HandleFunc("POST /api/v1/theme/load/{id}", customizer.HandleLoadTheme)

	// Remote theme endpoint
	mux.HandleFunc("GET /api/themes", themesapi.HandleThemesList)
	mux.HandleFunc("POST /api/themes", themesapi.HandleThemeCreate)
	mux.HandleFunc("GET /api/themes/{id}", themesapi.HandleThemeDetail)
	mux.HandleFunc("DELETE /api/themes/{id}", themesapi.HandleThemeDelete)

	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
