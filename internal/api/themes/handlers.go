// internal/api/themes/handlers.go
package themes

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/storefront/internal/api/apiutil"
	"github.com/codr1/storefront/internal/api/htmx"
	dbgen "github.com/codr1/storefront/internal/db/generated"
	"github.com/codr1/storefront/internal/models"
	"github.com/codr1/storefront/internal/ratelimit"
)

const (
	themeQueryTimeout = 5 * time.Second
	maxStoredThemes   = 1000
	themeIDParam      = "id"
)

var (
	queries     themeQueries
	presets     []models.ThemeConfig
	limiter     *ratelimit.Limiter
	trustProxy  bool
	queriesOnce sync.Once
)

type themeQueries interface {
	models.ThemeQueries
	CountThemes(ctx context.Context) (int64, error)
	DeleteTheme(ctx context.Context, id string) (int64, error)
	UpsertTheme(ctx context.Context, arg dbgen.UpsertThemeParams) (dbgen.Theme, error)
}

type Deps struct {
	Queries    themeQueries
	Presets    []models.ThemeConfig
	Limiter    *ratelimit.Limiter
	TrustProxy bool
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(deps Deps) {
	if deps.Queries == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = deps.Queries
		presets = deps.Presets
		limiter = deps.Limiter
		trustProxy = deps.TrustProxy
	})
}

// GET /api/themes
func HandleThemesList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	stored, err := models.GetStoredThemes(ctx, q)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list stored themes")
		http.Error(w, "Failed to load themes", http.StatusInternalServerError)
		return
	}

	themes := make([]models.ThemeConfig, 0, len(presets)+len(stored))
	themes = append(themes, presets...)
	themes = append(themes, stored...)
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{"themes": themes}); err != nil {
		logger.Error().Err(err).Msg("Failed to write themes response")
	}
}

// GET /api/themes/{id}
func HandleThemeDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID := themeIDFromRequest(r)
	if themeID == "" {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}

	if preset, ok := findPreset(themeID); ok {
		if err := apiutil.WriteJSON(w, http.StatusOK, preset); err != nil {
			logger.Error().Err(err).Str("theme_id", themeID).Msg("Failed to write theme response")
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	row, err := q.GetTheme(ctx, themeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Theme not found", http.StatusNotFound)
			return
		}
		logger.Error().Err(err).Str("theme_id", themeID).Msg("Failed to fetch theme")
		http.Error(w, "Failed to load theme", http.StatusInternalServerError)
		return
	}

	theme, err := models.ThemeFromDB(row)
	if err != nil {
		logger.Error().Err(err).Str("theme_id", themeID).Msg("Stored theme is invalid")
		http.Error(w, "Invalid theme data", http.StatusInternalServerError)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, theme); err != nil {
		logger.Error().Err(err).Str("theme_id", themeID).Msg("Failed to write theme response")
	}
}

// POST /api/themes
func HandleThemeCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if limiter != nil {
		ip := ratelimit.GetClientIP(r, trustProxy)
		if result := limiter.Allow(ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded(ip, result)
			apiutil.WriteRetryAfter(w, result.RetryAfter)
			http.Error(w, "Too many theme saves", http.StatusTooManyRequests)
			return
		}
	}

	if !apiutil.IsJSONRequest(r) {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}
	var theme models.ThemeConfig
	if err := apiutil.DecodeJSON(r, &theme); err != nil {
		http.Error(w, "Invalid theme body: "+err.Error(), http.StatusBadRequest)
		return
	}
	theme.ID = strings.TrimSpace(theme.ID)
	if _, ok := findPreset(theme.ID); ok {
		http.Error(w, "Preset themes are read-only", http.StatusForbidden)
		return
	}
	if err := theme.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	existing, err := q.GetTheme(ctx, theme.ID)
	switch {
	case err == nil:
		theme.CreatedAt = existing.CreatedAt
	case errors.Is(err, sql.ErrNoRows):
		count, err := q.CountThemes(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to count themes")
			http.Error(w, "Failed to validate theme limit", http.StatusInternalServerError)
			return
		}
		if count >= maxStoredThemes {
			http.Error(w, "Theme limit reached", http.StatusConflict)
			return
		}
	default:
		logger.Error().Err(err).Str("theme_id", theme.ID).Msg("Failed to fetch theme")
		http.Error(w, "Failed to save theme", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	if theme.CreatedAt.IsZero() {
		theme.CreatedAt = now
	}
	theme.UpdatedAt = now

	params, err := models.ThemeToDBParams(theme)
	if err != nil {
		logger.Error().Err(err).Str("theme_id", theme.ID).Msg("Failed to encode theme")
		http.Error(w, "Failed to save theme", http.StatusInternalServerError)
		return
	}
	saved, err := q.UpsertTheme(ctx, params)
	if err != nil {
		logger.Error().Err(err).Str("theme_id", theme.ID).Msg("Failed to save theme")
		http.Error(w, "Failed to save theme", http.StatusInternalServerError)
		return
	}

	logger.Info().Str("theme_id", theme.ID).Str("category", string(theme.Category)).Msg("Theme saved")

	if htmx.IsRequest(r) {
		apiutil.WriteHTMLFeedback(w, http.StatusCreated, "Theme saved.")
		return
	}

	stored, err := models.ThemeFromDB(saved)
	if err != nil {
		logger.Error().Err(err).Str("theme_id", theme.ID).Msg("Stored theme is invalid")
		http.Error(w, "Invalid theme data", http.StatusInternalServerError)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, stored); err != nil {
		logger.Error().Err(err).Str("theme_id", theme.ID).Msg("Failed to write theme response")
	}
}

// DELETE /api/themes/{id}
func HandleThemeDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID := themeIDFromRequest(r)
	if themeID == "" {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}
	if _, ok := findPreset(themeID); ok {
		http.Error(w, "Preset themes are read-only", http.StatusForbidden)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeQueryTimeout)
	defer cancel()

	deleted, err := q.DeleteTheme(ctx, themeID)
	if err != nil {
		logger.Error().Err(err).Str("theme_id", themeID).Msg("Failed to delete theme")
		http.Error(w, "Failed to delete theme", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.Error(w, "Theme not found", http.StatusNotFound)
		return
	}

	logger.Info().Str("theme_id", themeID).Msg("Theme deleted")

	if htmx.IsRequest(r) {
		apiutil.WriteHTMLFeedback(w, http.StatusOK, "Theme deleted.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func themeIDFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.PathValue(themeIDParam))
}

func findPreset(id string) (models.ThemeConfig, bool) {
	for _, preset := range presets {
		if preset.ID == id {
			return preset, true
		}
	}
	return models.ThemeConfig{}, false
}

func loadQueries() themeQueries {
	return queries
}
