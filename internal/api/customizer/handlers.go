// internal/api/customizer/handlers.go
package customizer

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/storefront/internal/api/apiutil"
	"github.com/codr1/storefront/internal/api/htmx"
	"github.com/codr1/storefront/internal/models"
	"github.com/codr1/storefront/internal/themes"
	themetempl "github.com/codr1/storefront/internal/templates/components/themes"
	"github.com/codr1/storefront/internal/templates/layouts"
)

const (
	themeAPITimeout = 10 * time.Second
	themeIDParam    = "id"
	pageTitle       = "Storefront"
)

var (
	store     *themes.Store
	storeOnce sync.Once
)

var sampleProducts = []themetempl.Product{
	{Name: "Canvas Tote", Price: "$38.00"},
	{Name: "Linen Shirt", Price: "$72.00"},
	{Name: "Ceramic Mug", Price: "$24.00"},
}

type setThemeRequest struct {
	ThemeID string              `json:"themeId"`
	Theme   *models.ThemeConfig `json:"theme"`
}

type setModeRequest struct {
	Mode string `json:"mode"`
}

type stateResponse struct {
	State     themes.State      `json:"state"`
	Dark      bool              `json:"dark"`
	Variables []themes.Variable `json:"variables"`
}

type saveResponse struct {
	Theme models.ThemeConfig `json:"theme"`
	Saved bool               `json:"saved"`
	Error string             `json:"error,omitempty"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(s *themes.Store) {
	if s == nil {
		return
	}
	storeOnce.Do(func() {
		store = s
	})
}

// GET /
func HandleStorefrontPage(w http.ResponseWriter, r *http.Request) {
	s := loadStore()
	if s == nil {
		log.Ctx(r.Context()).Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	style := layouts.NewThemeStyle(s.Compute())
	panel := themetempl.CustomizerPanel(themetempl.NewPanelData(s.Panel()))
	page := layouts.Base(pageTitle, themetempl.Storefront(sampleProducts, panel), style)
	if !apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render storefront page", "Failed to render page") {
		return
	}
}

// GET /theme.css
func HandleThemeStylesheet(w http.ResponseWriter, r *http.Request) {
	s := loadStore()
	if s == nil {
		log.Ctx(r.Context()).Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	root, ok := s.Target().(*themes.StyleRoot)
	if !ok {
		http.Error(w, "Stylesheet unavailable", http.StatusNotFound)
		return
	}

	etag := root.ETag()
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if _, err := w.Write([]byte(root.Stylesheet())); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write stylesheet")
	}
}

// GET /api/v1/theme
func HandleThemeState(w http.ResponseWriter, r *http.Request) {
	s := loadStore()
	if s == nil {
		log.Ctx(r.Context()).Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeState(w, r, s)
}

// PUT /api/v1/theme/current
func HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeSetThemeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case req.Theme != nil:
		s.SetTheme(*req.Theme)
	case strings.TrimSpace(req.ThemeID) != "":
		if err := s.SetThemeByID(strings.TrimSpace(req.ThemeID)); err != nil {
			if errors.Is(err, themes.ErrThemeNotFound) {
				http.Error(w, "Theme not found", http.StatusNotFound)
				return
			}
			logger.Error().Err(err).Str("theme_id", req.ThemeID).Msg("Failed to set theme")
			http.Error(w, "Failed to set theme", http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "themeId or theme is required", http.StatusBadRequest)
		return
	}

	writeState(w, r, s)
}

// PUT /api/v1/theme/mode
func HandleSetMode(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	req, err := decodeSetModeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.SetMode(mode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeState(w, r, s)
}

// PATCH /api/v1/theme/customizations
func HandleUpdateCustomizations(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	patch, err := decodeCustomizationsPatch(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := patch.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.UpdateCustomizations(patch)

	writeState(w, r, s)
}

// DELETE /api/v1/theme/customizations
func HandleResetCustomizations(w http.ResponseWriter, r *http.Request) {
	s := loadStore()
	if s == nil {
		log.Ctx(r.Context()).Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.ResetCustomizations()
	writeState(w, r, s)
}

// POST /api/v1/theme/custom
func HandleSaveCustomTheme(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeAPITimeout)
	defer cancel()

	theme, err := s.SaveCustomTheme(ctx)
	resp := saveResponse{Theme: theme, Saved: err == nil}
	status := http.StatusCreated
	if err != nil {
		logger.Warn().Err(err).Str("theme_id", theme.ID).Msg("Custom theme kept locally; remote save failed")
		resp.Error = "Theme saved locally but could not be sent to the theme API"
		status = http.StatusBadGateway
	}

	if htmx.IsRequest(r) {
		headers := map[string]string{"HX-Trigger": "themeSaved"}
		if err != nil {
			headers["HX-Trigger"] = "themeSaveFailed"
		}
		renderPanel(w, r, s, headers)
		return
	}
	if err := apiutil.WriteJSON(w, status, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write save response")
	}
}

// POST /api/v1/theme/load/{id}
func HandleLoadTheme(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Theme store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	themeID := strings.TrimSpace(r.PathValue(themeIDParam))
	if themeID == "" {
		http.Error(w, "Invalid theme ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), themeAPITimeout)
	defer cancel()

	if err := s.LoadThemeFromAPI(ctx, themeID); err != nil {
		herr := loadThemeError(err)
		logger.Debug().Err(err).Int("status", herr.Status).Str("theme_id", themeID).Msg("Theme load rejected")
		http.Error(w, herr.Message, herr.Status)
		return
	}

	writeState(w, r, s)
}

func loadThemeError(err error) apiutil.HandlerError {
	switch {
	case errors.Is(err, themes.ErrStaleTheme):
		return apiutil.HandlerError{Status: http.StatusConflict, Message: "Theme load superseded by a newer change", Err: err}
	case errors.Is(err, themes.ErrThemeNotFound):
		return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Theme not found", Err: err}
	case errors.Is(err, themes.ErrNoThemeAPI):
		return apiutil.HandlerError{Status: http.StatusServiceUnavailable, Message: "Theme API not configured", Err: err}
	default:
		return apiutil.HandlerError{Status: http.StatusBadGateway, Message: "Failed to load theme", Err: err}
	}
}

func writeState(w http.ResponseWriter, r *http.Request, s *themes.Store) {
	if htmx.IsRequest(r) {
		renderPanel(w, r, s, map[string]string{"HX-Trigger": "themeChanged"})
		return
	}

	result := s.Compute()
	resp := stateResponse{
		State:     s.State(),
		Dark:      result.Dark,
		Variables: result.Variables,
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write theme state")
	}
}

func renderPanel(w http.ResponseWriter, r *http.Request, s *themes.Store, headers map[string]string) {
	panel := themetempl.CustomizerPanel(themetempl.NewPanelData(s.Panel()))
	update := layouts.ThemeUpdate(layouts.NewThemeStyle(s.Compute()))
	component := templ.Join(panel, update)
	if !apiutil.RenderHTMLComponent(r.Context(), w, component, headers, "Failed to render customizer panel", "Failed to render panel") {
		return
	}
}

func loadStore() *themes.Store {
	return store
}
