// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/storefront/internal/config"
	"github.com/codr1/storefront/internal/db"
	"github.com/codr1/storefront/internal/ratelimit"
	"github.com/codr1/storefront/internal/scheduler"
	"github.com/codr1/storefront/internal/themeapi"
	"github.com/codr1/storefront/internal/themes"
)

const defaultConfigPath = "config/app.yaml"

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Features.EnableDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.App.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	cfg, err := config.Load(getEnv("CONFIG_PATH", defaultConfigPath))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg)

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	presets, err := db.ParsePresetsFile()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}

	scheme := themes.NewScheme(false)
	store, err := themes.NewStore(ctx, themes.Options{
		Presets:      presets,
		Scheme:       scheme,
		Persister:    db.NewKVStore(database.Queries, cfg.Theme.StoreKey),
		API:          themeapi.NewClient(cfg.Theme.APIBaseURL, cfg.Theme.RequestTimeout),
		FetchTimeout: cfg.Theme.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("create theme store: %w", err)
	}
	provider := themes.Mount(store)
	defer provider.Close()

	limiter := ratelimit.New(&ratelimit.Config{
		MaxPerWindow: cfg.Theme.SavesPerHourPerIP,
		Window:       ratelimit.DefaultConfig().Window,
	})
	defer limiter.Close()

	sched, err := scheduler.New()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if err := scheduler.RegisterThemeSchedules(sched, store, cfg.Theme.Schedules); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}()

	server := newServer(cfg, serverDeps{
		database: database,
		presets:  presets,
		store:    store,
		scheme:   scheme,
		limiter:  limiter,
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Int("port", cfg.App.Port).
			Str("theme_id", store.State().CurrentTheme.ID).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
