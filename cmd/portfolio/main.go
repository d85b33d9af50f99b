package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/cquispe/portfolio-agent/internal/adapter/discord"
	pahttp "github.com/cquispe/portfolio-agent/internal/adapter/http"
	"github.com/cquispe/portfolio-agent/internal/adapter/openai"
	"github.com/cquispe/portfolio-agent/internal/adapter/otel"
	_ "github.com/cquispe/portfolio-agent/internal/adapter/pushover"
	"github.com/cquispe/portfolio-agent/internal/adapter/ristretto"
	"github.com/cquispe/portfolio-agent/internal/config"
	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
	"github.com/cquispe/portfolio-agent/internal/domain/profile"
	"github.com/cquispe/portfolio-agent/internal/logger"
	"github.com/cquispe/portfolio-agent/internal/port/cache"
	"github.com/cquispe/portfolio-agent/internal/port/notifier"
	"github.com/cquispe/portfolio-agent/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, closeLog := logger.New(cfg.Logging)
	defer closeLog.Close()
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"model", cfg.OpenAI.Model,
		"notifier", cfg.Notifier.Provider,
	)

	// --- Data ---

	cat, err := catalog.Load(cfg.Catalog.ProjectsCSV, cfg.Catalog.MetadataJSON)
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	slog.Info("catalog loaded", "projects", cat.Size(), "has_metadata", cat.HasMetadata())

	prof := profile.Load(cfg.Profile)

	// --- Infrastructure ---

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	var sender notifier.Notifier
	if cfg.Notifier.Provider != "" {
		sender, err = notifier.New(cfg.Notifier.Provider, map[string]string{
			"token":       cfg.Notifier.PushoverToken,
			"user":        cfg.Notifier.PushoverUser,
			"webhook_url": cfg.Notifier.DiscordWebhook,
		})
		if err != nil {
			return fmt.Errorf("notifier: %w", err)
		}
	}

	var responseCache cache.Cache
	store, err := ristretto.New(cfg.Cache.MaxBytes, cfg.Cache.TTL)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer store.Close()
	responseCache = store

	// --- Services ---

	llmClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
	sink := service.NewAlertSink(sender, cfg.Notifier.Timeout, log, metrics)
	tools := service.NewToolRegistry(cat, sink)

	engine, err := service.NewEngine(llmClient, tools, *prof, cfg.OpenAI.Model, cfg.Agent.MaxToolRounds, log, metrics)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	// --- HTTP ---

	handlers := &pahttp.Handlers{
		Chat:    engine,
		Catalog: cat,
	}

	r := chi.NewRouter()
	r.Use(pahttp.CORS(cfg.Server.CORSOrigin))
	r.Use(pahttp.Logger)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(3 * time.Minute))

	pahttp.MountRoutes(r, handlers, responseCache, cfg.Cache.TTL)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(r, "portfolio-api"),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      3 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
