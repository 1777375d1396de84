package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/fastboard-ai/devprofiler/internal/adapter/ai"
	"github.com/fastboard-ai/devprofiler/internal/adapter/github"
	"github.com/fastboard-ai/devprofiler/internal/adapter/store"
	"github.com/fastboard-ai/devprofiler/internal/handler"
	"github.com/fastboard-ai/devprofiler/internal/port"
	"github.com/fastboard-ai/devprofiler/internal/service"
	"github.com/fastboard-ai/devprofiler/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("starting profiler",
		"port", cfg.Port,
		"mode", cfg.ProfileMode,
		"embedding_model", cfg.EmbeddingModel,
	)

	// ── Vector backend (optional, absence degrades to keyword mode) ─────
	var index port.VectorIndex
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			slog.Warn("database unavailable, running in keyword mode", "error", err)
		} else {
			defer pgStore.Close()
			if err := pgStore.EnsureSchema(context.Background()); err != nil {
				slog.Error("schema setup failed", "error", err)
				os.Exit(1)
			}
			index = store.NewVectorIndex(pgStore)
		}
	} else {
		slog.Info("no DATABASE_URL configured, running in keyword mode")
	}

	// ── Adapters ─────────────────────────────────────────────────────────
	source := github.NewClient(cfg.GitHubBaseURL, cfg.GitHubToken)
	embedder := ai.NewGeminiProvider(cfg.GeminiBaseURL, cfg.EmbeddingModel, cfg.GeminiAPIKey)
	if !embedder.Ready() {
		slog.Warn("no GEMINI_API_KEY configured, semantic retrieval disabled")
	}

	// ── Services ─────────────────────────────────────────────────────────
	budgets := service.Budgets{
		MaxRepos:        cfg.MaxRepos,
		MaxFilesPerRepo: cfg.MaxFilesPerRepo,
		MaxTotalFiles:   cfg.MaxTotalFiles,
		MaxFileSize:     cfg.MaxFileSize,
	}
	profiles := service.NewProfileService(source, embedder, index, budgets, cfg.ProfileMode, cfg.ExcerptsPerCategory)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"app":    cfg.AppName,
		})
	})

	api := app.Group("/api/v1")

	tracker := handler.NewJobTracker()

	profileHandler := handler.NewProfileHandler(profiles, tracker)
	profileHandler.Register(api)

	jobsHandler := handler.NewJobsHandler(tracker)
	jobsHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
