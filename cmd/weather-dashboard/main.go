package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "modernc.org/sqlite"

	httpapi "github.com/natededev/weather-dashboard/internal/api/http"
	"github.com/natededev/weather-dashboard/internal/config"
	"github.com/natededev/weather-dashboard/internal/geo"
	"github.com/natededev/weather-dashboard/internal/owm"
	"github.com/natededev/weather-dashboard/internal/scheduler"
	"github.com/natededev/weather-dashboard/internal/store"
	"github.com/natededev/weather-dashboard/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !cfg.IsConfigured() {
		log.Println("INFO: no OpenWeather API key configured; serving sample weather data")
	}

	// Preferences live in a small SQLite file.
	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open preferences db: %v", err)
	}
	defer db.Close()

	if err := store.InitSchema(db); err != nil {
		log.Fatalf("failed to init preferences schema: %v", err)
	}
	prefs := store.NewPrefsStore(db)

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Pipeline wiring: one stateless API client shared by resolver and fetcher.
	client := owm.NewClient(httpClient, cfg.OpenWeatherAPIKey)
	resolver := geo.NewResolver(client, cfg.GeoBaseURL)
	fetcher := weather.NewFetcher(client, cfg.WeatherBaseURL, cfg.Units, cfg.Lang)
	service := weather.NewService(resolver, fetcher, cfg.IsConfigured())

	// Background refresh of the last-used location. Saved settings override
	// the configured default interval.
	interval := cfg.RefreshInterval
	if settings, err := prefs.LoadSettings(); err == nil && settings.AutoRefreshSeconds > 0 {
		interval = time.Duration(settings.AutoRefreshSeconds) * time.Second
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("failed to load settings: %v", err)
	}

	sched := scheduler.New(service, prefs, interval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, resolver, prefs)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func openDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
