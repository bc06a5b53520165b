package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daybook/backup"
	"daybook/config"
	"daybook/database"
	"daybook/handlers"
	"daybook/middleware"
	"daybook/remind"
	"daybook/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/oauth2"
)

func main() {
	config.Load()

	logger := setupLogger()
	slog.SetDefault(logger)

	// Initialize SQLite store: the single process-wide handle, constructed
	// here and passed explicitly to everything that needs it
	db, err := database.New(config.AppConfig.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database initialized", "path", config.AppConfig.DBPath)

	repo := database.NewRepository(db)

	dayService := services.NewDayService(repo)
	locationService := services.NewLocationService(repo)
	tagService := services.NewTagService(repo)
	searchService := services.NewSearchService(repo)

	// Backup runs only when Drive credentials are configured
	var backupService *backup.Service
	var backupWorker *backup.Worker
	if config.AppConfig.BackupConfigured() {
		client, err := backup.NewClient(context.Background(), &oauth2.Token{
			RefreshToken: config.AppConfig.GoogleRefreshToken,
		})
		if err != nil {
			logger.Error("failed to create backup client", "error", err)
			os.Exit(1)
		}
		backupService = backup.NewService(client, db)
		backupWorker = backup.NewWorker(backupService, repo)
		backupWorker.Start()
		logger.Info("backup worker started")
	} else {
		logger.Warn("backup disabled: no Drive credentials configured")
	}

	// Daily reminder delivery; replace the callback to plug in a real
	// notification channel
	reminder := remind.NewScheduler(repo, func() {
		logger.Info("daily reminder: don't forget to write today's entry")
	})
	reminder.Start()

	var backupRunner handlers.BackupRunner
	if backupService != nil {
		backupRunner = backupService
	}
	h := handlers.New(dayService, locationService, tagService, searchService, repo, backupRunner)

	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: config.AppConfig.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
		ReadBufferSize:        8192,
	})

	app.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     config.GetEnv("CORS_ORIGINS", "*"),
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := app.Group("/api")
	api.Get("/days", h.ListDays)
	api.Get("/days/on-this-day", h.OnThisDay)
	api.Get("/days/:id", h.GetDay)
	api.Put("/days/:id", h.SaveDay)
	api.Post("/days/:id/favorite", h.ToggleFavorite)

	api.Get("/locations", h.ListLocations)
	api.Post("/locations", h.CreateLocation)
	api.Get("/locations/:id", h.GetLocation)
	api.Put("/locations/:id", h.UpdateLocation)
	api.Delete("/locations/:id", h.DeleteLocation)
	api.Post("/locations/attach", h.AttachLocation)
	api.Post("/locations/detach", h.DetachLocation)

	api.Get("/tags", h.ListTags)
	api.Post("/tags", h.CreateTag)
	api.Get("/tags/:id", h.GetTag)
	api.Put("/tags/:id", h.RenameTag)
	api.Delete("/tags/:id", h.DeleteTag)
	api.Post("/tags/entries", h.TagDay)
	api.Put("/tags/entries", h.UpdateTagEntry)
	api.Delete("/tags/entries", h.UntagDay)

	api.Get("/search", h.SearchDays)
	api.Get("/search/recent", h.RecentSearches)
	api.Delete("/search/recent", h.ClearRecentSearches)

	api.Get("/preferences", h.GetPreferences)
	api.Put("/preferences/backup", h.UpdateBackupPreferences)
	api.Put("/preferences/notifications", h.UpdateNotificationPreferences)

	api.Get("/backup", h.BackupStatus)
	api.Post("/backup", h.RunBackup)
	api.Post("/backup/restore", h.RunRestore)

	logger.Info("starting server", "port", config.AppConfig.Port, "env", config.AppConfig.Env)

	go func() {
		if err := app.Listen(":" + config.AppConfig.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	reminder.Stop()
	if backupWorker != nil {
		backupWorker.Stop()
		logger.Info("backup worker stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func setupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: config.AppConfig.Env == "development",
	}

	if config.AppConfig.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	level := config.GetEnv("LOG_LEVEL", "info")
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
