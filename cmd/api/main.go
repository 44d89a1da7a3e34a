package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/handlers"
	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/metrics"
	"alfredoptarigan/resume-insights/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Info().Str("env", cfg.Server.Env).Str("provider", cfg.Completion.Provider).Msg("config loaded")

	metrics.Init()

	// The schema is read once; a missing or broken file halts startup.
	schema, err := services.LoadSchema(cfg.Prompt.SchemaPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Prompt.SchemaPath).Msg("failed to load schema")
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.KeepUploads)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("failed to create upload directory")
	}

	ctx := context.Background()
	client, err := services.NewCompletionClientFromConfig(ctx, cfg.Completion)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize completion client")
	}

	pipeline := services.NewPipelineService(
		services.NewPDFParserService(),
		client,
		services.NewNormalizer(cfg.Prompt.StripCodeFences),
		services.PipelineOptions{
			Schema:       schema,
			AppendSchema: cfg.Prompt.SchemaPlacement == config.SchemaPlacementAppended,
			Strict:       cfg.Prompt.Strict,
		},
	)
	log.Info().Str("completion", client.Name()).Msg("services initialized")

	// Initialize Handlers
	uiHandler, err := handlers.NewUIHandler(cfg.Prompt.ResponseMode)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to render index page")
	}
	routes := handlers.Routes{
		UI:       uiHandler,
		Generate: handlers.NewGenerateHandler(pipeline, storageService, cfg.Storage.MaxFileSize, cfg.Prompt.ResponseMode),
		Prompt:   handlers.NewPromptHandler(schema),
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Insights API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    handlers.BodyLimit(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.SetupRoutes(app, routes)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("shutting down server")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msgf("server starting, open http://localhost%s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
