package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"linkedin-reviewer/internal/config"
	"linkedin-reviewer/internal/handlers"
	"linkedin-reviewer/internal/services"
	"linkedin-reviewer/internal/validator"
)

func main() {
	cfg := config.Load()

	zapLogger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("config loaded",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("credential_set", cfg.LLM.APIKey != ""),
	)

	// Services
	completion, err := services.NewCompletionService(cfg.LLM, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to initialize completion service", zap.Error(err))
	}
	if !completion.Configured() {
		zapLogger.Warn("completion credential missing; review requests will fail until it is set",
			zap.String("env", cfg.LLM.CredentialEnv()),
		)
	}

	reviewer := services.NewReviewerService(
		completion,
		services.NewPDFParserService(),
		zapLogger,
		services.ReviewerOptions{
			CredentialEnv: cfg.LLM.CredentialEnv(),
			StrictSchema:  cfg.Review.StrictSchema,
		},
	)
	certificates := services.NewCertificateService(zapLogger)

	// Handlers
	reviewHandler := handlers.NewReviewHandler(reviewer, cfg.Storage.MaxFileSize, zapLogger)
	certificateHandler := handlers.NewCertificateHandler(certificates, validator.New(), cfg.Certificate, zapLogger)

	app := fiber.New(fiber.Config{
		AppName:      "LinkedIn Profile Reviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, reviewHandler, certificateHandler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}
