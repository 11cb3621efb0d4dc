package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "motoweather/internal/api/http"
	"motoweather/internal/config"
	"motoweather/internal/forecast"
	"motoweather/internal/mail"
	"motoweather/internal/narrative"
	"motoweather/internal/ride"
	"motoweather/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Outbound forecast calls are bounded by the fetch timeout.
	forecastHTTP := &http.Client{
		Timeout: cfg.FetchTimeout,
	}
	forecastClient := forecast.NewClient(forecastHTTP, cfg.OpenWeatherAPIKey, cfg.Latitude, cfg.Longitude)

	// Text generation gets a looser bound; completions are slow.
	openaiHTTP := &http.Client{
		Timeout: 60 * time.Second,
	}
	openaiClient := narrative.NewClient(openaiHTTP, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	generator := narrative.NewGenerator(openaiClient, cfg.OpenAITemperature, cfg.SafeTag, cfg.NotSafeTag)

	mailer, err := mail.New(cfg.Mail)
	if err != nil {
		log.Fatalf("failed to configure mail: %v", err)
	}

	// Core pipeline service.
	service := ride.NewService(ride.Options{
		Source:     forecastClient,
		Slots:      cfg.CommuteTimes,
		Thresholds: cfg.Thresholds,
		Narrator:   generator,
		Mailer:     mailer,
		SafeTag:    cfg.SafeTag,
		NotSafeTag: cfg.NotSafeTag,
		Now: func() time.Time {
			return time.Now().In(cfg.Timezone)
		},
	})

	// Daily in-process trigger.
	sched := scheduler.New(service, cfg.DailyRunAt, cfg.Timezone)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "motoweather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * time.Minute, // /run blocks for the whole pipeline
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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
			"service": "motoweather",
		})
	})

	// Trigger routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Runner:   service,
		Location: cfg.Timezone,
		Now:      time.Now,
	})

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
