package router

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	handler "github.com/zdziszkee/swift-registry/internal/api/handlers"
	"github.com/zdziszkee/swift-registry/internal/api/middleware"
	"github.com/zdziszkee/swift-registry/internal/metrics"
)

// Config carries the server wide dependencies of the router. Metrics may be
// nil, in which case /metrics is not mounted.
type Config struct {
	AppName      string
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// SetupRoutes configures all API routes
func SetupRoutes(swiftHandler *handler.SwiftHandler, cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			return c.Status(code).JSON(fiber.Map{
				"message": message,
			})
		},
	})

	app.Use(middleware.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(recover.New())

	app.Get("/healthz", swiftHandler.Health)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	v1 := app.Group("/v1")

	v1.Get("/swift-codes/country/:countryISO2code", swiftHandler.GetByCountry)
	v1.Get("/swift-codes/:swiftCode", swiftHandler.GetByCode)
	v1.Post("/swift-codes", swiftHandler.Create)
	v1.Delete("/swift-codes/:swiftCode", swiftHandler.Delete)
	v1.Post("/load-data", swiftHandler.LoadData)
	return app
}
