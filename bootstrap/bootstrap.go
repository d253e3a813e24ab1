package bootstrap

import (
	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/infrastructure/logging"
	"rentdesk-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless deployment (the api handler imports this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
