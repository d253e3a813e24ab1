package router

import (
	importsvc "rentdesk-backend/internal/application/imports"
	reportsvc "rentdesk-backend/internal/application/reports"
	sitesvc "rentdesk-backend/internal/application/sites"
	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/infrastructure/database"
	"rentdesk-backend/internal/infrastructure/store"
	healthhandler "rentdesk-backend/internal/interfaces/handlers/health"
	importhandler "rentdesk-backend/internal/interfaces/handlers/imports"
	reporthandler "rentdesk-backend/internal/interfaces/handlers/reports"
	sitehandler "rentdesk-backend/internal/interfaces/handlers/sites"
	"rentdesk-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// bodySlack leaves room for multipart framing around the uploaded file.
const bodySlack = 1 << 20

// CreateApp wires storage, Redis (optional) and every route.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.DBAutoMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	fcfg := fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	}
	if cfg.ImportMaxBytes > 0 {
		fcfg.BodyLimit = int(cfg.ImportMaxBytes) + bodySlack
	}
	app := fiber.New(fcfg)

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &gormDBPinger{db: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	leases := &store.GormLeaseStore{DB: db}

	sh := &sitehandler.Handlers{Service: &sitesvc.Service{Store: leases}}
	app.Get("/api/sites", sh.Get)
	app.Post("/api/sites", sh.Create)
	app.Put("/api/sites/:site_id", sh.Update)

	rh := &reporthandler.Handlers{Service: &reportsvc.Service{Store: leases}}
	app.Get("/api/reports", rh.Run)
	app.Get("/api/reports/export", rh.Export)
	app.Get("/api/reports/types", rh.Types)

	ih := &importhandler.Handlers{Service: &importsvc.Service{Store: leases}, MaxBytes: cfg.ImportMaxBytes}
	app.Post("/api/upload", ih.Upload)

	return app, db, rdb, nil
}
