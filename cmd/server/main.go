package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/wicaksana/report-tracking/internal/config"
	"github.com/wicaksana/report-tracking/internal/database"
	"github.com/wicaksana/report-tracking/internal/handler"
	"github.com/wicaksana/report-tracking/internal/middleware"
	"github.com/wicaksana/report-tracking/internal/queue"
	"github.com/wicaksana/report-tracking/internal/repository"
	"github.com/wicaksana/report-tracking/internal/router"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional. Without it the public routes still serve, just
	// uncached and unthrottled.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	reports := repository.NewReportRepo(db)
	timeline := repository.NewTimelineRepo(db)
	assignments := repository.NewAssignmentRepo(db)
	documents := repository.NewDocumentRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	tracking := handler.NewTrackingHandler(reports, timeline)
	catalogs := handler.NewCatalogHandler()
	tu := handler.NewTUHandler(users, reports, timeline, documents)
	coordinator := handler.NewCoordinatorHandler(users, reports, timeline, assignments)
	staff := handler.NewStaffHandler(users, reports, timeline, assignments)
	admin := handler.NewAdminHandler(cfg, users, tokens)

	e := echo.New()
	e.HideBanner = true

	var publicMW []echo.MiddlewareFunc
	if rdb != nil {
		publicMW = append(publicMW,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		)
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, tracking, catalogs, cfg.JWTSecret, publicMW...)
	router.RegisterAdmin(e, admin, cfg.JWTSecret)
	router.RegisterTU(e, tu, cfg.JWTSecret)
	router.RegisterCoordinator(e, coordinator, cfg.JWTSecret)
	router.RegisterStaff(e, staff, cfg.JWTSecret)

	// The consumer writes status change events to the workflow log. It
	// reconnects on its own; a missing broker only disables the log.
	go func() {
		if err := queue.StartStatusConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
