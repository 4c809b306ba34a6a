package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"ops-dashboard/internal/config"
	"ops-dashboard/internal/feed"
	"ops-dashboard/internal/handler"
	"ops-dashboard/internal/metrics"
	"ops-dashboard/internal/middleware"
	"ops-dashboard/internal/pkg/i18n"
	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/service"
	"ops-dashboard/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg)
	feed.SetLogger(logger.WithField("component", "timestamp"))

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		log.Warnf("Failed to load translations: %v (labels stay in English)", err)
	}

	if err := config.RunMigrations(cfg); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Warnf("Failed to connect to Redis: %v (feed cache disabled)", err)
		redis = nil
	} else {
		defer redis.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Warnf("Failed to connect to MinIO: %v (feed export will not work)", err)
		minioClient = nil
	}
	presignClient, err := config.NewMinIOPresigner(cfg)
	if err != nil {
		log.Warnf("Failed to build MinIO presigner: %v (feed export will not work)", err)
		presignClient = nil
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, redis, minioClient, presignClient, m, cfg)
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}

	loc, _ := cfg.Location()
	handlers := handler.NewHandlers(services, loc)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(middleware.RequestLogger(m))

	setupRoutes(app, handlers, services.Auth)

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	protected := v1.Group("", middleware.AuthRequired(authService))

	feedRoutes := protected.Group("/feed")
	feedRoutes.Get("/", h.Feed.Combined)
	feedRoutes.Get("/activities", h.Feed.Activities)
	feedRoutes.Get("/announcements", h.Feed.Announcements)
	feedRoutes.Get("/announcements/count", h.Feed.AnnouncementCount)
	feedRoutes.Post("/export", middleware.RequireElevated(), h.Feed.Export)

	projects := protected.Group("/projects")
	projects.Get("/", h.Project.List)
	projects.Get("/:projectId/team", h.Project.Team)

	protected.Get("/users/:userId/projects", h.Project.ProfileProjects)
	protected.Get("/dashboard", h.Dashboard.GetSummary)
	protected.Get("/timestamps/normalize", h.Timestamp.Normalize)
}
