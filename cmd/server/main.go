package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"velarias-backend/internal/config"
	"velarias-backend/internal/handlers"
	"velarias-backend/internal/metrics"
	"velarias-backend/internal/middleware"
	"velarias-backend/internal/models"
	"velarias-backend/internal/repository"
	"velarias-backend/internal/services"
	"velarias-backend/internal/storage"
)

func main() {
	cfg := InitConfig()
	InitLogger(cfg)
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)
	store := InitTransformStore(cfg)

	collector := metrics.NewCollector()
	projectRepo := repository.NewProjectRepository(db)
	projectService := services.NewProjectService(projectRepo)
	ingestService := services.NewIngestService(store, collector)

	projectHandler := handlers.NewProjectHandler(projectService)
	uploadHandler := handlers.NewUploadHandler(ingestService, cfg.IsProduction())
	authHandler := handlers.NewAuthHandler(cfg)
	metaHandler := handlers.NewMetaHandler(cfg, db)

	// Image batches can take minutes; keep the server timeouts generous so
	// large legitimate uploads are not truncated.
	app := fiber.New(fiber.Config{
		BodyLimit:    256 << 20,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  5*time.Minute + 10*time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
	}))
	app.Use(compress.New())
	app.Use(middleware.RequestLogger())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", metaHandler.Health)

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/config", metaHandler.GetConfig)
	api.Get("/projects", projectHandler.ListProjects)

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"error":   "too many login attempts, try again in 15 minutes",
			})
		},
	})
	api.Post("/login", loginLimiter, authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	auth := middleware.RequireAdmin(cfg.JWTSecret)
	api.Post("/projects", auth, projectHandler.CreateProject)
	api.Put("/projects/:id", auth, projectHandler.UpdateProject)
	api.Delete("/projects/:id", auth, projectHandler.DeleteProject)
	api.Post("/upload", auth, uploadHandler.UploadImages)

	// Processed files are content-addressed by upload timestamp, so they
	// can be cached effectively forever.
	if cfg.StorageMode == config.StorageModeLocal {
		app.Static(storage.PublicImagePrefix, cfg.UploadsDir, fiber.Static{
			MaxAge: int((365 * 24 * time.Hour).Seconds()),
		})
	}

	log.Info().
		Str("port", cfg.AppPort).
		Str("environment", cfg.Environment).
		Str("storage", cfg.StorageMode).
		Msg("server listening")
	log.Fatal().Err(app.Listen(":" + cfg.AppPort)).Msg("server stopped")
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}
	return cfg
}

func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	if err := db.AutoMigrate(&models.Project{}); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
}

func InitTransformStore(cfg *config.Config) storage.TransformStore {
	if cfg.StorageMode == config.StorageModeRemote {
		minioClient, err := storage.NewMinioClient(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("MinIO client initialization failed")
		}
		return storage.NewRemoteTransformStore(minioClient, cfg.MinioBucket, cfg.TransformBaseURL)
	}
	return storage.NewLocalTransformStore(cfg.UploadsDir)
}
