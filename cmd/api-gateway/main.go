package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/acadia-planner-api/api/swagger"
	"github.com/noah-isme/acadia-planner-api/internal/handler"
	"github.com/noah-isme/acadia-planner-api/internal/middleware"
	"github.com/noah-isme/acadia-planner-api/internal/repository"
	"github.com/noah-isme/acadia-planner-api/internal/service"
	"github.com/noah-isme/acadia-planner-api/pkg/cache"
	"github.com/noah-isme/acadia-planner-api/pkg/config"
	"github.com/noah-isme/acadia-planner-api/pkg/database"
	"github.com/noah-isme/acadia-planner-api/pkg/jobs"
	"github.com/noah-isme/acadia-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/acadia-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/acadia-planner-api/pkg/middleware/requestid"
	"github.com/noah-isme/acadia-planner-api/pkg/storage"
)

// @title Acadia Planner API
// @version 1.0.0
// @description Personal study planning service: subjects, tasks, availability and weekly schedule generation.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Planner.ScheduleCacheTTL, logr, true)

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	blockRepo := repository.NewScheduleBlockRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "acadia-planner-api",
	})
	subjectSvc := service.NewSubjectService(subjectRepo, taskRepo, validate, logr)
	taskSvc := service.NewTaskService(taskRepo, subjectRepo, validate, logr)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, validate, logr)
	preferenceSvc := service.NewPreferenceService(preferenceRepo, validate, logr)
	plannerSvc := service.NewPlannerService(subjectRepo, taskRepo, availabilityRepo, preferenceRepo, blockRepo, cacheSvc, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		exportStorage, err := storage.NewLocalStorage(cfg.Exports.Dir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signingSecret := cfg.Exports.SigningSecret
		if signingSecret == "" {
			signingSecret = cfg.JWT.Secret
		}
		signer := storage.NewSignedURLSigner(signingSecret, cfg.Exports.ResultTTL)
		exportSvc = service.NewExportService(plannerSvc, exportStorage, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.ResultTTL,
		}, logr, nil, nil)

		cleanupQueue := jobs.NewQueue("export-cleanup", func(ctx context.Context, job jobs.Job) error {
			removed, err := exportSvc.Cleanup(0)
			if err != nil {
				return err
			}
			if len(removed) > 0 {
				logr.Sugar().Infow("expired exports removed", "count", len(removed))
			}
			return nil
		}, jobs.QueueConfig{Workers: 1, Logger: logr})
		cleanupQueue.Start(context.Background())
		defer cleanupQueue.Stop()

		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				if err := cleanupQueue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "cleanup"}); err != nil {
					return
				}
			}
		}()
	}

	authHandler := handler.NewAuthHandler(authSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	preferenceHandler := handler.NewPreferenceHandler(preferenceSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	if exportSvc != nil {
		// Download links carry their own signed token, no session required.
		api.GET("/planner/export/:token", plannerHandler.Download)
	}

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.Use(middleware.WithResponseMeta())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/auth/change-password", authHandler.ChangePassword)

	protected.GET("/subjects", subjectHandler.List)
	protected.POST("/subjects", subjectHandler.Create)
	protected.GET("/subjects/:id", subjectHandler.Get)
	protected.PUT("/subjects/:id", subjectHandler.Update)
	protected.DELETE("/subjects/:id", subjectHandler.Delete)

	protected.GET("/tasks", taskHandler.List)
	protected.POST("/tasks", taskHandler.Create)
	protected.GET("/tasks/progress", taskHandler.Progress)
	protected.GET("/tasks/:id", taskHandler.Get)
	protected.PUT("/tasks/:id", taskHandler.Update)
	protected.POST("/tasks/:id/complete", taskHandler.Complete)
	protected.DELETE("/tasks/:id", taskHandler.Delete)

	protected.GET("/availability", availabilityHandler.List)
	protected.PUT("/availability", availabilityHandler.Replace)

	protected.GET("/preferences", preferenceHandler.Get)
	protected.PUT("/preferences", preferenceHandler.Update)

	protected.POST("/planner/generate", plannerHandler.Generate)
	protected.GET("/planner/schedule", plannerHandler.Schedule)
	if exportSvc != nil {
		protected.POST("/planner/export", plannerHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
