package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/berryseed/327project-group10/api/swagger"
	"github.com/berryseed/327project-group10/internal/dto"
	"github.com/berryseed/327project-group10/internal/handler"
	internalmiddleware "github.com/berryseed/327project-group10/internal/middleware"
	"github.com/berryseed/327project-group10/internal/repository"
	"github.com/berryseed/327project-group10/internal/service"
	"github.com/berryseed/327project-group10/pkg/cache"
	"github.com/berryseed/327project-group10/pkg/clock"
	"github.com/berryseed/327project-group10/pkg/config"
	"github.com/berryseed/327project-group10/pkg/database"
	"github.com/berryseed/327project-group10/pkg/jobs"
	"github.com/berryseed/327project-group10/pkg/logger"
	corsmiddleware "github.com/berryseed/327project-group10/pkg/middleware/cors"
	reqidmiddleware "github.com/berryseed/327project-group10/pkg/middleware/requestid"
)

// @title Study Planner API
// @version 1.0.0
// @description Availability, class schedule and study planning service
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}

	metricsSvc := service.NewMetricsService()
	readiness := map[string]handler.Pinger{"database": db}

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		redisRepo := repository.NewCacheRepository(redisClient, logr)
		defer redisRepo.Close() //nolint:errcheck
		readiness["cache"] = handler.PingerFunc(redisRepo.Ping)
		cacheRepo = redisRepo
	} else {
		cacheRepo = repository.NewMemoryCacheRepository()
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Scheduler.PlanCacheTTL, logr, true)

	blockRepo := repository.NewTimeBlockRepository(db)
	exceptionRepo := repository.NewExceptionRepository(db)
	classRepo := repository.NewClassScheduleRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	prefRepo := repository.NewUserPreferenceRepository(db)

	validate := dto.NewValidator()
	plannerSvc := service.NewPlannerService(
		blockRepo,
		exceptionRepo,
		classRepo,
		taskRepo,
		prefRepo,
		cacheSvc,
		metricsSvc,
		clock.NewReal(cfg.Scheduler.Location()),
		logr,
		service.PlannerConfig{Enabled: cfg.Scheduler.Enabled, CacheTTL: cfg.Scheduler.PlanCacheTTL},
	)

	warmQueue := jobs.NewQueue(service.JobTypePlanWarm, service.PlanWarmHandler(plannerSvc, logr), jobs.QueueConfig{
		Workers:    cfg.Scheduler.WarmWorkers,
		MaxRetries: cfg.Scheduler.WarmRetries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	warmQueue.Start(ctx)
	defer warmQueue.Stop()
	warmer := service.NewPlanWarmer(warmQueue, logr)

	availabilitySvc := service.NewAvailabilityService(blockRepo, exceptionRepo, classRepo, db, cacheSvc, warmer, validate, logr)
	preferenceSvc := service.NewPreferenceService(prefRepo, cacheSvc, warmer, validate, logr)
	exportSvc := service.NewExportService(cfg.Exports.Enabled, logr, nil, nil)
	authSvc := service.NewAuthService(logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
	})

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	classHandler := handler.NewClassScheduleHandler(availabilitySvc)
	preferenceHandler := handler.NewPreferenceHandler(preferenceSvc)
	schedulerHandler := handler.NewSchedulerHandler(plannerSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc, "/metrics"))
	r.Use(internalmiddleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(authSvc))

	availability := api.Group("/availability")
	availability.GET("/blocks", availabilityHandler.ListBlocks)
	availability.POST("/blocks", availabilityHandler.CreateBlock)
	availability.PUT("/blocks/:id", availabilityHandler.UpdateBlock)
	availability.DELETE("/blocks/:id", availabilityHandler.DeleteBlock)
	availability.GET("/exceptions", availabilityHandler.ListExceptions)
	availability.POST("/exceptions", availabilityHandler.CreateException)
	availability.DELETE("/exceptions/:id", availabilityHandler.DeleteException)

	classes := api.Group("/class-schedule")
	classes.GET("", classHandler.List)
	classes.POST("", classHandler.Create)
	classes.PUT("/:id", classHandler.Update)
	classes.DELETE("/:id", classHandler.Delete)

	api.GET("/user-preferences", preferenceHandler.Get)
	api.PUT("/user-preferences", preferenceHandler.Update)

	scheduler := api.Group("/scheduler")
	scheduler.POST("/validate", schedulerHandler.Validate)
	scheduler.POST("/time-slots", schedulerHandler.TimeSlots)
	scheduler.POST("/optimal-schedule", schedulerHandler.OptimalSchedule)
	scheduler.POST("/optimal-schedule/export", schedulerHandler.ExportSchedule)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "scheduler", cfg.Scheduler.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
