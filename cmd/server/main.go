package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tedstrazimiri/droneclear/internal/config"
	"github.com/tedstrazimiri/droneclear/internal/handler"
	"github.com/tedstrazimiri/droneclear/internal/middleware"
	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"github.com/tedstrazimiri/droneclear/internal/repository"
	"github.com/tedstrazimiri/droneclear/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting droneclear catalogue service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Category{},
		&entity.Component{},
		&entity.DroneModel{},
		&entity.BuildGuide{},
		&entity.BuildGuideStep{},
		&entity.BuildSession{},
		&entity.StepPhoto{},
	); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = initRedis(cfg.Redis)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, db, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// The restart endpoint funnels into the same quit channel as SIGTERM;
	// the process supervisor brings the server back up.
	quit := make(chan os.Signal, 1)
	services.Maintenance.OnRestart(func() {
		quit <- syscall.SIGTERM
	})

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, db *gorm.DB, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")

	v1.GET("/categories", h.Catalogue.ListCategories)
	v1.GET("/components", h.Catalogue.ListComponents)
	v1.GET("/components/:pid", h.Catalogue.GetComponent)
	v1.GET("/drone-models", h.Catalogue.ListModels)
	v1.GET("/drone-models/:pid", h.Catalogue.GetModel)
	v1.GET("/schema", h.Schema.Get)
	v1.GET("/catalogue/export", h.Catalogue.Export)
	v1.GET("/build-guides", h.Guide.List)
	v1.GET("/build-guides/:pid", h.Guide.Get)
	v1.GET("/build-sessions", h.Session.List)
	v1.GET("/build-sessions/:sn", h.Session.Get)
	v1.GET("/build-sessions/:sn/photos", h.Session.ListPhotos)

	// Mutations sit behind JWT auth only when a secret is configured
	mutating := v1.Group("")
	if cfg.Auth.JWTSecret != "" {
		mutating.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
	}

	mutating.POST("/components", h.Catalogue.CreateComponent)
	mutating.PUT("/components/:pid", h.Catalogue.UpdateComponent)
	mutating.DELETE("/components/:pid", h.Catalogue.DeleteComponent)
	mutating.POST("/drone-models", h.Catalogue.CreateModel)
	mutating.PUT("/drone-models/:pid", h.Catalogue.UpdateModel)
	mutating.DELETE("/drone-models/:pid", h.Catalogue.DeleteModel)

	mutating.POST("/schema", h.Schema.Replace)
	mutating.POST("/catalogue/import", h.Catalogue.Import)

	mutating.POST("/build-guides", h.Guide.Create)
	mutating.PUT("/build-guides/:pid", h.Guide.Update)
	mutating.DELETE("/build-guides/:pid", h.Guide.Delete)
	mutating.POST("/build-sessions", h.Session.Create)
	mutating.PUT("/build-sessions/:sn", h.Session.Update)
	mutating.DELETE("/build-sessions/:sn", h.Session.Delete)
	mutating.POST("/build-sessions/:sn/photos", h.Session.AddPhoto)

	mutating.POST("/maintenance/restart", h.Maintenance.Restart)
	mutating.POST("/maintenance/bug-report", h.Maintenance.BugReport)
}
