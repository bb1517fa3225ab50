package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LARRYDMO/Job-portal-website/config"
	v1 "github.com/LARRYDMO/Job-portal-website/internal/delivery/http/v1"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/internal/messaging"
	"github.com/LARRYDMO/Job-portal-website/internal/repository/gormstore"
	"github.com/LARRYDMO/Job-portal-website/internal/storage"
	"github.com/LARRYDMO/Job-portal-website/internal/usecase"
	"github.com/LARRYDMO/Job-portal-website/pkg/auth"
	"github.com/LARRYDMO/Job-portal-website/pkg/database"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"
	"github.com/LARRYDMO/Job-portal-website/pkg/redis"
	"github.com/LARRYDMO/Job-portal-website/pkg/security"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// @title           Job Portal API
// @version         1.0
// @description     Job board backend: jobs, applications, screening questions, resumes and saved jobs.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	secLogger := security.InitSecurityLogger("jobportal-api", cfg.Environment)
	defer func() { _ = secLogger.Sync() }()
	logger.Log.Info("Starting job portal backend", "env", cfg.Environment, "port", cfg.Port, "db_driver", cfg.DBDriver, "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, secLogger); err != nil {
		logger.Log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Server exiting")
}

func run(ctx context.Context, cfg *config.Config, secLogger *security.SecurityLogger) error {
	// 3. Setup Database
	db, closeDB, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := gormstore.Migrate(db); err != nil {
		return err
	}
	if cfg.SeedSampleJobs {
		if err := gormstore.SeedSampleJobs(ctx, db); err != nil {
			return err
		}
	}

	// 4. Setup Storage
	files, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	// 5. Redis (optional)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer func() { _ = redis.Close() }()
		}
	}

	// 6. Events (optional)
	var events domain.EventPublisher = messaging.Noop{}
	if cfg.RabbitMQURL != "" {
		rabbit, err := messaging.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			logger.Log.Warn("RabbitMQ unavailable, application events disabled", "error", err)
		} else {
			defer func() { _ = rabbit.Close() }()
			events = rabbit
		}
	}

	// 7. Setup Repositories
	userRepo := gormstore.NewUserRepository(db)
	jobRepo := gormstore.NewJobRepository(db)
	applicationRepo := gormstore.NewApplicationRepository(db)
	questionRepo := gormstore.NewQuestionRepository(db)
	answerRepo := gormstore.NewAnswerRepository(db)
	resumeRepo := gormstore.NewResumeRepository(db)
	savedJobRepo := gormstore.NewSavedJobRepository(db)

	// 8. Setup UseCases
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginWindowMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	}, secLogger)

	questionUC, err := usecase.NewQuestionUsecase(questionRepo, jobRepo)
	if err != nil {
		return err
	}

	healthChecks := []usecase.HealthCheck{{Name: "database", Check: pingDatabase(db)}}
	if redis.Enabled() {
		healthChecks = append(healthChecks, usecase.HealthCheck{Name: "redis", Check: redis.HealthCheck})
	}

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         usecase.NewAuthUsecase(userRepo, tokens, loginTracker, secLogger),
		JobUC:          usecase.NewJobUsecase(jobRepo),
		ApplicationUC:  usecase.NewApplicationUsecase(applicationRepo, jobRepo, questionRepo, answerRepo, files, events, secLogger),
		QuestionUC:     questionUC,
		ResumeUC:       usecase.NewResumeUsecase(resumeRepo, files),
		SavedJobUC:     usecase.NewSavedJobUsecase(savedJobRepo, jobRepo),
		HealthUC:       usecase.NewHealthUsecase(healthChecks...),
		Tokens:         tokens,
		Storage:        files,
		SecurityLogger: secLogger,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("Listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, func(), error) {
	if cfg.DBDriver == "postgres" {
		db, pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, cfg.DBLogLevel)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
			pool.Close()
		}, nil
	}

	db, err := database.NewSQLiteConnection(cfg.SQLitePath, cfg.DBLogLevel)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

func openStorage(ctx context.Context, cfg *config.Config) (domain.FileStorage, error) {
	maxSize := int64(cfg.MaxUploadMB) << 20
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Endpoint:        cfg.S3Endpoint,
			Prefix:          cfg.S3Prefix,
			MaxSize:         maxSize,
		})
	}
	return storage.NewLocalStorage(cfg.UploadDir, maxSize)
}

func pingDatabase(db *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
