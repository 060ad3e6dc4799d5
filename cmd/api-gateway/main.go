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
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/tutorboard-api/api/swagger"
	"github.com/noah-isme/tutorboard-api/internal/handler"
	"github.com/noah-isme/tutorboard-api/internal/middleware"
	"github.com/noah-isme/tutorboard-api/internal/repository"
	"github.com/noah-isme/tutorboard-api/internal/service"
	"github.com/noah-isme/tutorboard-api/pkg/cache"
	"github.com/noah-isme/tutorboard-api/pkg/config"
	"github.com/noah-isme/tutorboard-api/pkg/database"
	"github.com/noah-isme/tutorboard-api/pkg/export"
	"github.com/noah-isme/tutorboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/tutorboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/tutorboard-api/pkg/middleware/requestid"
)

// @title Tutorboard API
// @version 1.0.0
// @description Parent-facing tutor dashboard: children, timelines, test trends, class records and private comments
// @BasePath /api
// @schemes http https
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

	if cfg.JWT.Secret == "" {
		logr.Fatal("JWT_SECRET is required to verify hub tokens")
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	checks := map[string]handler.Pinger{"postgres": db}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	var redisClient redis.Cmdable
	if cfg.Tutor.IdentityCacheEnabled {
		client, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("identity cache disabled: redis unavailable", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			redisClient = client
			checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
		}
	}
	cacheSvc := service.NewCacheService(repository.NewCacheRepository(redisClient), metrics, cfg.Tutor.IdentityCacheTTL, logr, redisClient != nil)

	userRepo := repository.NewUserRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	testRepo := repository.NewTestRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	location := cfg.Location()
	parents := service.NewParentResolver(service.ParentResolverParams{
		Users:    userRepo,
		Cache:    cacheSvc,
		CacheTTL: cfg.Tutor.IdentityCacheTTL,
		Metrics:  metrics,
		Logger:   logr,
	})
	guard := service.NewChildAccessGuard(enrollmentRepo, metrics, logr)

	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Parents:     parents,
		Enrollments: enrollmentRepo,
		Attendance:  attendanceRepo,
		Assignments: assignmentRepo,
		Metrics:     metrics,
		Logger:      logr,
		Location:    location,
	})
	timelineSvc := service.NewTimelineService(service.TimelineServiceParams{
		Parents:     parents,
		Guard:       guard,
		Enrollments: enrollmentRepo,
		Lessons:     lessonRepo,
		Tests:       testRepo,
		Assignments: assignmentRepo,
		Metrics:     metrics,
		Logger:      logr,
		Limit:       cfg.Tutor.TimelineLimit,
	})
	trendSvc := service.NewTestTrendService(service.TestTrendServiceParams{
		Parents: parents,
		Guard:   guard,
		Tests:   testRepo,
		Metrics: metrics,
		Logger:  logr,
		Limit:   cfg.Tutor.TrendLimit,
	})
	classRecordSvc := service.NewClassRecordService(service.ClassRecordServiceParams{
		Parents:     parents,
		Guard:       guard,
		Enrollments: enrollmentRepo,
		Lessons:     lessonRepo,
		Assignments: assignmentRepo,
		Tests:       testRepo,
		Attendance:  attendanceRepo,
		Metrics:     metrics,
		Logger:      logr,
		Location:    location,
	})
	commentSvc := service.NewCommentService(service.CommentServiceParams{
		Parents:   parents,
		Users:     userRepo,
		Comments:  commentRepo,
		Validator: validator.New(),
		Metrics:   metrics,
		Logger:    logr,
	})

	childParams := handler.ChildHandlerParams{
		Timeline: timelineSvc,
		Trend:    trendSvc,
		Records:  classRecordSvc,
	}
	if cfg.Exports.Enabled {
		childParams.Exporter = service.NewClassRecordExportService(classRecordSvc, location, logr,
			export.NewCSVExporter(), export.NewPDFExporter())
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))

	handler.NewMetricsHandler(metrics, checks).RegisterOps(r, metrics != nil)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.TutorRoutes{
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Children:  handler.NewChildHandler(childParams),
		Comments:  handler.NewCommentHandler(commentSvc),
	}.Register(r.Group(cfg.APIPrefix), middleware.HubIdentity(service.NewTokenVerifier(cfg.JWT)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
