// @title OrgPulse API
// @version 1.0
// @description Survey assessment API: excellence questionnaire tracking and culture instrument aggregation.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orgpulse/internal/adapter"
	"orgpulse/internal/cache"
	"orgpulse/internal/config"
	"orgpulse/internal/database"
	"orgpulse/internal/handler"
	"orgpulse/internal/logger"
	"orgpulse/internal/middleware"
	"orgpulse/internal/repository"
	"orgpulse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	questionRepository := repository.NewSQLXQuestionRepository(db)
	answerRepository := repository.NewSQLXAnswerRepository(db)
	progressRepository := repository.NewSQLXProgressRepository(db)
	submissionRepository := repository.NewSQLXSubmissionRepository(db)
	surveyRepository := repository.NewSQLXSurveyRepository(db)
	cultureResponseRepository := repository.NewSQLXCultureResponseRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Redis is optional: without it the aggregate report is recomputed on
	// every read.
	var invalidator service.ReportInvalidator
	aggregationService := service.NewAggregationService(surveyRepository, cultureResponseRepository)
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
		aggregationService = service.NewCachedAggregationService(aggregationService, cacheAdapter, cfg.Cache.AggregateTTL)
		if inv, ok := aggregationService.(service.ReportInvalidator); ok {
			invalidator = inv
		}
		appLogger.Info("Aggregate report cache initialized", zap.Duration("ttl", cfg.Cache.AggregateTTL))
	} else {
		appLogger.Warn("Redis address not configured, aggregate report caching disabled")
	}

	// Initialize services
	completionService := service.NewCompletionService(answerRepository, progressRepository, questionRepository)
	submissionService := service.NewSubmissionService(questionRepository, answerRepository, progressRepository, submissionRepository, txManager)
	cultureResponseService := service.NewCultureResponseService(surveyRepository, cultureResponseRepository, invalidator)

	// Initialize handlers
	assessmentHandler := handler.NewAssessmentHandler(completionService, submissionService)
	cultureHandler := handler.NewCultureHandler(cultureResponseService, aggregationService)
	validationMiddleware := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Excellence assessment routes
	apiGroup.Post("/answers", assessmentHandler.SaveAnswer)
	apiGroup.Get("/progress", validationMiddleware.ValidateParticipantQuery(), assessmentHandler.GetProgress)
	apiGroup.Post("/progress", assessmentHandler.UpdateProgress)
	apiGroup.Post("/submit", assessmentHandler.Submit)

	// Culture instrument routes
	apiGroup.Post("/responses", cultureHandler.SubmitResponse)
	apiGroup.Get("/aggregates", validationMiddleware.ValidateSurveyIDQuery(), cultureHandler.GetAggregates)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
