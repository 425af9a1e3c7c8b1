package main

import (
	"context"
	"errors"
	"fooddonation-backend/controller"
	"fooddonation-backend/dal"
	_ "fooddonation-backend/docs"
	"fooddonation-backend/middelware"
	"fooddonation-backend/models"
	"fooddonation-backend/repository"
	"fooddonation-backend/services"
	"fooddonation-backend/utils"
	"fooddonation-backend/utils/export"
	"fooddonation-backend/utils/logger"
	"fooddonation-backend/utils/mailing"
	"fooddonation-backend/utils/storage"
	"fooddonation-backend/worker"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

// @title Food Donation Backend API
// @version 1.0
// @description Dashboard backend for tracking food donations, inventory, partner NGOs and their communications.
// @description Reports cover dashboard KPIs, monthly trends, category distribution, NGO performance and expiry alerts.

// @contact.name API Support
// @contact.email support@example.org

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
func main() {
	Init()

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.WithFields(map[string]interface{}{
		"app":     config.AppName,
		"version": config.AppVersion,
		"env":     config.AppEnv,
		"driver":  config.StoreDriver,
	}).Info("Starting service")

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := dal.NewDatabaseClient(ctx, config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create database client: %v", err)
	}

	deps := services.Dependencies{ReportWriter: export.NewExcelWriter()}
	if mailer := mailing.NewSMTPMailer(config); mailer != nil {
		deps.Mailer = mailer
	} else {
		appLogger.Info("SMTP not configured, email delivery disabled")
	}
	objectStore, err := storage.NewS3Store(ctx, config)
	if err != nil {
		appLogger.Fatalf("Failed to create object store: %v", err)
	}
	if objectStore != nil {
		deps.ObjectStore = objectStore
	} else {
		appLogger.Info("S3 bucket not configured, attachments disabled")
	}

	repo := repository.NewRepository(db, config, appLogger)
	svc := services.NewService(repo, deps, appLogger, config)

	var redisClient *redis.Client
	if config.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: config.RedisAddr, Password: config.RedisPassword})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			appLogger.Warnf("Redis at %s not reachable yet: %v", config.RedisAddr, err)
		}
	}

	r := gin.New()
	logging := middelware.NewLoggingMiddleware(appLogger)
	r.Use(logging.Recovery(), logging.StructuredLogger(), middelware.NewCORSMiddleware(config).CORS())
	if redisClient != nil && config.RateLimitRequestsPerMinute > 0 {
		limiter := middelware.NewRateLimitMiddleware(redisClient, config.RedisPrefix, config.RateLimitRequestsPerMinute, appLogger)
		r.Use(limiter.Limit())
	}
	controller.NewController(svc, appLogger).RegisterRoutes(r, config)

	workerDeps := worker.Dependencies{
		Alerts: svc.GetReportService(),
		Mailer: deps.Mailer,
		Redis:  redisClient,
	}
	if admin, ok := db.(dal.TableAdmin); ok && config.StoreDriver == models.DriverDynamoDB {
		workerDeps.TableAdmin = admin
	}
	bgWorker, err := worker.NewWorker(config, nil, workerDeps, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create worker: %v", err)
	}
	if err := bgWorker.Start(); err != nil {
		appLogger.Fatalf("Failed to start worker: %v", err)
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(config.AppHost, config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Infof("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Server shutdown failed: %v", err)
	}
	bgWorker.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := db.Close(shutdownCtx); err != nil {
		appLogger.Errorf("Failed to close database client: %v", err)
	}
}
