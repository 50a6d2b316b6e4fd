package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
	"github.com/vendora-platform/backend/services/cart-service/config"
	"github.com/vendora-platform/backend/services/cart-service/database"
	"github.com/vendora-platform/backend/services/cart-service/kafka"
	"github.com/vendora-platform/backend/services/cart-service/routes"
	apperrors "github.com/vendora-platform/backend/services/common/errors"
	"github.com/vendora-platform/backend/services/common/logger"
	"github.com/vendora-platform/backend/services/common/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CartService] failed to load config: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	mongoClient, db, err := database.Connect(cfg.MongoURL, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("[CartService] %v", err)
	}
	defer database.Disconnect(mongoClient)

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("[CartService] %v", err)
	}

	producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	defer producer.Close()

	var metricsClient *aws_pkg.MetricsClient
	if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
		metricsClient = aws_pkg.NewMetricsClient(awsCfg)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.MetricsMiddleware(metricsClient, "cart-service"))
	router.Use(apperrors.ErrorMiddleware())

	routes.RegisterCartRoutes(router, db, redisClient, producer, cfg, logger.Log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[CartService] running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[CartService] server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[CartService] shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[CartService] shutdown error: %v", err)
	}
}
