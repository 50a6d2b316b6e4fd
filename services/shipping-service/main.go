package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
	apperrors "github.com/vendora-platform/backend/services/common/errors"
	"github.com/vendora-platform/backend/services/common/logger"
	"github.com/vendora-platform/backend/services/common/middleware"
	"github.com/vendora-platform/backend/services/shipping-service/providers"
	"github.com/vendora-platform/backend/services/shipping-service/routes"
	"github.com/vendora-platform/backend/services/shipping-service/services"
)

func main() {
	cfg := LoadConfig()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	var provider providers.RateProvider
	if cfg.StallionAPIKey != "" {
		provider = providers.NewStallionProvider(cfg.StallionAPIKey, cfg.StallionBaseURL)
	} else {
		logger.Log.Warn("STALLION_API_KEY not set; serving fallback rates only")
	}

	var fallback *providers.FallbackEstimator
	if cfg.FallbackEnabled {
		fallback = providers.NewFallbackEstimator()
	}
	if provider == nil && fallback == nil {
		log.Fatal("[ShippingService] no rate source configured: set STALLION_API_KEY or enable the fallback estimator")
	}

	svc := services.NewShippingService(provider, fallback, logger.Log)

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
	router.Use(middleware.MetricsMiddleware(metricsClient, "shipping-service"))
	router.Use(apperrors.ErrorMiddleware())

	routes.RegisterShippingRoutes(router, svc)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("[ShippingService] running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[ShippingService] server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[ShippingService] shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[ShippingService] shutdown error: %v", err)
	}
}
