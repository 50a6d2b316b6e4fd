package main

import (
	"context"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	aws_pkg "github.com/vendora-platform/backend/pkg/aws"
	apperrors "github.com/vendora-platform/backend/services/common/errors"
	"github.com/vendora-platform/backend/services/common/logger"
	"github.com/vendora-platform/backend/services/common/middleware"
	"github.com/vendora-platform/backend/services/vendor-service/config"
	"github.com/vendora-platform/backend/services/vendor-service/controllers"
	"github.com/vendora-platform/backend/services/vendor-service/database"
	"github.com/vendora-platform/backend/services/vendor-service/models"
	"github.com/vendora-platform/backend/services/vendor-service/repository"
	"github.com/vendora-platform/backend/services/vendor-service/routes"
	"github.com/vendora-platform/backend/services/vendor-service/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[VendorService] failed to load config: %v", err)
	}

	ctx := context.Background()
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx)

	var logSink io.Writer
	if awsErr == nil {
		if cw, err := aws_pkg.NewCloudWatchWriter(ctx, awsCfg, "vendor-service"); err == nil && cw != nil {
			logSink = cw
		}
	}
	logger.InitializeWithWriter(cfg.Env, logSink)
	defer logger.Log.Sync()

	db, err := database.Connect(
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB,
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresSSLMode, cfg.PostgresTimeZone,
	)
	if err != nil {
		log.Fatalf("[VendorService] %v", err)
	}
	if err := db.AutoMigrate(&models.Withdrawal{}); err != nil {
		log.Fatalf("[VendorService] failed to migrate withdrawal model: %v", err)
	}

	var metricsClient *aws_pkg.MetricsClient
	if awsErr == nil {
		metricsClient = aws_pkg.NewMetricsClient(awsCfg)
	}

	var snsClient aws_pkg.SNSPublisher
	if awsErr == nil && cfg.WithdrawalSNSTopicARN != "" {
		snsClient = aws_pkg.NewSNSClient(awsCfg)
	} else {
		logger.Log.Warn("SNS publishing disabled: no AWS config or topic ARN")
	}

	svc := services.NewWithdrawalService(
		repository.NewGormWithdrawalRepository(db),
		snsClient, cfg.WithdrawalSNSTopicARN, cfg.Currency, logger.Log,
	)

	wc := &controllers.WithdrawalController{
		Service: svc,
		Logger:  logger.Log,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware(metricsClient, "vendor-service"))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterWithdrawalRoutes(r, wc)

	log.Printf("[VendorService] running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[VendorService] server failed: %v", err)
	}
}
