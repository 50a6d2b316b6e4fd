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
	"github.com/vendora-platform/backend/services/payment-service/config"
	"github.com/vendora-platform/backend/services/payment-service/controllers"
	"github.com/vendora-platform/backend/services/payment-service/database"
	"github.com/vendora-platform/backend/services/payment-service/models"
	"github.com/vendora-platform/backend/services/payment-service/repository"
	"github.com/vendora-platform/backend/services/payment-service/routes"
	"github.com/vendora-platform/backend/services/payment-service/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[PaymentService] failed to load config: %v", err)
	}

	ctx := context.Background()
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(ctx)

	var logSink io.Writer
	if awsErr == nil {
		if cw, err := aws_pkg.NewCloudWatchWriter(ctx, awsCfg, "payment-service"); err == nil && cw != nil {
			logSink = cw
		}
	}
	logger.InitializeWithWriter(cfg.Env, logSink)
	defer logger.Log.Sync()

	if services.IsOrganizationKey(cfg.StripeSecretKey) && cfg.StripeAccountID == "" {
		// Requests will fail closed rather than guess a target account.
		logger.Log.Warn("organization-scoped Stripe key configured without STRIPE_ACCOUNT_ID; intent creation will be rejected")
	}

	db, err := database.Connect(
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB,
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresSSLMode, cfg.PostgresTimeZone,
	)
	if err != nil {
		log.Fatalf("[PaymentService] %v", err)
	}
	if err := db.AutoMigrate(&models.Payment{}); err != nil {
		log.Fatalf("[PaymentService] failed to migrate payment model: %v", err)
	}

	var metricsClient *aws_pkg.MetricsClient
	if awsErr == nil {
		metricsClient = aws_pkg.NewMetricsClient(awsCfg)
	}

	var snsClient aws_pkg.SNSPublisher
	if awsErr == nil && cfg.PaymentSNSTopicARN != "" {
		snsClient = aws_pkg.NewSNSClient(awsCfg)
	} else {
		logger.Log.Warn("SNS publishing disabled: no AWS config or topic ARN")
	}

	gateway := services.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeAccountID, cfg.StripeWebhookSecret)

	pc := &controllers.PaymentController{
		Gateway:  gateway,
		Repo:     repository.NewGormPaymentRepository(db),
		SNS:      snsClient,
		TopicArn: cfg.PaymentSNSTopicARN,
		Currency: cfg.Currency,
		Logger:   logger.Log,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware(metricsClient, "payment-service"))
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterPaymentRoutes(r, pc)

	log.Printf("[PaymentService] running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[PaymentService] server failed: %v", err)
	}
}
