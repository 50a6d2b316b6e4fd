package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vendora-platform/backend/services/payment-service/controllers"
)

func RegisterPaymentRoutes(r *gin.Engine, pc *controllers.PaymentController) {
	r.POST("/create-payment-intent", pc.CreatePaymentIntent)
	r.POST("/webhook", pc.StripeWebhook)
	r.GET("/health", pc.Health)
	r.GET("/account-info", pc.AccountInfo)
}
