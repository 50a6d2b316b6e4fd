package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vendora-platform/backend/services/shipping-service/controllers"
	"github.com/vendora-platform/backend/services/shipping-service/services"
)

func RegisterShippingRoutes(r *gin.Engine, svc services.ShippingService) {
	controller := controllers.NewShippingController(svc)

	api := r.Group("/api/shipping")
	{
		api.POST("/rates", controller.GetRates)
	}
}
