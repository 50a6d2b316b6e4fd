package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vendora-platform/backend/services/shipping-service/models"
	"github.com/vendora-platform/backend/services/shipping-service/services"
)

// ShippingController handles HTTP requests for shipping operations.
type ShippingController struct {
	shippingService services.ShippingService
}

func NewShippingController(svc services.ShippingService) *ShippingController {
	return &ShippingController{shippingService: svc}
}

// GetRates handles POST /api/shipping/rates
func (sc *ShippingController) GetRates(ctx *gin.Context) {
	var req models.RatesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := sc.shippingService.ResolveRates(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"success": false, "error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
