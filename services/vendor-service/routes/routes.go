package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vendora-platform/backend/services/vendor-service/controllers"
	"github.com/vendora-platform/backend/services/vendor-service/middleware"
)

func RegisterWithdrawalRoutes(r *gin.Engine, wc *controllers.WithdrawalController) {
	vendor := r.Group("/withdrawals", middleware.VendorAuth())
	{
		vendor.POST("", wc.CreateWithdrawal)
		vendor.GET("", wc.ListWithdrawals)
	}

	admin := r.Group("/admin/withdrawals", middleware.AdminAuth())
	{
		admin.GET("", wc.AdminListWithdrawals)
		admin.POST("/:id/approve", wc.ApproveWithdrawal)
		admin.POST("/:id/reject", wc.RejectWithdrawal)
		admin.POST("/:id/complete", wc.CompleteWithdrawal)
	}
}
