package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/vendor-service/middleware"
	"github.com/vendora-platform/backend/services/vendor-service/services"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type WithdrawalController struct {
	Service services.WithdrawalService
	Logger  *zap.Logger
}

// CreateWithdrawal handles POST /withdrawals.
func (wc *WithdrawalController) CreateWithdrawal(c *gin.Context) {
	vendorID, err := middleware.GetVendorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req services.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal request", "details": err.Error()})
		return
	}

	w, svcErr := wc.Service.Create(c.Request.Context(), vendorID, req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListWithdrawals handles GET /withdrawals for the requesting vendor.
func (wc *WithdrawalController) ListWithdrawals(c *gin.Context) {
	vendorID, err := middleware.GetVendorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pagination(c)
	ws, svcErr := wc.Service.ListForVendor(c.Request.Context(), vendorID, limit, offset)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": ws, "limit": limit, "offset": offset})
}

// AdminListWithdrawals handles GET /admin/withdrawals.
func (wc *WithdrawalController) AdminListWithdrawals(c *gin.Context) {
	limit, offset := pagination(c)
	ws, svcErr := wc.Service.ListByStatus(c.Request.Context(), c.Query("status"), limit, offset)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": ws, "limit": limit, "offset": offset})
}

// ApproveWithdrawal handles POST /admin/withdrawals/:id/approve.
func (wc *WithdrawalController) ApproveWithdrawal(c *gin.Context) {
	id, ok := withdrawalID(c)
	if !ok {
		return
	}
	w, svcErr := wc.Service.Approve(c.Request.Context(), id, middleware.GetAdminID(c))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, w)
}

// RejectWithdrawal handles POST /admin/withdrawals/:id/reject.
func (wc *WithdrawalController) RejectWithdrawal(c *gin.Context) {
	id, ok := withdrawalID(c)
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	// Tolerate an empty body; the service enforces the reason rule.
	_ = c.ShouldBindJSON(&req)

	w, svcErr := wc.Service.Reject(c.Request.Context(), id, middleware.GetAdminID(c), req.Reason)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, w)
}

// CompleteWithdrawal handles POST /admin/withdrawals/:id/complete.
func (wc *WithdrawalController) CompleteWithdrawal(c *gin.Context) {
	id, ok := withdrawalID(c)
	if !ok {
		return
	}
	w, svcErr := wc.Service.Complete(c.Request.Context(), id, middleware.GetAdminID(c))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, w)
}

func withdrawalID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid withdrawal id"})
		return uuid.Nil, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
