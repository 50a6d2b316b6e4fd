package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/cart-service/database"
	"github.com/vendora-platform/backend/services/cart-service/kafka"
	"github.com/vendora-platform/backend/services/cart-service/middleware"
	"github.com/vendora-platform/backend/services/cart-service/models"
	apperrors "github.com/vendora-platform/backend/services/common/errors"
	"github.com/vendora-platform/backend/services/common/logger"
)

type CartController struct {
	Repo      database.CartRepository
	Publisher kafka.CheckoutPublisher
}

func NewCartController(repo database.CartRepository, publisher kafka.CheckoutPublisher) *CartController {
	return &CartController{Repo: repo, Publisher: publisher}
}

// GetCart returns the owner's cart, or an empty cart when none exists.
func (cc *CartController) GetCart(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	cart, err := cc.Repo.GetCart(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error(c, "failed to get cart", err, zap.String("owner_id", ownerID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to get cart", err))
		return
	}
	if cart == nil {
		cart = &models.Cart{OwnerID: ownerID, Items: []models.CartLineItem{}}
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem adds a line item, merging the quantity when the same product
// and variation is already in the cart. The server recomputes subtotals;
// any client-sent subtotal is ignored.
func (cc *CartController) AddItem(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	var item models.CartLineItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "invalid payload", err))
		return
	}

	ctx := c.Request.Context()
	cart, err := cc.Repo.GetCart(ctx, ownerID)
	if err != nil {
		logger.Error(c, "failed to load cart", err, zap.String("owner_id", ownerID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to load cart", err))
		return
	}
	if cart == nil {
		cart = &models.Cart{OwnerID: ownerID, Items: []models.CartLineItem{}}
	}

	merged := false
	for i, existing := range cart.Items {
		if existing.ProductID == item.ProductID && existing.VariationSKU() == item.VariationSKU() {
			cart.Items[i].Quantity += item.Quantity
			cart.Items[i].Subtotal = cart.Items[i].Price * float64(cart.Items[i].Quantity)
			merged = true
			break
		}
	}
	if !merged {
		item.ItemID = uuid.NewString()
		item.Subtotal = item.Price * float64(item.Quantity)
		cart.Items = append(cart.Items, item)
	}

	if err := cc.Repo.SaveCart(ctx, cart); err != nil {
		logger.Error(c, "failed to save cart", err, zap.String("owner_id", ownerID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to save cart", err))
		return
	}

	c.JSON(http.StatusOK, cart)
}

// UpdateQuantity sets the quantity of a single line item.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)
	itemID := c.Param("item_id")

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "quantity must be at least 1", err))
		return
	}

	ctx := c.Request.Context()
	cart, err := cc.Repo.GetCart(ctx, ownerID)
	if err != nil || cart == nil {
		c.Error(apperrors.New(http.StatusNotFound, "cart not found", err))
		return
	}

	updated := false
	for i := range cart.Items {
		if cart.Items[i].ItemID == itemID {
			cart.Items[i].Quantity = req.Quantity
			cart.Items[i].Subtotal = cart.Items[i].Price * float64(req.Quantity)
			updated = true
			break
		}
	}
	if !updated {
		c.Error(apperrors.New(http.StatusNotFound, "item not in cart", nil))
		return
	}

	if err := cc.Repo.SaveCart(ctx, cart); err != nil {
		logger.Error(c, "failed to update cart", err, zap.String("owner_id", ownerID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to update cart", err))
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem deletes one line item from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)
	itemID := c.Param("item_id")
	ctx := c.Request.Context()

	cart, err := cc.Repo.GetCart(ctx, ownerID)
	if err != nil || cart == nil {
		c.Error(apperrors.New(http.StatusNotFound, "cart not found", err))
		return
	}

	newItems := make([]models.CartLineItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ItemID != itemID {
			newItems = append(newItems, item)
		}
	}
	if len(newItems) == len(cart.Items) {
		c.Error(apperrors.New(http.StatusNotFound, "item not in cart", nil))
		return
	}
	cart.Items = newItems

	if err := cc.Repo.SaveCart(ctx, cart); err != nil {
		logger.Error(c, "failed to update cart", err, zap.String("owner_id", ownerID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to update cart", err))
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart removes the whole cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)

	if err := cc.Repo.DeleteCart(c.Request.Context(), ownerID); err != nil {
		logger.Error(c, "failed to clear cart", err, zap.String("owner_id", ownerID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to clear cart", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

// Checkout publishes the cart snapshot as a checkout.requested event and
// clears the cart.
func (cc *CartController) Checkout(c *gin.Context) {
	ownerID := middleware.GetOwnerID(c)
	ctx := c.Request.Context()

	cart, err := cc.Repo.GetCart(ctx, ownerID)
	if err != nil || cart == nil || len(cart.Items) == 0 {
		c.Error(apperrors.New(http.StatusNotFound, "cart is empty", err))
		return
	}

	event := models.CheckoutEvent{
		Event:     "checkout.requested",
		OwnerID:   ownerID,
		Items:     cart.Items,
		Total:     cart.Total(),
		Timestamp: time.Now().UTC(),
	}
	if err := cc.Publisher.SendCheckoutEvent(ctx, event); err != nil {
		logger.Error(c, "failed to publish checkout event", err, zap.String("owner_id", ownerID))
		c.Error(apperrors.New(http.StatusInternalServerError, "failed to publish checkout event", err))
		return
	}

	if err := cc.Repo.DeleteCart(ctx, ownerID); err != nil {
		logger.Warn(c, "failed to clear cart after checkout", zap.String("owner_id", ownerID), zap.Error(err))
	}

	logger.Info(c, "checkout event published", zap.String("owner_id", ownerID), zap.Float64("total", event.Total))
	c.JSON(http.StatusOK, gin.H{"message": "checkout initiated"})
}
