package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/cart-service/config"
	"github.com/vendora-platform/backend/services/cart-service/controllers"
	"github.com/vendora-platform/backend/services/cart-service/database"
	"github.com/vendora-platform/backend/services/cart-service/kafka"
	"github.com/vendora-platform/backend/services/cart-service/middleware"
)

func RegisterCartRoutes(
	r *gin.Engine,
	db *mongo.Database,
	redisClient *redis.Client,
	producer *kafka.Producer,
	cfg *config.Config,
	logger *zap.Logger,
) {
	repo := database.NewMongoCartRepository(db, redisClient, cfg.CacheTTL, logger)
	controller := controllers.NewCartController(repo, producer)

	api := r.Group("/cart")
	api.Use(middleware.OptionalAuth())
	{
		api.GET("", controller.GetCart)
		api.POST("/add", controller.AddItem)
		api.PATCH("/items/:item_id", controller.UpdateQuantity)
		api.DELETE("/items/:item_id", controller.RemoveItem)
		api.DELETE("/clear", controller.ClearCart)
		api.POST("/checkout", controller.Checkout)
	}
}
