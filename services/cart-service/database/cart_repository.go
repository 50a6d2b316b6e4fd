package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/vendora-platform/backend/services/cart-service/models"
)

// CartRepository defines data access for carts.
type CartRepository interface {
	GetCart(ctx context.Context, ownerID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, ownerID string) error
}

// MongoCartRepository stores carts in the "carts" collection with a
// Redis cache in front. Mongo is authoritative; the cache is invalidated
// on every write.
type MongoCartRepository struct {
	collection *mongo.Collection
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewMongoCartRepository(db *mongo.Database, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection("carts"),
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

func cacheKey(ownerID string) string {
	return fmt.Sprintf("cart:%s", ownerID)
}

// GetCart returns the cart for ownerID, or nil when none exists.
func (r *MongoCartRepository) GetCart(ctx context.Context, ownerID string) (*models.Cart, error) {
	if r.cache != nil {
		if data, err := r.cache.Get(ctx, cacheKey(ownerID)).Result(); err == nil {
			var cart models.Cart
			if err := json.Unmarshal([]byte(data), &cart); err == nil {
				return &cart, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cart cache read failed", zap.Error(err))
		}
	}

	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": ownerID}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.fillCache(ctx, &cart)
	return &cart, nil
}

// SaveCart upserts the cart document and refreshes the cache.
func (r *MongoCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": cart.OwnerID},
		cart,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	r.fillCache(ctx, cart)
	return nil
}

// DeleteCart removes the cart document and its cache entry.
func (r *MongoCartRepository) DeleteCart(ctx context.Context, ownerID string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": ownerID}); err != nil {
		return err
	}
	if r.cache != nil {
		if err := r.cache.Del(ctx, cacheKey(ownerID)).Err(); err != nil {
			r.logger.Warn("cart cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}

func (r *MongoCartRepository) fillCache(ctx context.Context, cart *models.Cart) {
	if r.cache == nil {
		return
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(cart.OwnerID), data, r.cacheTTL).Err(); err != nil {
		r.logger.Warn("cart cache write failed", zap.Error(err))
	}
}
