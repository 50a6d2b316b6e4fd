package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vendora-platform/backend/services/cart-service/models"
)

// Sweeps every cart and rewrites line subtotals that drifted from
// price x quantity. Carts written before the server became
// authoritative for subtotals may carry client-supplied values.
func main() {
	var mongoURI, dbName string
	var dryRun bool
	flag.StringVar(&mongoURI, "mongo", os.Getenv("MONGO_DB_URL"), "MongoDB URI")
	flag.StringVar(&dbName, "db", envOr("MONGO_DB_NAME", "vendora"), "MongoDB database name")
	flag.BoolVar(&dryRun, "dry-run", false, "report drift without writing")
	flag.Parse()

	if mongoURI == "" {
		log.Fatal("MONGO_DB_URL must be set or provided via -mongo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)

	coll := client.Database(dbName).Collection("carts")

	batchSize := int32(500)
	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetBatchSize(batchSize))
	if err != nil {
		log.Fatalf("mongo find: %v", err)
	}
	defer cur.Close(ctx)

	var scanned, fixed int
	for cur.Next(ctx) {
		var cart models.Cart
		if err := cur.Decode(&cart); err != nil {
			log.Printf("decode error: %v", err)
			continue
		}
		scanned++

		dirty := false
		for i := range cart.Items {
			want := cart.Items[i].Price * float64(cart.Items[i].Quantity)
			if math.Abs(cart.Items[i].Subtotal-want) > 0.004 {
				cart.Items[i].Subtotal = want
				dirty = true
			}
		}
		if !dirty {
			continue
		}

		if dryRun {
			log.Printf("drift in cart %s", cart.OwnerID)
			fixed++
			continue
		}

		update := bson.M{"$set": bson.M{"items": cart.Items, "updated_at": time.Now().UTC()}}
		if _, err := coll.UpdateByID(ctx, cart.OwnerID, update); err != nil {
			log.Printf("failed to update cart %s: %v", cart.OwnerID, err)
			continue
		}
		fixed++
		if fixed%100 == 0 {
			log.Printf("fixed %d carts", fixed)
		}
	}
	if err := cur.Err(); err != nil {
		log.Fatalf("cursor error: %v", err)
	}

	fmt.Printf("Sweep complete. scanned=%d fixed=%d dry_run=%v\n", scanned, fixed, dryRun)
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
