package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Deletes the cart belonging to the user identified by email. Used when
// support needs to clear corrupted cart state for a single customer.
//
// Usage: purge-user-cart [-mongo URI] [-db NAME] <email>
func main() {
	var mongoURI, dbName string
	flag.StringVar(&mongoURI, "mongo", os.Getenv("MONGO_DB_URL"), "MongoDB URI")
	flag.StringVar(&dbName, "db", envOr("MONGO_DB_NAME", "vendora"), "MongoDB database name")
	flag.Parse()

	if mongoURI == "" {
		log.Fatal("MONGO_DB_URL must be set or provided via -mongo")
	}
	if flag.NArg() != 1 {
		log.Fatalf("usage: %s [-mongo URI] [-db NAME] <email>", os.Args[0])
	}
	email := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)

	var user struct {
		ID string `bson:"_id"`
	}
	err = db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		log.Fatalf("no user found with email %s", email)
	}
	if err != nil {
		log.Fatalf("user lookup: %v", err)
	}

	// Cart documents are keyed by the namespaced owner id.
	res, err := db.Collection("carts").DeleteMany(ctx, bson.M{"_id": "user:" + user.ID})
	if err != nil {
		log.Fatalf("cart delete: %v", err)
	}

	fmt.Printf("Purge complete. user=%s deleted=%d\n", user.ID, res.DeletedCount)
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
