package db

import (
	"context"
	"log"

	"sparkle/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection        *mongo.Collection
	ProductCollection     *mongo.Collection
	CategoryCollection    *mongo.Collection
	OrderCollection       *mongo.Collection
	ContentCollection     *mongo.Collection
	CollectionsCollection *mongo.Collection
	Client                *mongo.Client
)

// Initialize MongoDB connection
func init() {
	clientOptions := options.Client().ApplyURI(config.App.MongoURI)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database(config.App.MongoDB)
	UserCollection = database.Collection("users")
	ProductCollection = database.Collection("products")
	CategoryCollection = database.Collection("categories")
	OrderCollection = database.Collection("orders")
	ContentCollection = database.Collection("content")
	CollectionsCollection = database.Collection("collections")
}
