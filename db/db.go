package db

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection             *mongo.Collection
	IngredientCollection       *mongo.Collection
	TagCollection              *mongo.Collection
	RecipeCollection           *mongo.Collection
	RecipeIngredientCollection *mongo.Collection
	FavoriteCollection         *mongo.Collection
	ShoppingCartCollection     *mongo.Collection
	SubscriptionCollection     *mongo.Collection

	Client *mongo.Client
)

// Init connects to MongoDB and binds the collections. Called once from main.
func Init(ctx context.Context) error {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "foodgram"
	}

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(mongoURI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return err
	}
	Client = client

	database := client.Database(dbName)
	UserCollection = database.Collection("users")
	IngredientCollection = database.Collection("ingredients")
	TagCollection = database.Collection("tags")
	RecipeCollection = database.Collection("recipes")
	RecipeIngredientCollection = database.Collection("recipeingredients")
	FavoriteCollection = database.Collection("favorites")
	ShoppingCartCollection = database.Collection("shoppingcarts")
	SubscriptionCollection = database.Collection("subscriptions")

	return EnsureIndexes(ctx)
}

// EnsureIndexes creates the unique indexes the API relies on. Concurrent
// duplicate inserts lose with a duplicate-key error, which the handlers
// translate into a 400.
func EnsureIndexes(ctx context.Context) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	indexSets := map[*mongo.Collection][]mongo.IndexModel{
		UserCollection: {
			unique(bson.D{{Key: "userid", Value: 1}}),
			unique(bson.D{{Key: "username", Value: 1}}),
			unique(bson.D{{Key: "email", Value: 1}}),
		},
		IngredientCollection: {
			unique(bson.D{{Key: "ingredientid", Value: 1}}),
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		TagCollection: {
			unique(bson.D{{Key: "tagid", Value: 1}}),
			unique(bson.D{{Key: "name", Value: 1}}),
			unique(bson.D{{Key: "slug", Value: 1}}),
		},
		RecipeCollection: {
			unique(bson.D{{Key: "recipeid", Value: 1}}),
			{Keys: bson.D{{Key: "authorid", Value: 1}}},
			{Keys: bson.D{{Key: "pub_date", Value: -1}}},
		},
		RecipeIngredientCollection: {
			unique(bson.D{{Key: "recipeid", Value: 1}, {Key: "ingredientid", Value: 1}}),
		},
		FavoriteCollection: {
			unique(bson.D{{Key: "userid", Value: 1}, {Key: "recipeid", Value: 1}}),
		},
		ShoppingCartCollection: {
			unique(bson.D{{Key: "userid", Value: 1}, {Key: "recipeid", Value: 1}}),
		},
		SubscriptionCollection: {
			unique(bson.D{{Key: "userid", Value: 1}, {Key: "authorid", Value: 1}}),
		},
	}

	for coll, models := range indexSets {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			log.Printf("index creation failed for %s: %v", coll.Name(), err)
			return err
		}
	}
	return nil
}
