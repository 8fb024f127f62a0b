package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	cargoCollection   = "cargos"
	requestCollection = "requests"
	userCollection    = "users"
)

// EnsureIndexes creates the indexes the stores rely on. Safe to call on
// every startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	// Active-cargo lookups scan by driver and status on every
	// assignment attempt.
	_, err := db.Collection(cargoCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "driverId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "businessId", Value: 1}}},
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(requestCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
