package demand

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoQueryTimeout = 5 * time.Second

// MongoReader serves demand sources from the campaign-management store.
type MongoReader struct {
	coll *mongo.Collection
}

func NewMongoReader(client *mongo.Client, dbName, collName string) *MongoReader {
	return &MongoReader{
		coll: client.Database(dbName).Collection(collName),
	}
}

func (r *MongoReader) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "max_bid", Value: -1}},
	})
	return err
}

func (r *MongoReader) ListActiveSources(ctx context.Context) ([]Source, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoQueryTimeout)
	defer cancel()

	filter := bson.M{
		"status":       StatusActive,
		"max_bid":      bson.M{"$gt": 0},
		"daily_budget": bson.M{"$gt": 0},
	}
	opts := options.Find().SetSort(bson.D{{Key: "max_bid", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sources []Source
	if err := cursor.All(ctx, &sources); err != nil {
		return nil, err
	}
	return sources, nil
}
