package repository

import (
	"context"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUpdateRepository implements the UpdateRepository interface
type MongoUpdateRepository struct {
	collection *mongo.Collection
}

// NewMongoUpdateRepository creates a new MongoDB update log repository
func NewMongoUpdateRepository(db *mongo.Database) repository.UpdateRepository {
	collection := db.Collection("updateLogs")

	// Create indexes for better performance
	ctx := context.Background()

	updateIDIndex := mongo.IndexModel{
		Keys:    bson.M{"updateId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on processStatus for finding updates by status
	processStatusIndex := mongo.IndexModel{
		Keys: bson.M{"processStatus": 1},
	}

	// Compound index for finding unprocessed updates efficiently
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "receivedAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		updateIDIndex,
		processStatusIndex,
		unprocessedIndex,
	})

	return &MongoUpdateRepository{
		collection: collection,
	}
}

// Save persists an inbound update
func (r *MongoUpdateRepository) Save(ctx context.Context, update *entity.Update) error {
	if update.ProcessStatus == "" {
		update.ProcessStatus = entity.StatusPending
	}
	if update.ReceivedAt.IsZero() {
		update.ReceivedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, update)
	return err
}

// FindUnprocessed finds pending updates, oldest first
func (r *MongoUpdateRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Update, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.StatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var updates []*entity.Update
	if err := cursor.All(ctx, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// MarkProcessed records the processing outcome of an update
func (r *MongoUpdateRepository) MarkProcessed(ctx context.Context, updateID string, status string, errorDetail string) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
			"processedAt":   time.Now().UTC(),
			"errorDetail":   errorDetail,
		},
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"updateId": updateID}, update)
	return err
}
