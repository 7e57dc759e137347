// Package mongodb implements the repositories on top of the official MongoDB driver.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hotelapi/internal/repository"
)

// Collection names.
const (
	RoomTypesCollection = "room_types"
	RoomsCollection     = "rooms"
)

// newestFirst matches the ordering of the other backends.
var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	default:
		return err
	}
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(RoomTypesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_room_type_name"),
	})
	if err != nil {
		return fmt.Errorf("room_types indexes: %w", err)
	}

	_, err = db.Collection(RoomsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "room_type", Value: 1}}, Options: options.Index().SetName("idx_room_type")},
		{Keys: bson.D{{Key: "price", Value: 1}}, Options: options.Index().SetName("idx_price")},
		{Keys: newestFirst, Options: options.Index().SetName("idx_created_at")},
	})
	if err != nil {
		return fmt.Errorf("rooms indexes: %w", err)
	}
	return nil
}

func pageOptions(pq repository.PageQuery) *options.FindOptions {
	return options.Find().
		SetSort(newestFirst).
		SetSkip(int64(pq.Offset)).
		SetLimit(int64(pq.Limit))
}
