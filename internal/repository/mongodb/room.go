package mongodb

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"
)

// RoomMongo is a MongoDB implementation of repository.RoomRepository.
type RoomMongo struct {
	coll *mongo.Collection
}

// NewRoomMongo creates a repository over the rooms collection of db.
func NewRoomMongo(db *mongo.Database) *RoomMongo {
	return &RoomMongo{coll: db.Collection(RoomsCollection)}
}

var _ repository.RoomRepository = (*RoomMongo)(nil)

func (r *RoomMongo) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	if _, err := r.coll.InsertOne(ctx, room); err != nil {
		return nil, translate(err)
	}
	out := *room
	return &out, nil
}

func (r *RoomMongo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&room); err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// roomFilter converts f into a query document.
func roomFilter(f repository.RoomFilter) bson.M {
	q := bson.M{}
	if f.Search != "" {
		q["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	if f.RoomType != "" {
		q["room_type"] = f.RoomType
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		q["price"] = price
	}
	return q
}

func (r *RoomMongo) List(ctx context.Context, f repository.RoomFilter, pq repository.PageQuery) (*repository.PageResult[model.Room], error) {
	filter := roomFilter(f)
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	cur, err := r.coll.Find(ctx, filter, pageOptions(pq))
	if err != nil {
		return nil, err
	}
	items := make([]model.Room, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Room]{Items: items, Total: int(total)}, nil
}

func (r *RoomMongo) Update(ctx context.Context, room *model.Room) (*model.Room, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": room.ID}, room)
	if err != nil {
		return nil, translate(err)
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	out := *room
	return &out, nil
}

func (r *RoomMongo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoomMongo) CountByRoomType(ctx context.Context, roomTypeID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"room_type": roomTypeID})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
