package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"
)

// RoomTypeMongo is a MongoDB implementation of repository.RoomTypeRepository.
type RoomTypeMongo struct {
	coll *mongo.Collection
}

// NewRoomTypeMongo creates a repository over the room_types collection of db.
func NewRoomTypeMongo(db *mongo.Database) *RoomTypeMongo {
	return &RoomTypeMongo{coll: db.Collection(RoomTypesCollection)}
}

var _ repository.RoomTypeRepository = (*RoomTypeMongo)(nil)

func (r *RoomTypeMongo) Create(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	if _, err := r.coll.InsertOne(ctx, rt); err != nil {
		return nil, translate(err)
	}
	out := *rt
	return &out, nil
}

func (r *RoomTypeMongo) FindByID(ctx context.Context, id string) (*model.RoomType, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RoomTypeMongo) FindByName(ctx context.Context, name string) (*model.RoomType, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *RoomTypeMongo) findOne(ctx context.Context, filter bson.M) (*model.RoomType, error) {
	var rt model.RoomType
	if err := r.coll.FindOne(ctx, filter).Decode(&rt); err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (r *RoomTypeMongo) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.RoomType], error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	cur, err := r.coll.Find(ctx, bson.M{}, pageOptions(pq))
	if err != nil {
		return nil, err
	}
	items := make([]model.RoomType, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.RoomType]{Items: items, Total: int(total)}, nil
}

func (r *RoomTypeMongo) Update(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": rt.ID}, rt)
	if err != nil {
		return nil, translate(err)
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	out := *rt
	return &out, nil
}

func (r *RoomTypeMongo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
