package mongodb

import (
	"context"
	"testing"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const (
	roomTypesNS = "hotel.room_types"
	roomsNS     = "hotel.rooms"
)

func TestRoomTypeMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewRoomTypeMongo(mt.DB)

		rt, err := repo.Create(ctx, &model.RoomType{ID: "rt-1", Name: "Suite"})
		require.NoError(mt, err)
		assert.Equal(mt, "rt-1", rt.ID)
	})

	mt.Run("create duplicate name", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: hotel.room_types index: uniq_room_type_name",
		}))
		repo := NewRoomTypeMongo(mt.DB)

		rt, err := repo.Create(ctx, &model.RoomType{ID: "rt-2", Name: "Suite"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
		assert.Nil(mt, rt)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, roomTypesNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "rt-1"},
			{Key: "name", Value: "Suite"},
			{Key: "description", Value: "sea view"},
		}))
		repo := NewRoomTypeMongo(mt.DB)

		rt, err := repo.FindByID(ctx, "rt-1")
		require.NoError(mt, err)
		assert.Equal(mt, "Suite", rt.Name)
		assert.Equal(mt, "sea view", rt.Description)
	})

	mt.Run("find by name not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, roomTypesNS, mtest.FirstBatch))
		repo := NewRoomTypeMongo(mt.DB)

		rt, err := repo.FindByName(ctx, "Nope")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
		assert.Nil(mt, rt)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, roomTypesNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(2)}}),
			mtest.CreateCursorResponse(0, roomTypesNS, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "b"}, {Key: "name", Value: "B"}},
				bson.D{{Key: "_id", Value: "a"}, {Key: "name", Value: "A"}},
			),
		)
		repo := NewRoomTypeMongo(mt.DB)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})
		require.NoError(mt, err)
		assert.Equal(mt, 2, res.Total)
		require.Len(mt, res.Items, 2)
		assert.Equal(mt, "b", res.Items[0].ID)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})
		repo := NewRoomTypeMongo(mt.DB)

		_, err := repo.Update(ctx, &model.RoomType{ID: "missing", Name: "X"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}},
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}},
		)
		repo := NewRoomTypeMongo(mt.DB)

		assert.NoError(mt, repo.Delete(ctx, "rt-1"))
		assert.ErrorIs(mt, repo.Delete(ctx, "rt-1"), repository.ErrNotFound)
	})
}

func TestRoomMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create and find", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, roomsNS, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "r1"},
				{Key: "name", Value: "101"},
				{Key: "room_type", Value: "rt-1"},
				{Key: "price", Value: 120.5},
				{Key: "capacity", Value: int32(2)},
				{Key: "amenities", Value: bson.A{"wifi", "tv"}},
			}),
		)
		repo := NewRoomMongo(mt.DB)

		_, err := repo.Create(ctx, &model.Room{ID: "r1", Name: "101", RoomType: "rt-1", Price: 120.5, Capacity: 2})
		require.NoError(mt, err)

		room, err := repo.FindByID(ctx, "r1")
		require.NoError(mt, err)
		assert.Equal(mt, 120.5, room.Price)
		assert.Equal(mt, 2, room.Capacity)
		assert.Equal(mt, []string{"wifi", "tv"}, room.Amenities)
	})

	mt.Run("update", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})
		repo := NewRoomMongo(mt.DB)

		room, err := repo.Update(ctx, &model.Room{ID: "r1", Name: "102"})
		require.NoError(mt, err)
		assert.Equal(mt, "102", room.Name)
	})

	mt.Run("count by room type", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, roomsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(4)}}))
		repo := NewRoomMongo(mt.DB)

		n, err := repo.CountByRoomType(ctx, "rt-1")
		require.NoError(mt, err)
		assert.Equal(mt, 4, n)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, roomsNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, roomsNS, mtest.FirstBatch),
		)
		repo := NewRoomMongo(mt.DB)

		res, err := repo.List(ctx, repository.RoomFilter{Search: "x"}, repository.PageQuery{Limit: 5})
		require.NoError(mt, err)
		assert.Equal(mt, 0, res.Total)
		assert.NotNil(mt, res.Items)
		assert.Empty(mt, res.Items)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		assert.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})

	mt.Run("command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "unauthorized"}))
		err := EnsureIndexes(context.Background(), mt.DB)
		assert.ErrorContains(mt, err, "room_types indexes")
	})
}

func TestRoomFilter(t *testing.T) {
	lo, hi := 10.0, 20.0

	assert.Equal(t, bson.M{}, roomFilter(repository.RoomFilter{}))

	got := roomFilter(repository.RoomFilter{Search: "a+b", RoomType: "rt", MinPrice: &lo, MaxPrice: &hi})
	assert.Equal(t, primitive.Regex{Pattern: `a\+b`, Options: "i"}, got["name"])
	assert.Equal(t, "rt", got["room_type"])
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 20.0}, got["price"])
}
