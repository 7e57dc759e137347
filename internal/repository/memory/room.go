package memory

import (
	"context"
	"slices"
	"strings"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"
)

// RoomMemory is an in-memory implementation of repository.RoomRepository.
type RoomMemory struct {
	coll *collection[model.Room]
}

// NewRoomMemory creates an empty RoomMemory.
func NewRoomMemory() *RoomMemory {
	return &RoomMemory{coll: newCollection(cloneRoom)}
}

var _ repository.RoomRepository = (*RoomMemory)(nil)

func cloneRoom(r model.Room) model.Room {
	r.Amenities = slices.Clone(r.Amenities)
	r.Images = slices.Clone(r.Images)
	return r
}

func (r *RoomMemory) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.coll.insert(room.ID, *room) {
		return nil, repository.ErrDuplicate
	}
	out := cloneRoom(*room)
	return &out, nil
}

func (r *RoomMemory) FindByID(ctx context.Context, id string) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	room, ok := r.coll.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &room, nil
}

func (r *RoomMemory) List(ctx context.Context, f repository.RoomFilter, pq repository.PageQuery) (*repository.PageResult[model.Room], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	search := strings.ToLower(f.Search)
	return r.coll.page(func(room model.Room) bool {
		if search != "" && !strings.Contains(strings.ToLower(room.Name), search) {
			return false
		}
		if f.RoomType != "" && room.RoomType != f.RoomType {
			return false
		}
		if f.MinPrice != nil && room.Price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && room.Price > *f.MaxPrice {
			return false
		}
		return true
	}, pq), nil
}

func (r *RoomMemory) Update(ctx context.Context, room *model.Room) (*model.Room, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !r.coll.replace(room.ID, *room) {
		return nil, repository.ErrNotFound
	}
	out := cloneRoom(*room)
	return &out, nil
}

func (r *RoomMemory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.coll.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoomMemory) CountByRoomType(ctx context.Context, roomTypeID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.coll.count(func(room model.Room) bool { return room.RoomType == roomTypeID }), nil
}
