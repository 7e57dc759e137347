package memory

import (
	"context"
	"sync"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"
)

// RoomTypeMemory is an in-memory implementation of repository.RoomTypeRepository.
// Names are unique, like the unique index of the database backends.
type RoomTypeMemory struct {
	// nameMu serializes the uniqueness check with the write.
	nameMu sync.Mutex
	coll   *collection[model.RoomType]
}

// NewRoomTypeMemory creates an empty RoomTypeMemory.
func NewRoomTypeMemory() *RoomTypeMemory {
	return &RoomTypeMemory{
		coll: newCollection(func(rt model.RoomType) model.RoomType { return rt }),
	}
}

var _ repository.RoomTypeRepository = (*RoomTypeMemory)(nil)

func (r *RoomTypeMemory) Create(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.nameMu.Lock()
	defer r.nameMu.Unlock()
	if r.nameTaken(rt.Name, rt.ID) {
		return nil, repository.ErrDuplicate
	}
	if !r.coll.insert(rt.ID, *rt) {
		return nil, repository.ErrDuplicate
	}
	out := *rt
	return &out, nil
}

func (r *RoomTypeMemory) FindByID(ctx context.Context, id string) (*model.RoomType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rt, ok := r.coll.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rt, nil
}

func (r *RoomTypeMemory) FindByName(ctx context.Context, name string) (*model.RoomType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rt, ok := r.coll.find(func(rt model.RoomType) bool { return rt.Name == name })
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rt, nil
}

func (r *RoomTypeMemory) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.RoomType], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.coll.page(nil, pq), nil
}

func (r *RoomTypeMemory) Update(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.nameMu.Lock()
	defer r.nameMu.Unlock()
	if r.nameTaken(rt.Name, rt.ID) {
		return nil, repository.ErrDuplicate
	}
	if !r.coll.replace(rt.ID, *rt) {
		return nil, repository.ErrNotFound
	}
	out := *rt
	return &out, nil
}

func (r *RoomTypeMemory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !r.coll.remove(id) {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoomTypeMemory) nameTaken(name, exceptID string) bool {
	_, taken := r.coll.find(func(rt model.RoomType) bool { return rt.Name == name && rt.ID != exceptID })
	return taken
}
