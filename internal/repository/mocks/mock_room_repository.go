package mocks

import (
	"context"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id string) (*model.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepository) List(ctx context.Context, f repository.RoomFilter, pq repository.PageQuery) (*repository.PageResult[model.Room], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Room]), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *model.Room) (*model.Room, error) {
	args := m.Called(ctx, room)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) CountByRoomType(ctx context.Context, roomTypeID string) (int, error) {
	args := m.Called(ctx, roomTypeID)
	return args.Int(0), args.Error(1)
}
