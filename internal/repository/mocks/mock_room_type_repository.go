package mocks

import (
	"context"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockRoomTypeRepository struct {
	mock.Mock
}

func (m *MockRoomTypeRepository) Create(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	args := m.Called(ctx, rt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomType), args.Error(1)
}

func (m *MockRoomTypeRepository) FindByID(ctx context.Context, id string) (*model.RoomType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomType), args.Error(1)
}

func (m *MockRoomTypeRepository) FindByName(ctx context.Context, name string) (*model.RoomType, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomType), args.Error(1)
}

func (m *MockRoomTypeRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.RoomType], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.RoomType]), args.Error(1)
}

func (m *MockRoomTypeRepository) Update(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	args := m.Called(ctx, rt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomType), args.Error(1)
}

func (m *MockRoomTypeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
