package mocks

import (
	"context"

	"hotelapi/internal/model"
	"hotelapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRoomTypeService struct {
	mock.Mock
}

func (m *MockRoomTypeService) List(ctx context.Context, limit, offset int) (*service.ListResult[model.RoomType], error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.RoomType]), args.Error(1)
}

func (m *MockRoomTypeService) Get(ctx context.Context, id string) (*model.RoomType, error) {
	return m.roomType(m.Called(ctx, id))
}

func (m *MockRoomTypeService) GetByName(ctx context.Context, name string) (*model.RoomType, error) {
	return m.roomType(m.Called(ctx, name))
}

func (m *MockRoomTypeService) Create(ctx context.Context, in service.RoomTypeInput) (*model.RoomType, error) {
	return m.roomType(m.Called(ctx, in))
}

func (m *MockRoomTypeService) Replace(ctx context.Context, id string, in service.RoomTypeInput) (*model.RoomType, error) {
	return m.roomType(m.Called(ctx, id, in))
}

func (m *MockRoomTypeService) Update(ctx context.Context, id string, patch service.RoomTypePatch) (*model.RoomType, error) {
	return m.roomType(m.Called(ctx, id, patch))
}

func (m *MockRoomTypeService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomTypeService) roomType(args mock.Arguments) (*model.RoomType, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomType), args.Error(1)
}
