package mocks

import (
	"context"
	"io"

	"hotelapi/internal/model"
	"hotelapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) List(ctx context.Context, q service.RoomQuery) (*service.ListResult[model.Room], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.Room]), args.Error(1)
}

func (m *MockRoomService) Get(ctx context.Context, id string) (*model.Room, error) {
	return m.room(m.Called(ctx, id))
}

func (m *MockRoomService) Create(ctx context.Context, in service.RoomInput) (*model.Room, error) {
	return m.room(m.Called(ctx, in))
}

func (m *MockRoomService) Replace(ctx context.Context, id string, in service.RoomInput) (*model.Room, error) {
	return m.room(m.Called(ctx, id, in))
}

func (m *MockRoomService) Update(ctx context.Context, id string, patch service.RoomPatch) (*model.Room, error) {
	return m.room(m.Called(ctx, id, patch))
}

func (m *MockRoomService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomService) UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Room, error) {
	return m.room(m.Called(ctx, id, r, filename, contentType, size))
}

func (m *MockRoomService) ListImages(ctx context.Context, id string) ([]service.ImageLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ImageLink), args.Error(1)
}

func (m *MockRoomService) DeleteImage(ctx context.Context, id, name string) (*model.Room, error) {
	return m.room(m.Called(ctx, id, name))
}

func (m *MockRoomService) room(args mock.Arguments) (*model.Room, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}
