package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (mongo, postgres, memory) inside this directory.

import (
	"context"
	"errors"

	"hotelapi/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the given ID.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint (room type name) is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// RoomTypeRepository defines persistence operations for room types.
// No business logic here, only persistence.
type RoomTypeRepository interface {
	// Create inserts a new room type. The caller sets ID and timestamps.
	Create(ctx context.Context, rt *model.RoomType) (*model.RoomType, error)

	// FindByID returns ErrNotFound when the ID is unknown.
	FindByID(ctx context.Context, id string) (*model.RoomType, error)

	// FindByName returns ErrNotFound when no room type has that exact name.
	FindByName(ctx context.Context, name string) (*model.RoomType, error)

	// List returns a page of room types, newest first, and the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.RoomType], error)

	// Update replaces the stored room type with the same ID.
	Update(ctx context.Context, rt *model.RoomType) (*model.RoomType, error)

	// Delete removes a room type by ID.
	Delete(ctx context.Context, id string) error
}

// RoomRepository defines persistence operations for rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) (*model.Room, error)
	FindByID(ctx context.Context, id string) (*model.Room, error)
	List(ctx context.Context, f RoomFilter, pq PageQuery) (*PageResult[model.Room], error)
	Update(ctx context.Context, room *model.Room) (*model.Room, error)
	Delete(ctx context.Context, id string) error

	// CountByRoomType returns how many rooms reference the room type.
	CountByRoomType(ctx context.Context, roomTypeID string) (int, error)
}

// RoomFilter narrows room listings. Zero values mean "no constraint".
type RoomFilter struct {
	// Search matches the room name case-insensitively as a literal substring.
	Search   string
	RoomType string
	MinPrice *float64
	MaxPrice *float64
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
