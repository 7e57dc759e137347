package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hotelapi/internal/events"
	"hotelapi/internal/model"
	"hotelapi/internal/repository"
)

// RoomTypeInput is the payload for creating or replacing a room type.
type RoomTypeInput struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// RoomTypePatch carries the fields of a partial update; nil means unchanged.
type RoomTypePatch struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// RoomTypeService defines the use cases for room types.
type RoomTypeService interface {
	List(ctx context.Context, limit, offset int) (*ListResult[model.RoomType], error)
	Get(ctx context.Context, id string) (*model.RoomType, error)
	// GetByName looks a room type up by its exact name.
	GetByName(ctx context.Context, name string) (*model.RoomType, error)
	Create(ctx context.Context, in RoomTypeInput) (*model.RoomType, error)
	// Replace overwrites every mutable field; created_at is kept.
	Replace(ctx context.Context, id string, in RoomTypeInput) (*model.RoomType, error)
	Update(ctx context.Context, id string, patch RoomTypePatch) (*model.RoomType, error)
	// Delete refuses to remove a room type that rooms still reference.
	Delete(ctx context.Context, id string) error
}

type roomTypeService struct {
	types repository.RoomTypeRepository
	rooms repository.RoomRepository
	notifier
}

// NewRoomTypeService constructs a new RoomTypeService.
func NewRoomTypeService(types repository.RoomTypeRepository, rooms repository.RoomRepository, pub events.Publisher, log *zap.Logger) RoomTypeService {
	return &roomTypeService{types: types, rooms: rooms, notifier: notifier{pub: pub, log: log}}
}

func (s *roomTypeService) List(ctx context.Context, limit, offset int) (*ListResult[model.RoomType], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.types.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	items := res.Items
	if items == nil {
		items = []model.RoomType{}
	}
	return &ListResult[model.RoomType]{Items: items, Total: res.Total, Limit: limit, Offset: offset}, nil
}

func (s *roomTypeService) Get(ctx context.Context, id string) (*model.RoomType, error) {
	rt, err := s.types.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrRoomTypeNotFound)
	}
	return rt, nil
}

func (s *roomTypeService) GetByName(ctx context.Context, name string) (*model.RoomType, error) {
	rt, err := s.types.FindByName(ctx, name)
	if err != nil {
		return nil, translate(err, ErrRoomTypeNotFound)
	}
	return rt, nil
}

func (s *roomTypeService) Create(ctx context.Context, in RoomTypeInput) (*model.RoomType, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	rt := &model.RoomType{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.types.Create(ctx, rt)
	if err != nil {
		return nil, translate(err, ErrRoomTypeNotFound)
	}
	s.emit(ctx, events.ResourceRoomType, events.ActionCreated, stored.ID, stored)
	return stored, nil
}

func (s *roomTypeService) Replace(ctx context.Context, id string, in RoomTypeInput) (*model.RoomType, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Name = in.Name
	current.Description = in.Description
	return s.save(ctx, current, events.ActionReplaced)
}

func (s *roomTypeService) Update(ctx context.Context, id string, patch RoomTypePatch) (*model.RoomType, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	return s.save(ctx, current, events.ActionUpdated)
}

func (s *roomTypeService) save(ctx context.Context, rt *model.RoomType, action string) (*model.RoomType, error) {
	rt.UpdatedAt = time.Now().UTC()
	stored, err := s.types.Update(ctx, rt)
	if err != nil {
		return nil, translate(err, ErrRoomTypeNotFound)
	}
	s.emit(ctx, events.ResourceRoomType, action, stored.ID, stored)
	return stored, nil
}

func (s *roomTypeService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	n, err := s.rooms.CountByRoomType(ctx, id)
	if err != nil {
		return fmt.Errorf("count rooms of type: %w", err)
	}
	if n > 0 {
		return ErrRoomTypeInUse
	}
	if err := s.types.Delete(ctx, id); err != nil {
		return translate(err, ErrRoomTypeNotFound)
	}
	s.emit(ctx, events.ResourceRoomType, events.ActionDeleted, id, nil)
	return nil
}
