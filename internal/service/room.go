package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hotelapi/internal/events"
	"hotelapi/internal/model"
	"hotelapi/internal/repository"
	"hotelapi/internal/storage"
)

// RoomInput is the payload for creating or replacing a room.
type RoomInput struct {
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	RoomType    string   `json:"room_type" validate:"required,uuid"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Capacity    *int     `json:"capacity" validate:"omitnil,gte=1"`
	Description string   `json:"description" validate:"max=1000"`
	Amenities   []string `json:"amenities" validate:"max=50,dive,required"`
}

// RoomPatch carries the fields of a partial update; nil means unchanged.
type RoomPatch struct {
	Name        *string   `json:"name" validate:"omitnil,min=1,max=100"`
	RoomType    *string   `json:"room_type" validate:"omitnil,uuid"`
	Price       *float64  `json:"price" validate:"omitnil,gte=0"`
	Capacity    *int      `json:"capacity" validate:"omitnil,gte=1"`
	Description *string   `json:"description" validate:"omitnil,max=1000"`
	Amenities   *[]string `json:"amenities" validate:"omitnil,max=50,dive,required"`
}

// RoomQuery holds the list parameters for rooms.
type RoomQuery struct {
	Limit    int
	Offset   int
	Search   string
	RoomType string
	MinPrice *float64
	MaxPrice *float64
}

// ImageLink is a time-limited download URL for a room image.
type ImageLink struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

const (
	imagePrefix      = "rooms"
	imageURLExpiry   = 15 * time.Minute
	imageCleanupJobs = 4
)

// RoomService defines the use cases for rooms and their images.
type RoomService interface {
	List(ctx context.Context, q RoomQuery) (*ListResult[model.Room], error)
	Get(ctx context.Context, id string) (*model.Room, error)
	Create(ctx context.Context, in RoomInput) (*model.Room, error)
	Replace(ctx context.Context, id string, in RoomInput) (*model.Room, error)
	Update(ctx context.Context, id string, patch RoomPatch) (*model.Room, error)
	// Delete removes the room and then, best effort, its images.
	Delete(ctx context.Context, id string) error

	// UploadImage stores the content and appends its key to the room. The object is removed
	// again if the room cannot be saved.
	UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Room, error)
	ListImages(ctx context.Context, id string) ([]ImageLink, error)
	// DeleteImage removes the object named name (the last key segment) and detaches it from the room.
	DeleteImage(ctx context.Context, id, name string) (*model.Room, error)
}

type roomService struct {
	rooms repository.RoomRepository
	types repository.RoomTypeRepository
	store storage.Storage
	notifier
}

// NewRoomService constructs a new RoomService. store may be nil when object storage
// is not configured; image operations then fail with ErrStorageUnavailable.
func NewRoomService(rooms repository.RoomRepository, types repository.RoomTypeRepository, store storage.Storage, pub events.Publisher, log *zap.Logger) RoomService {
	return &roomService{
		rooms:    rooms,
		types:    types,
		store:    store,
		notifier: notifier{pub: pub, log: log},
	}
}

func (s *roomService) List(ctx context.Context, q RoomQuery) (*ListResult[model.Room], error) {
	limit, offset := normalizePage(q.Limit, q.Offset)
	f := repository.RoomFilter{
		Search:   strings.TrimSpace(q.Search),
		RoomType: q.RoomType,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
	res, err := s.rooms.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	items := res.Items
	if items == nil {
		items = []model.Room{}
	}
	return &ListResult[model.Room]{Items: items, Total: res.Total, Limit: limit, Offset: offset}, nil
}

func (s *roomService) Get(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrRoomNotFound)
	}
	return room, nil
}

func (s *roomService) Create(ctx context.Context, in RoomInput) (*model.Room, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.checkRoomType(ctx, in.RoomType); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	room := &model.Room{
		ID:        uuid.New().String(),
		Images:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(room, in)
	stored, err := s.rooms.Create(ctx, room)
	if err != nil {
		return nil, translate(err, ErrRoomNotFound)
	}
	s.emit(ctx, events.ResourceRoom, events.ActionCreated, stored.ID, stored)
	return stored, nil
}

func (s *roomService) Replace(ctx context.Context, id string, in RoomInput) (*model.Room, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoomType(ctx, in.RoomType); err != nil {
		return nil, err
	}
	applyInput(current, in)
	return s.save(ctx, current, events.ActionReplaced)
}

func (s *roomService) Update(ctx context.Context, id string, patch RoomPatch) (*model.Room, error) {
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
	if patch.RoomType != nil && *patch.RoomType != current.RoomType {
		if err := s.checkRoomType(ctx, *patch.RoomType); err != nil {
			return nil, err
		}
		current.RoomType = *patch.RoomType
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Price != nil {
		current.Price = *patch.Price
	}
	if patch.Capacity != nil {
		current.Capacity = *patch.Capacity
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.Amenities != nil {
		current.Amenities = nonNil(*patch.Amenities)
	}
	return s.save(ctx, current, events.ActionUpdated)
}

func (s *roomService) Delete(ctx context.Context, id string) error {
	room, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.rooms.Delete(ctx, id); err != nil {
		return translate(err, ErrRoomNotFound)
	}
	s.removeImages(ctx, room.ID, room.Images)
	s.emit(ctx, events.ResourceRoom, events.ActionDeleted, id, nil)
	return nil
}

func (s *roomService) UploadImage(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*model.Room, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &ValidationError{Fields: []FieldError{{Field: "file", Message: "must be an image"}}}
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Stored filename is UUID + original extension.
	key := path.Join(imagePrefix, room.ID, uuid.New().String()+strings.ToLower(path.Ext(filename)))
	obj, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	room.Images = append(room.Images, obj.Key)
	stored, err := s.save(ctx, room, events.ActionUpdated)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *roomService) ListImages(ctx context.Context, id string) ([]ImageLink, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	links := make([]ImageLink, 0, len(room.Images))
	for _, key := range room.Images {
		u, err := s.store.PresignGet(ctx, key, imageURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}
		links = append(links, ImageLink{Key: key, URL: u})
	}
	return links, nil
}

func (s *roomService) DeleteImage(ctx context.Context, id, name string) (*model.Room, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	key := path.Join(imagePrefix, room.ID, name)
	if strings.Contains(name, "/") || !room.HasImage(key) {
		return nil, ErrImageNotFound
	}
	// Delete from storage first; if this fails the room keeps its reference.
	if err := s.store.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("delete storage: %w", err)
	}
	kept := make([]string, 0, len(room.Images)-1)
	for _, k := range room.Images {
		if k != key {
			kept = append(kept, k)
		}
	}
	room.Images = kept
	return s.save(ctx, room, events.ActionUpdated)
}

func (s *roomService) save(ctx context.Context, room *model.Room, action string) (*model.Room, error) {
	room.UpdatedAt = time.Now().UTC()
	stored, err := s.rooms.Update(ctx, room)
	if err != nil {
		return nil, translate(err, ErrRoomNotFound)
	}
	s.emit(ctx, events.ResourceRoom, action, stored.ID, stored)
	return stored, nil
}

func (s *roomService) checkRoomType(ctx context.Context, id string) error {
	if _, err := s.types.FindByID(ctx, id); err != nil {
		return translate(err, ErrInvalidRoomType)
	}
	return nil
}

// removeImages deletes objects concurrently. Failures are logged; the room is already gone.
func (s *roomService) removeImages(ctx context.Context, roomID string, keys []string) {
	if s.store == nil || len(keys) == 0 {
		return
	}
	var g errgroup.Group
	g.SetLimit(imageCleanupJobs)
	for _, key := range keys {
		g.Go(func() error {
			if err := s.store.Delete(ctx, key); err != nil {
				s.log.Warn("remove room image failed",
					zap.String("room_id", roomID),
					zap.String("key", key),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func applyInput(room *model.Room, in RoomInput) {
	room.Name = in.Name
	room.RoomType = in.RoomType
	room.Price = *in.Price
	room.Capacity = 1
	if in.Capacity != nil {
		room.Capacity = *in.Capacity
	}
	room.Description = in.Description
	room.Amenities = nonNil(in.Amenities)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
