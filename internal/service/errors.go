package service

import (
	"errors"
	"fmt"
	"strings"

	"hotelapi/internal/repository"
)

var (
	ErrRoomTypeNotFound   = errors.New("room type not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrImageNotFound      = errors.New("image not found")
	ErrConflict           = errors.New("room type name already exists")
	ErrRoomTypeInUse      = errors.New("room type is still used by rooms")
	ErrInvalidRoomType    = errors.New("room type does not exist")
	ErrStorageUnavailable = errors.New("image storage is not configured")
	ErrReaderNil          = errors.New("reader is nil")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload breaks the field rules.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// translate maps repository sentinels onto service errors; notFound is the
// error to use for a missing record of the caller's resource.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	default:
		return err
	}
}
