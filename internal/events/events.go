// Package events publishes change notifications for room types and rooms.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resources.
const (
	ResourceRoomType = "room_type"
	ResourceRoom     = "room"
)

// Actions.
const (
	ActionCreated  = "created"
	ActionReplaced = "replaced"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
)

// ChangeEvent describes a successful write. Data carries the stored document,
// or nothing for deletions.
type ChangeEvent struct {
	ID         string    `json:"id"`
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resource_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

// NewChangeEvent stamps an event with a fresh ID and the current UTC time.
func NewChangeEvent(resource, action, resourceID string, data any) ChangeEvent {
	return ChangeEvent{
		ID:         uuid.New().String(),
		Resource:   resource,
		Action:     action,
		ResourceID: resourceID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers change events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	Close() error
}
