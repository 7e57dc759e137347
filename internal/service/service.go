// Package service implements the room type and room use cases on top of the
// repositories, object storage and the change event publisher.
package service

import (
	"context"

	"go.uber.org/zap"

	"hotelapi/internal/events"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ListResult is the service-level DTO for a page of documents.
type ListResult[T any] struct {
	Items  []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// notifier publishes change events; failures are logged and never returned.
type notifier struct {
	pub events.Publisher
	log *zap.Logger
}

func (n notifier) emit(ctx context.Context, resource, action, id string, data any) {
	if n.pub == nil {
		return
	}
	ev := events.NewChangeEvent(resource, action, id, data)
	if err := n.pub.Publish(ctx, ev); err != nil {
		n.log.Warn("publish change event failed",
			zap.String("resource", resource),
			zap.String("action", action),
			zap.String("resource_id", id),
			zap.Error(err),
		)
	}
}
