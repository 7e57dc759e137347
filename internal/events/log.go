package events

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher records change events in the application log. It is used
// when no message broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev ChangeEvent) error {
	p.log.Info("change event",
		zap.String("event_id", ev.ID),
		zap.String("resource", ev.Resource),
		zap.String("action", ev.Action),
		zap.String("resource_id", ev.ResourceID),
		zap.Time("occurred_at", ev.OccurredAt),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
