package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/staffing-service/internal/config"
	"github.com/spec-kit/staffing-service/internal/events"
	"github.com/spec-kit/staffing-service/internal/observability"
)

// EventPublisher forwards encoded events to an external channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// ChangeFeed logs every change event, counts it and forwards it to the publisher when one is set.
type ChangeFeed struct {
	dispatcher events.Dispatcher
	publisher  EventPublisher
	channel    string
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewChangeFeed creates the feed. publisher may be nil.
func NewChangeFeed(dispatcher events.Dispatcher, publisher EventPublisher, cfg config.EventsConfig, metrics *observability.Metrics, logger *zap.Logger) *ChangeFeed {
	return &ChangeFeed{
		dispatcher: dispatcher,
		publisher:  publisher,
		channel:    cfg.Channel,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (f *ChangeFeed) RegisterHandlers() {
	if f.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllTypes {
		f.dispatcher.Subscribe(eventType, f.handle)
	}
}

func (f *ChangeFeed) handle(ctx context.Context, event events.Event) error {
	f.logger.Info("change",
		zap.String("event_type", string(event.Type)),
		zap.String("entity", event.Entity),
		zap.String("entity_id", event.EntityID))
	f.metrics.RecordOperation(event.Entity, operationOf(event.Type), "ok")

	if f.publisher == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := f.publisher.Publish(ctx, f.channel, payload); err != nil {
		f.logger.Warn("publish change failed", zap.String("channel", f.channel), zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	return nil
}

// operationOf takes the verb suffix of an event type, e.g. "created" from "area_created".
func operationOf(eventType events.EventType) string {
	name := string(eventType)
	if i := strings.LastIndex(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}
