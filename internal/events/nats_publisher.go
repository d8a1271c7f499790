package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/logger"

	"github.com/nats-io/nats.go"
)

type natsPublisher struct {
	conn *nats.Conn
}

// NewPublisher connects to NATS at url. An empty url returns a publisher that drops
// every event.
func NewPublisher(url string) (domain.EventPublisher, error) {
	if url == "" {
		logger.Log.Info("NATS_URL not configured, domain events disabled")
		return Noop(), nil
	}

	opts := []nats.Option{
		nats.Name("simhire-api"),
		nats.Timeout(5 * time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Log.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Log.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	return &natsPublisher{conn: conn}, nil
}

func (p *natsPublisher) Publish(ctx context.Context, event domain.Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	if err := p.conn.Publish(event.Subject, data); err != nil {
		logger.Log.ErrorContext(ctx, "failed to publish event",
			"subject", event.Subject,
			"entity_id", event.EntityID,
			"error", err)
		return fmt.Errorf("publishing to NATS: %w", err)
	}

	logger.Log.DebugContext(ctx, "published event",
		"subject", event.Subject,
		"entity_id", event.EntityID,
		"size", len(data))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

type noopPublisher struct{}

// Noop returns a publisher that discards events.
func Noop() domain.EventPublisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, domain.Event) error { return nil }
func (noopPublisher) Close()                                      {}
