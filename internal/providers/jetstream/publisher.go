package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/gitcoinco/passport-scorer/internal/adapter"
	"github.com/gitcoinco/passport-scorer/internal/logger"
	"github.com/gitcoinco/passport-scorer/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	json adapter.JSON
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &publisher{
		nc:   nc,
		js:   js,
		json: jsonAdapter,
	}, nil
}

// PublishScoreUpdate publishes a score update to NATS JetStream
func (p *publisher) PublishScoreUpdate(ctx context.Context, msg *messaging.ScoreUpdateMessage) error {
	logger.Debug("Publishing Nats score update", zap.Any("message", msg))

	data, err := p.json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal score update: %w", err)
	}

	subject := p.buildSubject(msg)

	_, err = p.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish score update: %w", err)
	}

	return nil
}

// buildSubject constructs the NATS subject based on the message
func (p *publisher) buildSubject(msg *messaging.ScoreUpdateMessage) string {
	// Format: scores.{community_id}.updated
	// e.g., scores.335.updated
	return fmt.Sprintf("scores.%d.updated", msg.CommunityID)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
