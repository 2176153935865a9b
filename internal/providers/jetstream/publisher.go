// Package jetstream publishes ledger events to NATS JetStream.
package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/nft-ledger/internal/adapter"
	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/logger"
	"github.com/feral-file/nft-ledger/internal/messaging"
)

// Config holds the configuration for the NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc            adapter.NatsConn
	js            adapter.JetStream
	subjectPrefix string
	json          adapter.JSON
	closeCh       chan struct{}
}

// NewPublisher connects to NATS, ensures the event stream exists, and
// returns a publisher for ledger events.
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	closeCh := make(chan struct{})

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
			close(closeCh)
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	// The stream carries every ledger event; consumers filter by subject
	if _, err := js.CreateOrUpdateStream(ctx, natsjs.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{cfg.SubjectPrefix + ".>"},
	}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:            nc,
		js:            js,
		subjectPrefix: cfg.SubjectPrefix,
		json:          jsonAdapter,
		closeCh:       closeCh,
	}, nil
}

// PublishEvent publishes a ledger event to NATS JetStream
func (p *publisher) PublishEvent(ctx context.Context, event *domain.LedgerEvent) error {
	logger.Debug("Publishing ledger event", zap.Any("event", event))

	data, err := p.json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Format: <prefix>.<event_type>, e.g. ledger.events.transfer
	subject := fmt.Sprintf("%s.%s", p.subjectPrefix, event.Type)

	if _, err := p.js.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}

// CloseChan returns a channel that is closed when the connection closes
func (p *publisher) CloseChan() <-chan struct{} {
	return p.closeCh
}
