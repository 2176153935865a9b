// Package broadcaster fans ledger events out to their consumers: the NATS
// JetStream stream and the PostgreSQL provenance journal.
package broadcaster

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/logger"
	"github.com/feral-file/nft-ledger/internal/messaging"
	"github.com/feral-file/nft-ledger/internal/store"
)

// Config holds the configuration for the event broadcaster
type Config struct {
	// QueueSize bounds the buffer between the ledger and the broadcaster;
	// a full buffer back-pressures ledger mutations
	QueueSize int
	// JournalWorkers is the size of the journal write pool
	JournalWorkers int
	// MaxRetryElapsed caps the exponential backoff per delivery; zero
	// retries until the context is canceled
	MaxRetryElapsed time.Duration
}

// Broadcaster receives every ledger event and delivers it downstream.
// Publish order on the broker is emission order; journal writes may lag but
// never drop.
//
//go:generate mockgen -source=broadcaster.go -destination=../mocks/broadcaster.go -package=mocks -mock_names=Broadcaster=MockBroadcaster
type Broadcaster interface {
	// Emit accepts a ledger event for delivery; it satisfies ledger.Sink
	Emit(event domain.LedgerEvent)
	// Run delivers events until the context is canceled
	Run(ctx context.Context) error
	// Close drains the journal pool
	Close()
}

type broadcaster struct {
	events    chan domain.LedgerEvent
	publisher messaging.Publisher
	store     store.Store
	pool      pond.Pool
	config    Config
}

// New creates a broadcaster wired to a publisher and the journal.
func New(pub messaging.Publisher, st store.Store, cfg Config) Broadcaster {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.JournalWorkers <= 0 {
		cfg.JournalWorkers = 4
	}

	return &broadcaster{
		events:    make(chan domain.LedgerEvent, cfg.QueueSize),
		publisher: pub,
		store:     st,
		pool:      pond.NewPool(cfg.JournalWorkers),
		config:    cfg,
	}
}

// Emit accepts a ledger event for delivery. Blocks when the buffer is full
// rather than dropping: consumers rely on exactly one delivery per mutation.
func (b *broadcaster) Emit(event domain.LedgerEvent) {
	b.events <- event
}

// Run delivers events until the context is canceled. The broker publish
// happens inline so stream order matches emission order; the journal write
// is handed to the pool, where the ULID primary key preserves logical order.
func (b *broadcaster) Run(ctx context.Context) error {
	logger.Info("Starting event broadcaster",
		zap.Int("queue_size", b.config.QueueSize),
		zap.Int("journal_workers", b.config.JournalWorkers),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-b.events:
			if err := b.publish(ctx, &event); err != nil {
				return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
			}

			b.pool.Submit(func() {
				if err := b.journal(ctx, &event); err != nil {
					logger.ErrorCtx(ctx, err, zap.String("event_id", event.ID))
				}
			})
		}
	}
}

// Close drains the journal pool
func (b *broadcaster) Close() {
	b.pool.StopAndWait()
}

func (b *broadcaster) publish(ctx context.Context, event *domain.LedgerEvent) error {
	operation := func() error {
		return b.publisher.PublishEvent(ctx, event)
	}

	return backoff.Retry(operation, backoff.WithContext(b.newBackOff(), ctx))
}

func (b *broadcaster) journal(ctx context.Context, event *domain.LedgerEvent) error {
	operation := func() error {
		return b.store.JournalEvent(ctx, event)
	}

	return backoff.Retry(operation, backoff.WithContext(b.newBackOff(), ctx))
}

func (b *broadcaster) newBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = b.config.MaxRetryElapsed
	return bo
}
