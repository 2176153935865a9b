package store

import (
	"context"

	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/store/schema"
)

// Store defines the interface for the provenance journal
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// JournalEvent appends a ledger event and updates the token mirror row.
	// Journaling the same event id twice is a no-op.
	JournalEvent(ctx context.Context, event *domain.LedgerEvent) error
	// GetToken retrieves a journaled token row by id
	GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error)
	// ListEventsByToken returns a token's events in emission order
	ListEventsByToken(ctx context.Context, tokenID uint64, limit, offset int) ([]schema.LedgerEvent, error)
	// LatestEventID returns the id of the most recently journaled event,
	// or the empty string for an empty journal
	LatestEventID(ctx context.Context) (string, error)
}
