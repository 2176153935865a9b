package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Token is the immutable record created at mint time. Only provenance is
// stored here; current ownership and approval live in the ledger indexes.
type Token struct {
	// ID is the sequential token identifier, assigned from 0 and never reused
	ID uint64 `json:"id"`
	// MintedBy is the identity that minted the token
	MintedBy Identity `json:"minted_by"`
	// MintedAt is the environment clock reading at mint time, stored for
	// provenance and never interpreted by the ledger
	MintedAt time.Time `json:"minted_at"`
}

// EventType represents the type of ledger event
type EventType string

const (
	EventTypeMint     EventType = "mint"
	EventTypeTransfer EventType = "transfer"
	EventTypeApproval EventType = "approval"
)

// LedgerEvent is the notification emitted exactly once per successful
// state-changing operation. This is the format published to NATS and
// appended to the provenance journal.
type LedgerEvent struct {
	// ID is a ULID assigned at emission time, monotonic per emission order
	ID string `json:"id"`
	// Type is mint, transfer, or approval
	Type EventType `json:"type"`
	// TokenID is the token the event concerns
	TokenID uint64 `json:"token_id"`
	// From is the previous owner for transfers, the granting owner for
	// approvals, and nil for mints
	From *string `json:"from"`
	// To is the new owner for mints and transfers, the delegate for approvals
	To string `json:"to"`
	// Timestamp is the environment clock reading at emission time
	Timestamp time.Time `json:"timestamp"`
}

// NewMintEvent builds a Mint(owner, tokenId) event.
func NewMintEvent(owner Identity, tokenID uint64, now time.Time) LedgerEvent {
	return LedgerEvent{
		ID:        ulid.MustNewDefault(now).String(),
		Type:      EventTypeMint,
		TokenID:   tokenID,
		To:        owner.String(),
		Timestamp: now,
	}
}

// NewTransferEvent builds a Transfer(from, to, tokenId) event.
func NewTransferEvent(from, to Identity, tokenID uint64, now time.Time) LedgerEvent {
	f := from.String()
	return LedgerEvent{
		ID:        ulid.MustNewDefault(now).String(),
		Type:      EventTypeTransfer,
		TokenID:   tokenID,
		From:      &f,
		To:        to.String(),
		Timestamp: now,
	}
}

// NewApprovalEvent builds an Approval(owner, approved, tokenId) event.
func NewApprovalEvent(owner, approved Identity, tokenID uint64, now time.Time) LedgerEvent {
	o := owner.String()
	return LedgerEvent{
		ID:        ulid.MustNewDefault(now).String(),
		Type:      EventTypeApproval,
		TokenID:   tokenID,
		From:      &o,
		To:        approved.String(),
		Timestamp: now,
	}
}

// Valid reports whether the event is well-formed for its type.
func (e *LedgerEvent) Valid() bool {
	if e.ID == "" || e.To == "" {
		return false
	}

	switch e.Type {
	case EventTypeMint:
		// Mints have no sender
		return e.From == nil
	case EventTypeTransfer, EventTypeApproval:
		return e.From != nil && *e.From != ""
	default:
		return false
	}
}
