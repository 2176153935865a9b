package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/nft-ledger/internal/domain"
)

// LedgerEvent represents the ledger_events table - the append-only journal
// of every notification the ledger has emitted, in emission order.
type LedgerEvent struct {
	// EventID is the ULID assigned at emission time; primary key, so a
	// redelivered event is journaled at most once
	EventID string `gorm:"column:event_id;primaryKey;type:text"`
	// TokenID references the token the event concerns
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_ledger_events_token_id"`
	// EventType is mint, transfer, or approval
	EventType domain.EventType `gorm:"column:event_type;not null;type:text"`
	// FromAddress is the previous owner (nil for mints) or the granting owner
	FromAddress *string `gorm:"column:from_address;type:text"`
	// ToAddress is the new owner or the approved delegate
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// Timestamp is the environment clock reading at emission time
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
	// Raw contains the complete event as JSON for debugging and replay
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this row was journaled
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEvent model
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
