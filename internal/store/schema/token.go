package schema

import (
	"time"
)

// Token represents the tokens table - one row per minted token. The
// in-memory ledger is the source of truth; this table mirrors it for
// indexers and ops tooling.
type Token struct {
	// TokenID is the ledger-assigned sequential identifier
	TokenID uint64 `gorm:"column:token_id;primaryKey;autoIncrement:false"`
	// MintedBy is the identity that minted the token
	MintedBy string `gorm:"column:minted_by;not null;type:text;index:idx_tokens_minted_by"`
	// MintedAt is the environment clock reading at mint time
	MintedAt time.Time `gorm:"column:minted_at;not null;type:timestamptz"`
	// CurrentOwner is the owner as of the latest journaled event
	CurrentOwner string `gorm:"column:current_owner;not null;type:text;index:idx_tokens_current_owner"`
	// CreatedAt is the timestamp when this row was journaled
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Events []LedgerEvent `gorm:"foreignKey:TokenID;references:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
