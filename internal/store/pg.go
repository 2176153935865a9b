package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the journal tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schema.Token{}, &schema.LedgerEvent{}); err != nil {
		return fmt.Errorf("failed to migrate journal schema: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// JournalEvent appends the event and keeps the token mirror row current.
// The event row's primary key is the ULID, so redelivery is idempotent.
func (s *pgStore) JournalEvent(ctx context.Context, event *domain.LedgerEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}

	row := schema.LedgerEvent{
		EventID:     event.ID,
		TokenID:     event.TokenID,
		EventType:   event.Type,
		FromAddress: event.From,
		ToAddress:   event.To,
		Timestamp:   event.Timestamp,
		Raw:         datatypes.JSON(raw),
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if result.Error != nil {
			return fmt.Errorf("failed to journal event %s: %w", event.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			// Already journaled; the token row is current too
			return nil
		}

		switch event.Type {
		case domain.EventTypeMint:
			token := schema.Token{
				TokenID:      event.TokenID,
				MintedBy:     event.To,
				MintedAt:     event.Timestamp,
				CurrentOwner: event.To,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&token).Error; err != nil {
				return fmt.Errorf("failed to journal token %d: %w", event.TokenID, err)
			}
		case domain.EventTypeTransfer:
			if err := tx.Model(&schema.Token{}).
				Where("token_id = ?", event.TokenID).
				Updates(map[string]interface{}{
					"current_owner": event.To,
					"updated_at":    event.Timestamp,
				}).Error; err != nil {
				return fmt.Errorf("failed to update owner of token %d: %w", event.TokenID, err)
			}
		case domain.EventTypeApproval:
			// Approvals don't change the mirror row
		}

		return nil
	})
}

// GetToken retrieves a journaled token row by id
func (s *pgStore) GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).First(&token, "token_id = ?", tokenID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownToken
		}
		return nil, fmt.Errorf("failed to get token %d: %w", tokenID, err)
	}
	return &token, nil
}

// ListEventsByToken returns a token's events in emission order. ULIDs sort
// lexicographically in emission order, so ordering by the primary key is
// ordering by time.
func (s *pgStore) ListEventsByToken(ctx context.Context, tokenID uint64, limit, offset int) ([]schema.LedgerEvent, error) {
	var events []schema.LedgerEvent
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("event_id asc").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events for token %d: %w", tokenID, err)
	}
	return events, nil
}

// LatestEventID returns the id of the most recently journaled event
func (s *pgStore) LatestEventID(ctx context.Context) (string, error) {
	var event schema.LedgerEvent
	err := s.db.WithContext(ctx).Order("event_id desc").First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get latest event id: %w", err)
	}
	return event.EventID, nil
}
