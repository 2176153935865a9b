package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/nft-ledger/internal/domain"
)

func TestParseIdentity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid checksummed address",
			input: "0x396343362be2A4dA1cE0C1C210945346fb82Aa49",
		},
		{
			name:  "valid lowercase address",
			input: "0x396343362be2a4da1ce0c1c210945346fb82aa49",
		},
		{
			name:  "zero address parses",
			input: "0x0000000000000000000000000000000000000000",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "0x1234",
			wantErr: true,
		},
		{
			name:    "not hex",
			input:   "0xZZ6343362be2A4dA1cE0C1C210945346fb82Aa49",
			wantErr: true,
		},
		{
			name:    "tezos address",
			input:   "KT1BvXTW1XqhE1GHTRKRvz8w3a7X5f5NqEZr",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := domain.ParseIdentity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.NormalizeAddress(tt.input), id.String())
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0x396343362be2A4dA1cE0C1C210945346fb82Aa49",
		domain.NormalizeAddress("0x396343362be2a4da1ce0c1c210945346fb82aa49"),
	)

	// Non-address input passes through untouched
	assert.Equal(t, "not-an-address", domain.NormalizeAddress("not-an-address"))
}

func TestLedgerEvent_Valid(t *testing.T) {
	now := time.Now()
	owner, err := domain.ParseIdentity("0x396343362be2A4dA1cE0C1C210945346fb82Aa49")
	assert.NoError(t, err)
	other, err := domain.ParseIdentity("0x742d35Cc6634C0532925a3b844Bc9e7595f0bEbb")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		event    domain.LedgerEvent
		expected bool
	}{
		{
			name:     "valid mint",
			event:    domain.NewMintEvent(owner, 0, now),
			expected: true,
		},
		{
			name:     "valid transfer",
			event:    domain.NewTransferEvent(owner, other, 3, now),
			expected: true,
		},
		{
			name:     "valid approval",
			event:    domain.NewApprovalEvent(owner, other, 3, now),
			expected: true,
		},
		{
			name: "mint with sender is invalid",
			event: func() domain.LedgerEvent {
				e := domain.NewMintEvent(owner, 0, now)
				from := other.String()
				e.From = &from
				return e
			}(),
			expected: false,
		},
		{
			name: "transfer without sender is invalid",
			event: func() domain.LedgerEvent {
				e := domain.NewTransferEvent(owner, other, 1, now)
				e.From = nil
				return e
			}(),
			expected: false,
		},
		{
			name: "missing id is invalid",
			event: func() domain.LedgerEvent {
				e := domain.NewMintEvent(owner, 0, now)
				e.ID = ""
				return e
			}(),
			expected: false,
		},
		{
			name: "unknown type is invalid",
			event: func() domain.LedgerEvent {
				e := domain.NewMintEvent(owner, 0, now)
				e.Type = domain.EventType("burn")
				return e
			}(),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Valid())
		})
	}
}

func TestNewEventIDsAreULIDs(t *testing.T) {
	owner, err := domain.ParseIdentity("0x396343362be2A4dA1cE0C1C210945346fb82Aa49")
	assert.NoError(t, err)

	a := domain.NewMintEvent(owner, 0, time.Now())
	b := domain.NewMintEvent(owner, 1, time.Now())

	assert.Len(t, a.ID, 26)
	assert.Len(t, b.ID, 26)
	assert.NotEqual(t, a.ID, b.ID)
}
