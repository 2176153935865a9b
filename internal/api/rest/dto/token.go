package dto

import (
	"time"
)

// MintRequest is the body of POST /api/v1/tokens
type MintRequest struct {
	// Caller supplies the minter address for API-key authenticated
	// requests; ignored under JWT auth (the token subject wins)
	Caller string `json:"caller,omitempty"`
}

// TransferRequest is the body of POST /api/v1/tokens/:id/transfer
type TransferRequest struct {
	Caller string `json:"caller,omitempty"`
	To     string `json:"to" binding:"required"`
}

// TransferFromRequest is the body of POST /api/v1/tokens/:id/transfer-from
type TransferFromRequest struct {
	Caller string `json:"caller,omitempty"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
}

// ApproveRequest is the body of POST /api/v1/tokens/:id/approve
type ApproveRequest struct {
	Caller string `json:"caller,omitempty"`
	To     string `json:"to" binding:"required"`
}

// TokenResponse represents a token record with its live ownership state
type TokenResponse struct {
	TokenID  uint64    `json:"token_id"`
	MintedBy string    `json:"minted_by"`
	MintedAt time.Time `json:"minted_at"`
	Owner    string    `json:"owner"`
	Approved *string   `json:"approved,omitempty"`
}

// MintResponse carries the id assigned to a freshly minted token
type MintResponse struct {
	TokenID uint64 `json:"token_id"`
}

// SupplyResponse reports the total number of minted tokens
type SupplyResponse struct {
	TotalSupply uint64 `json:"total_supply"`
}

// BalanceResponse reports the number of tokens held by an owner
type BalanceResponse struct {
	Owner   string `json:"owner"`
	Balance uint64 `json:"balance"`
}

// TokenListResponse is the result of an owner token enumeration
type TokenListResponse struct {
	Owner    string   `json:"owner"`
	TokenIDs []uint64 `json:"token_ids"`
}

// InterfaceResponse reports whether an interface id is supported
type InterfaceResponse struct {
	InterfaceID string `json:"interface_id"`
	Supported   bool   `json:"supported"`
}

// EventResponse represents a journaled ledger event
type EventResponse struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	TokenID   uint64    `json:"token_id"`
	From      *string   `json:"from,omitempty"`
	To        string    `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// EventListResponse is a page of journaled events for a token
type EventListResponse struct {
	TokenID uint64          `json:"token_id"`
	Events  []EventResponse `json:"items"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}
