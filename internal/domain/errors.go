package domain

import "errors"

var (
	// ErrUnknownToken is returned when a token id has no recorded owner
	// (never minted, or mint still in progress)
	ErrUnknownToken = errors.New("unknown token")

	// ErrNotOwner is returned when the caller does not own the token it is
	// trying to transfer or approve
	ErrNotOwner = errors.New("caller is not the token owner")

	// ErrNotApproved is returned when the caller is not the recorded
	// delegate for a delegated transfer
	ErrNotApproved = errors.New("caller is not approved for the token")

	// ErrInvalidRecipient is returned when the destination identity is null
	// or the ledger's own identity
	ErrInvalidRecipient = errors.New("invalid recipient")
)
