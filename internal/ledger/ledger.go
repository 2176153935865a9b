// Package ledger implements the non-fungible-token ownership state machine:
// an append-only token arena plus the ownership, balance, and approval
// indexes, mutated only through the operations defined here.
//
// The ledger is a purely synchronous state transformer. All mutation
// serializes on one lock, every operation is all-or-nothing, and events are
// handed to the sink only after the lock is released, so no external code
// ever runs inside a mutation path.
package ledger

import (
	"sync"

	"github.com/feral-file/nft-ledger/internal/adapter"
	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/safemath"
)

// Sink receives exactly one event per successful state-changing operation.
// Emit is called outside the ledger lock and must not block indefinitely.
type Sink interface {
	Emit(event domain.LedgerEvent)
}

// Config holds the ledger configuration
type Config struct {
	// Address is the ledger's own identity; it is never a valid recipient
	Address domain.Identity
}

// Ledger is the token registry.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Ledger=MockLedger
type Ledger interface {
	// Mint creates a new token owned by caller and returns its id
	Mint(caller domain.Identity) (uint64, error)
	// Transfer moves a token the caller owns to another identity
	Transfer(caller, to domain.Identity, tokenID uint64) error
	// TransferFrom moves a token on behalf of its owner; the caller must be
	// the approved delegate, and the grant is consumed by the move
	TransferFrom(caller, from, to domain.Identity, tokenID uint64) error
	// Approve records to as the single delegate allowed to transfer the
	// token, replacing any earlier grant
	Approve(caller, to domain.Identity, tokenID uint64) error

	// BalanceOf returns the number of tokens owned; 0 for unknown identities
	BalanceOf(owner domain.Identity) uint64
	// OwnerOf returns the current owner of a minted token
	OwnerOf(tokenID uint64) (domain.Identity, error)
	// Approved returns the active delegate for a token, if any
	Approved(tokenID uint64) (domain.Identity, bool)
	// TokensOfOwner returns the ids owned by an identity in ascending order
	TokensOfOwner(owner domain.Identity) []uint64
	// GetToken returns the immutable mint record of a token
	GetToken(tokenID uint64) (domain.Token, error)
	// TotalSupply returns the number of tokens ever minted
	TotalSupply() uint64
	// SupportsInterface reports whether a capability tag is implemented
	SupportsInterface(id InterfaceID) bool
}

type ledger struct {
	mu sync.RWMutex

	config Config
	clock  adapter.Clock
	sink   Sink

	// records is the append-only token arena; the index is the token id
	records []domain.Token
	// owners maps token id to current owner; exactly one entry per minted token
	owners map[uint64]domain.Identity
	// balances maps owner to token count; absent reads as 0
	balances map[domain.Identity]uint64
	// approvals maps token id to at most one delegate; cleared on transfer
	approvals map[uint64]domain.Identity
}

// New creates an empty ledger.
func New(cfg Config, clock adapter.Clock, sink Sink) Ledger {
	return &ledger{
		config:    cfg,
		clock:     clock,
		sink:      sink,
		owners:    make(map[uint64]domain.Identity),
		balances:  make(map[domain.Identity]uint64),
		approvals: make(map[uint64]domain.Identity),
	}
}

// Mint creates a new token record and transfers it from the null identity
// to the caller.
func (l *ledger) Mint(caller domain.Identity) (uint64, error) {
	event, tokenID, err := l.mint(caller)
	if err != nil {
		return 0, err
	}
	l.sink.Emit(event)
	return tokenID, nil
}

func (l *ledger) mint(caller domain.Identity) (domain.LedgerEvent, uint64, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, domain.Token{
		MintedBy: caller,
		MintedAt: now,
	})

	tokenID, err := safemath.Sub(uint64(len(l.records)), 1)
	if err != nil {
		l.records = l.records[:len(l.records)-1]
		return domain.LedgerEvent{}, 0, err
	}
	l.records[tokenID].ID = tokenID

	if err := l.move(domain.ZeroIdentity, caller, tokenID); err != nil {
		l.records = l.records[:len(l.records)-1]
		return domain.LedgerEvent{}, 0, err
	}

	return domain.NewMintEvent(caller, tokenID, now), tokenID, nil
}

// Transfer moves a token the caller owns.
func (l *ledger) Transfer(caller, to domain.Identity, tokenID uint64) error {
	event, err := l.transfer(caller, to, tokenID)
	if err != nil {
		return err
	}
	l.sink.Emit(event)
	return nil
}

func (l *ledger) transfer(caller, to domain.Identity, tokenID uint64) (domain.LedgerEvent, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	owner, err := l.ownerOf(tokenID)
	if err != nil {
		return domain.LedgerEvent{}, err
	}
	if owner != caller {
		return domain.LedgerEvent{}, domain.ErrNotOwner
	}
	if err := l.validRecipient(to); err != nil {
		return domain.LedgerEvent{}, err
	}

	if err := l.move(caller, to, tokenID); err != nil {
		return domain.LedgerEvent{}, err
	}

	return domain.NewTransferEvent(caller, to, tokenID, now), nil
}

// TransferFrom moves a token on behalf of its owner, consuming the approval.
func (l *ledger) TransferFrom(caller, from, to domain.Identity, tokenID uint64) error {
	event, err := l.transferFrom(caller, from, to, tokenID)
	if err != nil {
		return err
	}
	l.sink.Emit(event)
	return nil
}

func (l *ledger) transferFrom(caller, from, to domain.Identity, tokenID uint64) (domain.LedgerEvent, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	delegate, ok := l.approvals[tokenID]
	if !ok || delegate != caller {
		return domain.LedgerEvent{}, domain.ErrNotApproved
	}

	owner, err := l.ownerOf(tokenID)
	if err != nil {
		return domain.LedgerEvent{}, err
	}
	if owner != from {
		return domain.LedgerEvent{}, domain.ErrNotOwner
	}
	if err := l.validRecipient(to); err != nil {
		return domain.LedgerEvent{}, err
	}

	if err := l.move(from, to, tokenID); err != nil {
		return domain.LedgerEvent{}, err
	}

	return domain.NewTransferEvent(from, to, tokenID, now), nil
}

// Approve records a single-use delegate for a token the caller owns.
func (l *ledger) Approve(caller, to domain.Identity, tokenID uint64) error {
	event, err := l.approve(caller, to, tokenID)
	if err != nil {
		return err
	}
	l.sink.Emit(event)
	return nil
}

func (l *ledger) approve(caller, to domain.Identity, tokenID uint64) (domain.LedgerEvent, error) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	owner, err := l.ownerOf(tokenID)
	if err != nil {
		return domain.LedgerEvent{}, err
	}
	if owner != caller {
		return domain.LedgerEvent{}, domain.ErrNotOwner
	}
	if err := l.validRecipient(to); err != nil {
		return domain.LedgerEvent{}, err
	}

	// Only the most recent grant is valid
	l.approvals[tokenID] = to

	return domain.NewApprovalEvent(owner, to, tokenID, now), nil
}

// BalanceOf returns the caller's token count; never fails.
func (l *ledger) BalanceOf(owner domain.Identity) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[owner]
}

// OwnerOf returns the current owner of a minted token.
func (l *ledger) OwnerOf(tokenID uint64) (domain.Identity, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.ownerOf(tokenID)
}

// Approved returns the active delegate for a token, if any.
func (l *ledger) Approved(tokenID uint64) (domain.Identity, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	delegate, ok := l.approvals[tokenID]
	return delegate, ok
}

// TokensOfOwner enumerates the owner's tokens in ascending id order. This is
// a linear scan over the full token population; acceptable because it is a
// read-only caller-initiated query, not part of the mutation path.
func (l *ledger) TokensOfOwner(owner domain.Identity) []uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.balances[owner] == 0 {
		return []uint64{}
	}

	tokens := make([]uint64, 0, l.balances[owner])
	for tokenID := uint64(0); tokenID < uint64(len(l.records)); tokenID++ {
		if l.owners[tokenID] == owner {
			tokens = append(tokens, tokenID)
		}
	}
	return tokens
}

// GetToken returns the immutable mint record.
func (l *ledger) GetToken(tokenID uint64) (domain.Token, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if tokenID >= uint64(len(l.records)) {
		return domain.Token{}, domain.ErrUnknownToken
	}
	return l.records[tokenID], nil
}

// TotalSupply returns the number of tokens ever minted.
func (l *ledger) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return uint64(len(l.records))
}

// SupportsInterface is a pure metadata check against the two fixed tags.
func (l *ledger) SupportsInterface(id InterfaceID) bool {
	return id == InterfaceIDCapabilities || id == InterfaceIDOwnership
}

// ownerOf is the lock-free lookup shared by reads and mutation guards.
func (l *ledger) ownerOf(tokenID uint64) (domain.Identity, error) {
	owner, ok := l.owners[tokenID]
	if !ok || owner == domain.ZeroIdentity {
		return domain.ZeroIdentity, domain.ErrUnknownToken
	}
	return owner, nil
}

// validRecipient rejects the null identity and the ledger's own address.
func (l *ledger) validRecipient(to domain.Identity) error {
	if to == domain.ZeroIdentity || to == l.config.Address {
		return domain.ErrInvalidRecipient
	}
	return nil
}

// move is the internal transfer primitive every mutation funnels through:
// increment the recipient balance, reassign ownership, and for real
// transfers (from != null) decrement the sender balance and clear any
// dangling approval so a stale delegate can never act on the token again.
// Both checked results are computed before any index is touched, so a
// failure leaves every index exactly as it was. The decrement applies to
// the incremented balance, so a self-transfer nets out to no change.
func (l *ledger) move(from, to domain.Identity, tokenID uint64) error {
	toBalance, err := safemath.Add(l.balances[to], 1)
	if err != nil {
		return err
	}

	var fromBalance uint64
	if from != domain.ZeroIdentity {
		base := l.balances[from]
		if from == to {
			base = toBalance
		}
		fromBalance, err = safemath.Sub(base, 1)
		if err != nil {
			return err
		}
	}

	l.balances[to] = toBalance
	l.owners[tokenID] = to
	if from != domain.ZeroIdentity {
		l.balances[from] = fromBalance
		delete(l.approvals, tokenID)
	}
	return nil
}
