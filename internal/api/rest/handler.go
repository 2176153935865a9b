package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/nft-ledger/internal/api/middleware"
	"github.com/feral-file/nft-ledger/internal/api/rest/dto"
	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/ledger"
	"github.com/feral-file/nft-ledger/internal/store"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetSupply returns the total number of minted tokens
	// GET /api/v1/supply
	GetSupply(c *gin.Context)

	// GetToken returns a token's mint record, current owner, and any
	// active approval
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// ListTokens enumerates the tokens held by an owner
	// GET /api/v1/tokens?owner=<address>
	ListTokens(c *gin.Context)

	// GetBalance returns an owner's token count
	// GET /api/v1/owners/:address/balance
	GetBalance(c *gin.Context)

	// CheckInterface reports whether a 4-byte interface id is supported
	// GET /api/v1/interfaces/:id
	CheckInterface(c *gin.Context)

	// ListTokenEvents returns the journaled provenance of a token
	// GET /api/v1/tokens/:id/events?limit=<limit>&offset=<offset>
	ListTokenEvents(c *gin.Context)

	// Mint creates a new token owned by the caller (requires authentication)
	// POST /api/v1/tokens
	Mint(c *gin.Context)

	// Transfer moves a token the caller owns (requires authentication)
	// POST /api/v1/tokens/:id/transfer
	Transfer(c *gin.Context)

	// TransferFrom moves a token on behalf of its owner; the caller must be
	// the approved delegate (requires authentication)
	// POST /api/v1/tokens/:id/transfer-from
	TransferFrom(c *gin.Context)

	// Approve records the caller's delegate for a token (requires authentication)
	// POST /api/v1/tokens/:id/approve
	Approve(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	ledger ledger.Ledger
	store  store.Store
}

// NewHandler creates a new REST API handler over the ledger and the
// provenance journal.
func NewHandler(l ledger.Ledger, s store.Store) Handler {
	return &handler{
		ledger: l,
		store:  s,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// GetSupply returns the total number of minted tokens
func (h *handler) GetSupply(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SupplyResponse{
		TotalSupply: h.ledger.TotalSupply(),
	})
}

// GetToken returns a token's mint record plus its live ownership state
func (h *handler) GetToken(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	token, err := h.ledger.GetToken(tokenID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	owner, err := h.ledger.OwnerOf(tokenID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	response := dto.TokenResponse{
		TokenID:  token.ID,
		MintedBy: token.MintedBy.String(),
		MintedAt: token.MintedAt,
		Owner:    owner.String(),
	}
	if delegate, ok := h.ledger.Approved(tokenID); ok {
		d := delegate.String()
		response.Approved = &d
	}

	c.JSON(http.StatusOK, response)
}

// ListTokens enumerates the tokens held by an owner
func (h *handler) ListTokens(c *gin.Context) {
	ownerParam := c.Query("owner")
	if ownerParam == "" {
		respondBadRequest(c, "Owner address is required")
		return
	}

	owner, err := domain.ParseIdentity(ownerParam)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.TokenListResponse{
		Owner:    owner.String(),
		TokenIDs: h.ledger.TokensOfOwner(owner),
	})
}

// GetBalance returns an owner's token count
func (h *handler) GetBalance(c *gin.Context) {
	owner, err := domain.ParseIdentity(c.Param("address"))
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Owner:   owner.String(),
		Balance: h.ledger.BalanceOf(owner),
	})
}

// CheckInterface reports whether a 4-byte interface id is supported
func (h *handler) CheckInterface(c *gin.Context) {
	id, err := ledger.ParseInterfaceID(c.Param("id"))
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.InterfaceResponse{
		InterfaceID: id.String(),
		Supported:   h.ledger.SupportsInterface(id),
	})
}

// ListTokenEvents returns the journaled provenance of a token
func (h *handler) ListTokenEvents(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	limit := 50
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			respondValidationError(c, "limit must be an integer between 1 and 200")
			return
		}
		limit = parsed
	}
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondValidationError(c, "offset must be a non-negative integer")
			return
		}
		offset = parsed
	}

	// Unknown tokens 404 before hitting the journal
	if _, err := h.ledger.GetToken(tokenID); err != nil {
		respondDomainError(c, err)
		return
	}

	events, err := h.store.ListEventsByToken(c.Request.Context(), tokenID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list token events",
			zap.Uint64("token_id", tokenID))
		return
	}

	response := dto.EventListResponse{
		TokenID: tokenID,
		Events:  make([]dto.EventResponse, 0, len(events)),
		Limit:   limit,
		Offset:  offset,
	}
	for _, event := range events {
		response.Events = append(response.Events, dto.EventResponse{
			EventID:   event.EventID,
			EventType: string(event.EventType),
			TokenID:   event.TokenID,
			From:      event.FromAddress,
			To:        event.ToAddress,
			Timestamp: event.Timestamp,
		})
	}

	c.JSON(http.StatusOK, response)
}

// Mint creates a new token owned by the caller
func (h *handler) Mint(c *gin.Context) {
	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondValidationError(c, err.Error())
		return
	}

	caller, ok := callerIdentity(c, req.Caller)
	if !ok {
		return
	}

	tokenID, err := h.ledger.Mint(caller)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MintResponse{TokenID: tokenID})
}

// Transfer moves a token the caller owns
func (h *handler) Transfer(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller, ok := callerIdentity(c, req.Caller)
	if !ok {
		return
	}
	to, err := domain.ParseIdentity(req.To)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.ledger.Transfer(caller, to, tokenID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TransferFrom moves a token on behalf of its owner
func (h *handler) TransferFrom(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req dto.TransferFromRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller, ok := callerIdentity(c, req.Caller)
	if !ok {
		return
	}
	from, err := domain.ParseIdentity(req.From)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	to, err := domain.ParseIdentity(req.To)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.ledger.TransferFrom(caller, from, to, tokenID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Approve records the caller's delegate for a token
func (h *handler) Approve(c *gin.Context) {
	tokenID, ok := parseTokenID(c)
	if !ok {
		return
	}

	var req dto.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller, ok := callerIdentity(c, req.Caller)
	if !ok {
		return
	}
	to, err := domain.ParseIdentity(req.To)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.ledger.Approve(caller, to, tokenID); err != nil {
		respondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseTokenID parses the :id path parameter, responding with 400 on failure
func parseTokenID(c *gin.Context) (uint64, bool) {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token id", err.Error())
		return 0, false
	}
	return tokenID, true
}

// callerIdentity resolves the authenticated caller address. Under JWT auth
// the token subject is authoritative; under API-key auth the request body's
// caller field supplies it. Requests with no parseable caller are rejected
// before the ledger is touched.
func callerIdentity(c *gin.Context, bodyCaller string) (domain.Identity, bool) {
	raw := bodyCaller
	if c.GetString(middleware.AUTH_TYPE_KEY) == middleware.AuthTypeJWT {
		raw = c.GetString(middleware.AUTH_SUBJECT_KEY)
	}

	caller, err := domain.ParseIdentity(raw)
	if err != nil {
		respondBadRequest(c, "Caller address is missing or invalid", err.Error())
		return domain.ZeroIdentity, false
	}
	return caller, true
}

// respondDomainError maps ledger errors onto HTTP status codes
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownToken):
		respondNotFound(c, "Token not found")
	case errors.Is(err, domain.ErrNotOwner):
		respondForbidden(c, "Caller does not own the token")
	case errors.Is(err, domain.ErrNotApproved):
		respondForbidden(c, "Caller is not the approved delegate")
	case errors.Is(err, domain.ErrInvalidRecipient):
		respondBadRequest(c, "Invalid recipient address")
	default:
		respondInternalError(c, err, "Ledger operation failed")
	}
}
