package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/nft-ledger/internal/api/middleware"
	"github.com/feral-file/nft-ledger/internal/api/rest"
	"github.com/feral-file/nft-ledger/internal/domain"
	"github.com/feral-file/nft-ledger/internal/ledger"
	"github.com/feral-file/nft-ledger/internal/logger"
	"github.com/feral-file/nft-ledger/internal/mocks"
	"github.com/feral-file/nft-ledger/internal/store/schema"
)

const testAPIKey = "test-api-key"

var (
	ledgerAddr = domain.Identity{0xff}
	identityX  = mustIdentity("0x396343362be2A4dA1cE0C1C210945346fb82Aa49")
	identityY  = mustIdentity("0x742d35Cc6634C0532925a3b844Bc9e7595f0bEbb")
)

func mustIdentity(s string) domain.Identity {
	id, err := domain.ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// nopSink discards ledger events; broadcaster delivery is tested elsewhere
type nopSink struct{}

func (nopSink) Emit(domain.LedgerEvent) {}

type testServer struct {
	router *gin.Engine
	ledger ledger.Ledger
	store  *mocks.MockStore
	ctrl   *gomock.Controller
}

func setupTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockClock := mocks.NewMockClock(ctrl)
	mockClock.EXPECT().Now().Return(time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)).AnyTimes()

	l := ledger.New(ledger.Config{Address: ledgerAddr}, mockClock, nopSink{})
	mockStore := mocks.NewMockStore(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(l, mockStore), middleware.AuthConfig{
		APIKeys: []string{testAPIKey},
	})

	return &testServer{
		router: router,
		ledger: l,
		store:  mockStore,
		ctrl:   ctrl,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "APIKey "+testAPIKey)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, false)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMint(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/tokens", gin.H{
		"caller": identityX.String(),
	}, true)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		TokenID uint64 `json:"token_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(0), resp.TokenID)
	assert.Equal(t, uint64(1), s.ledger.TotalSupply())
}

func TestMint_Unauthenticated(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/tokens", gin.H{
		"caller": identityX.String(),
	}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, uint64(0), s.ledger.TotalSupply())
}

func TestMint_InvalidCaller(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/tokens", gin.H{
		"caller": "not-an-address",
	}, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, uint64(0), s.ledger.TotalSupply())
}

func TestGetSupply(t *testing.T) {
	s := setupTestServer(t)

	for range 3 {
		_, err := s.ledger.Mint(identityX)
		require.NoError(t, err)
	}

	w := s.do(t, http.MethodGet, "/api/v1/supply", nil, false)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_supply":3}`, w.Body.String())
}

func TestGetToken(t *testing.T) {
	s := setupTestServer(t)

	tokenID, err := s.ledger.Mint(identityX)
	require.NoError(t, err)
	require.NoError(t, s.ledger.Approve(identityX, identityY, tokenID))

	w := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tokens/%d", tokenID), nil, false)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TokenID  uint64  `json:"token_id"`
		MintedBy string  `json:"minted_by"`
		Owner    string  `json:"owner"`
		Approved *string `json:"approved"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, tokenID, resp.TokenID)
	assert.Equal(t, identityX.String(), resp.MintedBy)
	assert.Equal(t, identityX.String(), resp.Owner)
	require.NotNil(t, resp.Approved)
	assert.Equal(t, identityY.String(), *resp.Approved)
}

func TestGetToken_NotFound(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/tokens/42", nil, false)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetToken_InvalidID(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/tokens/abc", nil, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTokens(t *testing.T) {
	s := setupTestServer(t)

	for range 2 {
		_, err := s.ledger.Mint(identityX)
		require.NoError(t, err)
	}
	_, err := s.ledger.Mint(identityY)
	require.NoError(t, err)

	w := s.do(t, http.MethodGet, "/api/v1/tokens?owner="+identityX.String(), nil, false)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TokenIDs []uint64 `json:"token_ids"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []uint64{0, 1}, resp.TokenIDs)
}

func TestListTokens_MissingOwner(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/tokens", nil, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBalance(t *testing.T) {
	s := setupTestServer(t)

	_, err := s.ledger.Mint(identityX)
	require.NoError(t, err)

	w := s.do(t, http.MethodGet, "/api/v1/owners/"+identityX.String()+"/balance", nil, false)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Balance uint64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.Balance)
}

func TestGetBalance_UnknownOwnerIsZero(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/owners/"+identityY.String()+"/balance", nil, false)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Balance uint64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(0), resp.Balance)
}

func TestCheckInterface(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name      string
		id        string
		status    int
		supported bool
	}{
		{
			name:      "capability discovery id supported",
			id:        ledger.InterfaceIDCapabilities.String(),
			status:    http.StatusOK,
			supported: true,
		},
		{
			name:      "ownership id supported",
			id:        ledger.InterfaceIDOwnership.String(),
			status:    http.StatusOK,
			supported: true,
		},
		{
			name:      "unknown id unsupported",
			id:        "0xdeadbeef",
			status:    http.StatusOK,
			supported: false,
		},
		{
			name:   "malformed id rejected",
			id:     "0x123",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/interfaces/"+tt.id, nil, false)

			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				var resp struct {
					Supported bool `json:"supported"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.supported, resp.Supported)
			}
		})
	}
}

func TestTransfer(t *testing.T) {
	s := setupTestServer(t)

	tokenID, err := s.ledger.Mint(identityX)
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tokens/%d/transfer", tokenID), gin.H{
		"caller": identityX.String(),
		"to":     identityY.String(),
	}, true)

	require.Equal(t, http.StatusNoContent, w.Code)

	owner, err := s.ledger.OwnerOf(tokenID)
	require.NoError(t, err)
	assert.Equal(t, identityY, owner)
}

func TestTransfer_Failures(t *testing.T) {
	tests := []struct {
		name   string
		caller domain.Identity
		to     string
		status int
	}{
		{
			name:   "caller not owner",
			caller: identityY,
			to:     identityY.String(),
			status: http.StatusForbidden,
		},
		{
			name:   "ledger address recipient",
			caller: identityX,
			to:     ledgerAddr.String(),
			status: http.StatusBadRequest,
		},
		{
			name:   "null recipient",
			caller: identityX,
			to:     domain.ZeroIdentity.String(),
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t)
			tokenID, err := s.ledger.Mint(identityX)
			require.NoError(t, err)

			w := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tokens/%d/transfer", tokenID), gin.H{
				"caller": tt.caller.String(),
				"to":     tt.to,
			}, true)

			assert.Equal(t, tt.status, w.Code)

			owner, err := s.ledger.OwnerOf(tokenID)
			require.NoError(t, err)
			assert.Equal(t, identityX, owner)
		})
	}
}

func TestTransferFrom(t *testing.T) {
	s := setupTestServer(t)

	tokenID, err := s.ledger.Mint(identityX)
	require.NoError(t, err)
	require.NoError(t, s.ledger.Approve(identityX, identityY, tokenID))

	w := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tokens/%d/transfer-from", tokenID), gin.H{
		"caller": identityY.String(),
		"from":   identityX.String(),
		"to":     identityY.String(),
	}, true)

	require.Equal(t, http.StatusNoContent, w.Code)

	owner, err := s.ledger.OwnerOf(tokenID)
	require.NoError(t, err)
	assert.Equal(t, identityY, owner)
}

func TestTransferFrom_NotApproved(t *testing.T) {
	s := setupTestServer(t)

	tokenID, err := s.ledger.Mint(identityX)
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tokens/%d/transfer-from", tokenID), gin.H{
		"caller": identityY.String(),
		"from":   identityX.String(),
		"to":     identityY.String(),
	}, true)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApprove(t *testing.T) {
	s := setupTestServer(t)

	tokenID, err := s.ledger.Mint(identityX)
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tokens/%d/approve", tokenID), gin.H{
		"caller": identityX.String(),
		"to":     identityY.String(),
	}, true)

	require.Equal(t, http.StatusNoContent, w.Code)

	delegate, ok := s.ledger.Approved(tokenID)
	require.True(t, ok)
	assert.Equal(t, identityY, delegate)
}

func TestListTokenEvents(t *testing.T) {
	s := setupTestServer(t)

	tokenID, err := s.ledger.Mint(identityX)
	require.NoError(t, err)

	minter := identityX.String()
	s.store.EXPECT().
		ListEventsByToken(gomock.Any(), tokenID, 50, 0).
		Return([]schema.LedgerEvent{
			{
				EventID:   "01K38Q6H9GT5K4V0B3N8W2XZJD",
				TokenID:   tokenID,
				EventType: domain.EventTypeMint,
				ToAddress: minter,
				Timestamp: time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
			},
		}, nil)

	w := s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tokens/%d/events", tokenID), nil, false)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Events []struct {
			EventID   string `json:"event_id"`
			EventType string `json:"event_type"`
			To        string `json:"to"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "mint", resp.Events[0].EventType)
	assert.Equal(t, minter, resp.Events[0].To)
}

func TestListTokenEvents_UnknownToken(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/tokens/9/events", nil, false)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
