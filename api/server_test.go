package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/tl-lottery/app"
	"github.com/pushchain/tl-lottery/config"
	"github.com/pushchain/tl-lottery/indexer"
	"github.com/pushchain/tl-lottery/indexer/db"
	"github.com/pushchain/tl-lottery/ledger"
	sdk "github.com/pushchain/tl-lottery/types"
	lotterytypes "github.com/pushchain/tl-lottery/x/lottery/types"
)

var (
	alice = sdk.BytesToAddress([]byte{0xa1})
	bob   = sdk.BytesToAddress([]byte{0xb0})
)

type testServer struct {
	server  *Server
	handler http.Handler
	node    *app.App
}

func setupServer(t *testing.T, devMode bool) *testServer {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))

	database, err := db.OpenInMemoryDB(true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	ix := indexer.New(database, logger)

	clock := app.NewOffsetClock()
	node := app.New(ledger.NewMemStore(), log.NewNopLogger(),
		app.WithClock(clock),
		app.WithReceiptSink(ix),
		app.WithInvariantChecks(true),
	)

	gs, err := app.GenesisFromConfig(config.GenesisConfig{
		RoundZeroStart:          time.Now().Unix() - 10,
		PurchaseDurationSeconds: 100,
		RevealDurationSeconds:   50,
		TicketPrice:             "10",
		TokenName:               "TL Token",
		TokenSymbol:             "TL",
		TokenDecimals:           18,
		Accounts: []config.GenesisAccount{
			{Address: alice.String(), Amount: "100"},
			{Address: bob.String(), Amount: "100"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, node.InitChain(context.Background(), gs))

	opts := []Option{WithReceipts(ix)}
	if devMode {
		opts = append(opts, WithTimeMachine(clock))
	}
	s := NewServer(logger, 0, node, opts...)
	return &testServer{server: s, handler: s.Handler(), node: node}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) ok(t *testing.T, method, path string, body interface{}) map[string]interface{} {
	t.Helper()
	w := ts.do(t, method, path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func data(resp map[string]interface{}) map[string]interface{} {
	return resp["data"].(map[string]interface{})
}

func TestHandleHealth(t *testing.T) {
	ts := setupServer(t, false)

	w := ts.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestStatusAndPhases(t *testing.T) {
	ts := setupServer(t, false)

	status := ts.ok(t, http.MethodGet, "/api/v1/status", nil)
	assert.Equal(t, float64(1), status["height"])
	assert.Equal(t, float64(0), status["lottery_no"])
	assert.Equal(t, true, status["purchase_active"])
	assert.Equal(t, false, status["reveal_active"])
	assert.Equal(t, false, status["dev_mode"])

	assert.Equal(t, true, data(ts.ok(t, http.MethodGet, "/api/v1/purchase-active", nil))["active"])
	assert.Equal(t, false, data(ts.ok(t, http.MethodGet, "/api/v1/reveal-active", nil))["active"])

	params := data(ts.ok(t, http.MethodGet, "/api/v1/params", nil))["params"].(map[string]interface{})
	assert.Equal(t, "10", params["ticket_price"])

	start := int64(params["round_zero_start"].(float64))
	no := data(ts.ok(t, http.MethodGet, fmt.Sprintf("/api/v1/lottery-no?timestamp=%d", start+150), nil))
	assert.Equal(t, float64(1), no["lottery_no"])

	w := ts.do(t, http.MethodGet, fmt.Sprintf("/api/v1/lottery-no?timestamp=%d", start-1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"codespace":"lottery"`)

	w = ts.do(t, http.MethodGet, "/api/v1/lottery-no?timestamp=soon", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLotteryRoundOverHTTP(t *testing.T) {
	ts := setupServer(t, true)
	module := lotterytypes.ModuleAddress.String()

	secrets := map[sdk.Address]*uint256.Int{alice: uint256.NewInt(42), bob: uint256.NewInt(43)}
	tickets := map[sdk.Address]uint64{}

	for _, who := range []sdk.Address{alice, bob} {
		ts.ok(t, http.MethodPost, "/api/v1/token/approve", approveRequest{From: who.String(), Spender: module, Amount: "20"})
		deposit := ts.ok(t, http.MethodPost, "/api/v1/deposit", amountRequest{From: who.String(), Amount: "20"})
		assert.Equal(t, true, deposit["success"])
		assert.Equal(t, "20", deposit["result"].(map[string]interface{})["balance"])

		commitment := ts.ok(t, http.MethodPost, "/api/v1/commitment", commitmentRequest{Owner: who.String(), Secret: secrets[who].Dec()})
		buy := ts.ok(t, http.MethodPost, "/api/v1/tickets", buyTicketRequest{From: who.String(), Commitment: commitment["commitment"].(string)})
		tickets[who] = uint64(buy["result"].(map[string]interface{})["ticket_id"].(float64))
	}

	owner := data(ts.ok(t, http.MethodGet, fmt.Sprintf("/api/v1/tickets/%d/owner", tickets[bob]), nil))
	assert.Equal(t, bob.String(), owner["owner"])

	last := data(ts.ok(t, http.MethodGet, fmt.Sprintf("/api/v1/rounds/0/owners/%s/last", alice), nil))
	assert.Equal(t, float64(tickets[alice]), last["ticket_id"])

	total := data(ts.ok(t, http.MethodGet, "/api/v1/rounds/0/total", nil))
	assert.Equal(t, "20", total["amount"])

	// revealing during the purchase phase is rejected
	w := ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tickets/%d/reveal", tickets[alice]), revealRequest{From: alice.String(), Secret: "42"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phase")

	ts.ok(t, http.MethodPost, "/api/v1/dev/increase-time", increaseTimeRequest{Seconds: 100})
	assert.Equal(t, true, data(ts.ok(t, http.MethodGet, "/api/v1/reveal-active", nil))["active"])

	// bob cannot reveal alice's ticket
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tickets/%d/reveal", tickets[alice]), revealRequest{From: bob.String(), Secret: "42"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, who := range []sdk.Address{alice, bob} {
		ts.ok(t, http.MethodPost, fmt.Sprintf("/api/v1/tickets/%d/reveal", tickets[who]), revealRequest{From: who.String(), Secret: secrets[who].Dec()})
	}

	ts.ok(t, http.MethodPost, "/api/v1/dev/increase-time", increaseTimeRequest{Seconds: 50})

	round := data(ts.ok(t, http.MethodGet, "/api/v1/rounds/0", nil))["round"].(map[string]interface{})
	assert.Equal(t, true, round["closed"])
	assert.Equal(t, float64(2), round["revealed_count"])

	first := data(ts.ok(t, http.MethodGet, "/api/v1/rounds/0/winners/1", nil))
	assert.Equal(t, "15", first["prize"])

	sum := 0
	for _, who := range []sdk.Address{alice, bob} {
		won := data(ts.ok(t, http.MethodGet, fmt.Sprintf("/api/v1/tickets/%d/prize", tickets[who]), nil))
		collected := ts.ok(t, http.MethodPost, fmt.Sprintf("/api/v1/tickets/%d/prize", tickets[who]), senderRequest{From: who.String()})
		prize := collected["result"].(map[string]interface{})["prize"].(string)
		assert.Equal(t, won["prize"], prize)

		var n int
		_, err := fmt.Sscan(prize, &n)
		require.NoError(t, err)
		sum += n
	}
	assert.Equal(t, 20, sum)

	// claiming twice conflicts
	w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/v1/tickets/%d/prize", tickets[alice]), senderRequest{From: alice.String()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already claimed")

	for _, who := range []sdk.Address{alice, bob} {
		bal := data(ts.ok(t, http.MethodGet, "/api/v1/balances/"+who.String(), nil))["balance"].(string)
		ts.ok(t, http.MethodPost, "/api/v1/withdraw", amountRequest{From: who.String(), Amount: bal})
	}
	custody := data(ts.ok(t, http.MethodGet, "/api/v1/token/balances/"+module, nil))
	assert.Equal(t, "0", custody["amount"])

	receipts := ts.ok(t, http.MethodGet, "/api/v1/receipts?operation=buy_ticket", nil)["data"].([]interface{})
	assert.Len(t, receipts, 2)

	failed := ts.ok(t, http.MethodGet, "/api/v1/receipts?failed=true", nil)["data"].([]interface{})
	assert.Len(t, failed, 3)
}

func TestRequestValidation(t *testing.T) {
	ts := setupServer(t, false)

	testCases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		code   int
	}{
		{name: "bad address", method: http.MethodGet, path: "/api/v1/balances/0xzz", code: http.StatusBadRequest},
		{name: "bad amount", method: http.MethodPost, path: "/api/v1/deposit", body: amountRequest{From: alice.String(), Amount: "ten"}, code: http.StatusBadRequest},
		{name: "negative amount", method: http.MethodPost, path: "/api/v1/deposit", body: amountRequest{From: alice.String(), Amount: "-1"}, code: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/api/v1/deposit", body: map[string]string{"sender": alice.String()}, code: http.StatusBadRequest},
		{name: "bad commitment", method: http.MethodPost, path: "/api/v1/tickets", body: buyTicketRequest{From: alice.String(), Commitment: "0x12"}, code: http.StatusBadRequest},
		{name: "insufficient escrow", method: http.MethodPost, path: "/api/v1/tickets", body: buyTicketRequest{From: alice.String(), Commitment: lotterytypes.ComputeCommitment(uint256.NewInt(1), alice).String()}, code: http.StatusBadRequest},
		{name: "unknown ticket", method: http.MethodGet, path: "/api/v1/tickets/99", code: http.StatusNotFound},
		{name: "unknown ticket owner", method: http.MethodGet, path: "/api/v1/tickets/99/owner", code: http.StatusNotFound},
		{name: "non numeric ticket", method: http.MethodGet, path: "/api/v1/tickets/abc", code: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/api/v1/deposit", code: http.StatusMethodNotAllowed},
		{name: "wrong method on ticket prize", method: http.MethodDelete, path: "/api/v1/tickets/1/prize", code: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nothing", code: http.StatusNotFound},
		{name: "dev routes disabled", method: http.MethodPost, path: "/api/v1/dev/increase-time", body: increaseTimeRequest{Seconds: 1}, code: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := ts.do(t, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.code, w.Code, w.Body.String())
		})
	}
}

func TestDevTime(t *testing.T) {
	ts := setupServer(t, true)

	before := ts.ok(t, http.MethodGet, "/api/v1/dev/time", nil)
	assert.Equal(t, "0s", before["offset"])

	after := ts.ok(t, http.MethodPost, "/api/v1/dev/increase-time", increaseTimeRequest{Seconds: 3600})
	assert.Equal(t, "1h0m0s", after["offset"])

	w := ts.do(t, http.MethodPost, "/api/v1/dev/increase-time", increaseTimeRequest{Seconds: -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/v1/dev/set-time", setTimeRequest{Timestamp: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupServer(t, false)
	ts.ok(t, http.MethodPost, "/api/v1/token/transfer", transferRequest{From: alice.String(), To: bob.String(), Amount: "5"})

	w := ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `lotteryd_operations_total{operation="transfer",outcome="ok"} 1`))

	bal := data(ts.ok(t, http.MethodGet, "/api/v1/token/balances/"+bob.String(), nil))
	assert.Equal(t, "105", bal["amount"])
}
