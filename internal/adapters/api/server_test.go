package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/mekanik-go/internal/adapters/api"
	"github.com/andrescamacho/mekanik-go/internal/application/common"
	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
	"github.com/andrescamacho/mekanik-go/test/helpers"
)

type staticFactory struct {
	state domainGame.State
}

func (f staticFactory) NewGame(ctx context.Context) (domainGame.State, error) {
	return f.state, nil
}

type testServer struct {
	store  *appGame.Store
	server *httptest.Server
	cancel context.CancelFunc
}

func newTestServer(t *testing.T, registry *prometheus.Registry) *testServer {
	t.Helper()
	initial := helpers.NewTestGame(t)
	store := appGame.NewStore(initial)
	m := mediator.NewMediator()
	require.NoError(t, appGame.RegisterHandlers(m, store, staticFactory{state: initial}))

	ctx, cancel := context.WithCancel(context.Background())
	hub := api.NewHub(store)
	go hub.Run(ctx)

	srv := httptest.NewServer(api.NewServer(m, hub, registry, nil).Handler())
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return &testServer{store: store, server: srv, cancel: cancel}
}

type stateBody struct {
	State domainGame.State `json:"state"`
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestGetState(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.server.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var body stateBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 200, body.State.Credits)
	assert.Len(t, body.State.Inventory, 4)
}

func TestInstallAndRemove(t *testing.T) {
	ts := newTestServer(t, nil)
	postJSON(t, ts.server.URL+"/api/commands/install", `{"module":"power","slot":"slot1","componentId":"reactor"}`)

	resp := postJSON(t, ts.server.URL+"/api/commands/install", `{"module":"engine","slot":"slot1","componentId":"core"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body stateBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	installed, ok := body.State.Ship.Modules.Engine.ComponentAt(ship.Slot1)
	require.True(t, ok)
	assert.Equal(t, "core", installed.ID)
	assert.Greater(t, body.State.Ship.Performance.Speed, 0.0)

	resp = postJSON(t, ts.server.URL+"/api/commands/remove", `{"module":"engine","slot":"slot1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, ts.store.Snapshot().Inventory, 3)
}

func TestRepairDamageRecalculate(t *testing.T) {
	ts := newTestServer(t, nil)
	postJSON(t, ts.server.URL+"/api/commands/install", `{"module":"engine","slot":"slot1","componentId":"core"}`)

	resp := postJSON(t, ts.server.URL+"/api/commands/damage", `{"module":"engine","slot":"slot1","amount":70}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c, _ := ts.store.Snapshot().Ship.Modules.Engine.ComponentAt(ship.Slot1)
	assert.Equal(t, 30.0, c.Properties.Durability)

	resp = postJSON(t, ts.server.URL+"/api/commands/repair", `{"module":"engine","slot":"slot1","amount":20}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	c, _ = ts.store.Snapshot().Ship.Modules.Engine.ComponentAt(ship.Slot1)
	assert.Equal(t, 50.0, c.Properties.Durability)

	resp, err := http.Post(ts.server.URL+"/api/commands/recalculate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCommandErrors(t *testing.T) {
	ts := newTestServer(t, nil)

	tests := []struct {
		name     string
		path     string
		body     string
		expected int
	}{
		{"unknown component", "/api/commands/install", `{"module":"engine","slot":"slot1","componentId":"ghost"}`, http.StatusNotFound},
		{"wrong module", "/api/commands/install", `{"module":"engine","slot":"slot1","componentId":"deflector"}`, http.StatusConflict},
		{"bad slot", "/api/commands/remove", `{"module":"engine","slot":"slot9"}`, http.StatusBadRequest},
		{"negative amount", "/api/commands/damage", `{"module":"engine","slot":"slot1","amount":-5}`, http.StatusBadRequest},
		{"malformed body", "/api/commands/install", `{"module":`, http.StatusBadRequest},
		{"unknown field", "/api/commands/remove", `{"module":"engine","slot":"slot1","force":true}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.server.URL+tt.path, tt.body)
			assert.Equal(t, tt.expected, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}

	// failed commands leave the state alone
	assert.Len(t, ts.store.Snapshot().Inventory, 4)
}

func TestMethodAndCORS(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.server.URL + "/api/commands/install")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodOptions, ts.server.URL+"/api/state", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsRoute(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "mekanik_test_total", Help: "test"})
	registry.MustRegister(counter)
	counter.Inc()
	ts := newTestServer(t, registry)

	resp, err := http.Get(ts.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	noMetrics := newTestServer(t, nil)
	resp2, err := http.Get(noMetrics.server.URL + "/metrics")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestMediatorErrorsMapToStatus(t *testing.T) {
	m := helpers.NewMockMediator()
	m.SetSendFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, shared.NewMissionNotFoundError("m-1")
	})
	srv := httptest.NewServer(api.NewServer(m, nil, nil, nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.IsType(t, &appGame.GetStateQuery{}, m.LastRequest())
}

func TestServerPassesLoggerToHandlers(t *testing.T) {
	logger := &countingLogger{}
	m := helpers.NewMockMediator()
	m.SetSendFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		common.LoggerFromContext(ctx).Log("INFO", "handled", nil)
		return &appGame.StateResponse{}, nil
	})
	srv := httptest.NewServer(api.NewServer(m, nil, nil, logger).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/state")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, int32(1), logger.count.Load())
}

type countingLogger struct {
	count atomic.Int32
}

func (l *countingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.count.Add(1)
}

func TestWebSocketStreamsShipUpdates(t *testing.T) {
	ts := newTestServer(t, nil)
	wsURL := "ws" + strings.TrimPrefix(ts.server.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// the current ship arrives on connect
	var greeting struct {
		Type    string    `json:"type"`
		Payload ship.Ship `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&greeting))
	assert.Equal(t, api.MessageShipUpdate, greeting.Type)
	assert.Equal(t, "The Nebula Voyager", greeting.Payload.Name)
	assert.Empty(t, greeting.Payload.Modules.Engine.Installed())

	postJSON(t, ts.server.URL+"/api/commands/install", `{"module":"engine","slot":"slot1","componentId":"core"}`)

	var update struct {
		Type    string    `json:"type"`
		Payload ship.Ship `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, api.MessageShipUpdate, update.Type)
	installed, ok := update.Payload.Modules.Engine.ComponentAt(ship.Slot1)
	require.True(t, ok)
	assert.Equal(t, "core", installed.ID)
}

func TestHubStopsWithContext(t *testing.T) {
	store := appGame.NewStore(helpers.NewTestGame(t))
	hub := api.NewHub(store)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	assert.Eventually(t, func() bool { return store.SubscriberCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.Equal(t, 0, store.SubscriberCount())
}
