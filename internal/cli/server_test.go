package cli

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kidoikoiaki/internal/events"
	"github.com/mmynk/kidoikoiaki/internal/observability"
	"github.com/mmynk/kidoikoiaki/internal/service"
	"github.com/mmynk/kidoikoiaki/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	server := httptest.NewServer(withH2C(newServerHandler(serverDeps{
		store:         store,
		publisher:     events.NopPublisher{},
		metrics:       observability.NewMetrics(),
		allowedOrigin: "https://app.example",
	})))
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return server
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://app.example", resp.Header.Get("Access-Control-Allow-Origin"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	_, err = time.Parse(time.RFC3339, body["timestamp"])
	assert.NoError(t, err)
}

func TestServer_RPCAndMetrics(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	lists := service.NewListServiceClient(server.Client(), server.URL)
	_, err := lists.CreateList(ctx, connect.NewRequest(&service.CreateListRequest{Name: "Ski trip"}))
	require.NoError(t, err)

	_, err = lists.GetList(ctx, connect.NewRequest(&service.GetListRequest{ListID: "nope"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `kidoikoiaki_rpc_requests_total{code="ok",procedure="/kidoikoiaki.v1.ListService/CreateList"} 1`)
	assert.Contains(t, string(body), `kidoikoiaki_rpc_requests_total{code="not_found",procedure="/kidoikoiaki.v1.ListService/GetList"} 1`)
}

func TestServer_Preflight(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+service.ListServiceCreateListProcedure, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Connect-Protocol-Version")
}

func TestServeUntilDone_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	srv := &http.Server{Addr: addr, Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serveUntilDone(ctx, srv, time.Second) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
