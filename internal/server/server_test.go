package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/matchboard/internal/config"
	"github.com/preston-bernstein/matchboard/internal/store"
	"github.com/preston-bernstein/matchboard/internal/testutil"
)

type closeCountingBackend struct {
	*store.MemoryBackend
	closeCalls int
	closeErr   error
}

func (b *closeCountingBackend) Close() error {
	b.closeCalls++
	return b.closeErr
}

func memoryConfig() config.Config {
	return config.Config{
		Port:          "0",
		LogoURLPrefix: "/logos/",
		CORSOrigin:    "*",
		Storage:       config.StorageConfig{Backend: config.BackendMemory, IDStrategy: config.IDStrategyLength},
	}
}

func TestServerServesHealthAndMatches(t *testing.T) {
	srv := newServerWithBackend(memoryConfig(), nil, store.NewMemoryBackend(), nil)
	router := srv.Handler()

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodPost, "/api/teams", strings.NewReader(`{"name":"Lions","logo":"lions.png"}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	rr = testutil.Serve(router, http.MethodPost, "/api/matches", strings.NewReader(`{"homeId":1,"awayId":2}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	rr = testutil.Serve(router, http.MethodGet, "/api/matches", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header on API response")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}

	var matches []map[string]any
	testutil.DecodeJSON(t, rr, &matches)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	home, _ := matches[0]["home"].(map[string]any)
	if home["logo"] != "/logos/lions.png" {
		t.Fatalf("expected enriched home team, got %+v", matches[0])
	}
	if matches[0]["away"] != nil {
		t.Fatalf("expected dangling away team to be null, got %+v", matches[0]["away"])
	}
}

func TestServerAnswersPreflight(t *testing.T) {
	srv := newServerWithBackend(memoryConfig(), nil, store.NewMemoryBackend(), nil)

	rr := testutil.Serve(srv.Handler(), http.MethodOptions, "/api/matches/1", nil)

	testutil.AssertStatus(t, rr, http.StatusNoContent)
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch) {
		t.Fatalf("expected PATCH in allowed methods, got %q", rr.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestServerSequenceStrategyNeverReusesIDs(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.IDStrategy = config.IDStrategySequence
	srv := newServerWithBackend(cfg, nil, store.NewMemoryBackend(), nil)
	router := srv.Handler()

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodPost, "/api/matches", strings.NewReader(`{}`)), http.StatusCreated)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodDelete, "/api/matches/1", nil), http.StatusNoContent)

	rr := testutil.Serve(router, http.MethodPost, "/api/matches", strings.NewReader(`{}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created map[string]any
	testutil.DecodeJSON(t, rr, &created)
	if created["id"] != float64(2) {
		t.Fatalf("expected id 2 after delete, got %v", created["id"])
	}
}

func TestNewOpensConfiguredBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Metrics.Enabled = false

	srv, err := New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv == nil || srv.Handler() == nil || srv.Collections() == nil {
		t.Fatalf("expected server with handler and collections")
	}
}

func TestNewFailsOnUnknownBackend(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage.Backend = "mongo"

	if _, err := New(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestNewPropagatesStoreOpenError(t *testing.T) {
	orig := storeOpen
	defer func() { storeOpen = orig }()
	storeOpen = func(context.Context, config.StorageConfig) (store.Backend, error) {
		return nil, errors.New("redis down")
	}

	_, err := New(context.Background(), memoryConfig(), nil)
	if err == nil || !strings.Contains(err.Error(), "redis down") {
		t.Fatalf("expected wrapped open error, got %v", err)
	}
}

func TestGracefulShutdownStopsServerAndClosesBackend(t *testing.T) {
	backend := &closeCountingBackend{MemoryBackend: store.NewMemoryBackend()}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, backend)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if backend.closeCalls != 1 {
		t.Fatalf("expected backend Close to be called once, got %d", backend.closeCalls)
	}
}

func TestGracefulShutdownContinuesWhenShutdownErrors(t *testing.T) {
	backend := &closeCountingBackend{MemoryBackend: store.NewMemoryBackend(), closeErr: errors.New("close")}
	httpSrv := &testutil.StubHTTPServer{ShutdownErr: errors.New("shutdown failure")}
	logger, buf := testutil.NewBufferLogger()

	srv := newServerWithDeps(config.Config{}, logger, httpSrv, backend)
	srv.gracefulShutdown()

	if backend.closeCalls != 1 {
		t.Fatalf("expected backend Close despite shutdown error")
	}
	if !strings.Contains(buf.String(), "graceful shutdown failed") || !strings.Contains(buf.String(), "storage close failed") {
		t.Fatalf("expected both failures logged, got %q", buf.String())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, nil)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	httpSrv := &testutil.ErrHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := &closeCountingBackend{MemoryBackend: store.NewMemoryBackend()}
	httpSrv := &testutil.CloseableHTTPServer{}
	metricsSrv := &testutil.CloseableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, backend)
	srv.metricsServer = metricsSrv

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if httpSrv.ShutdownCalls != 1 || metricsSrv.ShutdownCalls != 1 {
		t.Fatalf("expected both servers shut down, got http=%d metrics=%d", httpSrv.ShutdownCalls, metricsSrv.ShutdownCalls)
	}
	if backend.closeCalls != 1 {
		t.Fatalf("expected backend closed once, got %d", backend.closeCalls)
	}
}
