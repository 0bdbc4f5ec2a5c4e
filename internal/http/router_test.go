package http

import (
	"context"
	nethttp "net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appmatches "github.com/preston-bernstein/matchboard/internal/app/matches"
	appteams "github.com/preston-bernstein/matchboard/internal/app/teams"
	"github.com/preston-bernstein/matchboard/internal/domain"
	"github.com/preston-bernstein/matchboard/internal/http/handlers"
	"github.com/preston-bernstein/matchboard/internal/store"
	"github.com/preston-bernstein/matchboard/internal/testutil"
)

func newTestRouter(t *testing.T) (nethttp.Handler, *store.Collections, string) {
	t.Helper()
	logoDir := t.TempDir()
	cols := store.NewCollections(store.NewMemoryBackend(), nil, nil)
	h := handlers.NewHandler(
		appmatches.NewService(cols, nil, LogoMount),
		appteams.NewService(cols, nil, LogoMount),
		cols.Ping,
		nil,
	)
	return NewRouter(h, logoDir), cols, logoDir
}

func TestRouterRoutesAPI(t *testing.T) {
	router, cols, _ := newTestRouter(t)
	ctx := context.Background()
	if err := cols.WriteCollection(ctx, store.Teams, []domain.Record{testutil.SampleTeam(1, "Lions", "lions.png")}); err != nil {
		t.Fatalf("seed teams: %v", err)
	}

	rr := testutil.Serve(router, nethttp.MethodPost, "/api/matches", strings.NewReader(`{"homeId":1,"awayId":1,"score":"0-0"}`))
	testutil.AssertStatus(t, rr, nethttp.StatusCreated)

	rr = testutil.Serve(router, nethttp.MethodPatch, "/api/matches/1", strings.NewReader(`{"score":"2-1"}`))
	testutil.AssertStatus(t, rr, nethttp.StatusOK)

	rr = testutil.Serve(router, nethttp.MethodGet, "/api/matches", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var matches []map[string]any
	testutil.DecodeJSON(t, rr, &matches)
	if len(matches) != 1 || matches[0]["score"] != "2-1" {
		t.Fatalf("unexpected matches %+v", matches)
	}
	home, _ := matches[0]["home"].(map[string]any)
	if home["logo"] != "/logos/lions.png" {
		t.Fatalf("expected enriched home team, got %+v", matches[0]["home"])
	}

	rr = testutil.Serve(router, nethttp.MethodDelete, "/api/matches/1", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNoContent)
	rr = testutil.Serve(router, nethttp.MethodDelete, "/api/matches/1", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)

	rr = testutil.Serve(router, nethttp.MethodPost, "/api/teams", strings.NewReader(`{"name":"Tigers","logo":"t.png"}`))
	testutil.AssertStatus(t, rr, nethttp.StatusCreated)
	rr = testutil.Serve(router, nethttp.MethodGet, "/api/teams", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	var teams []map[string]any
	testutil.DecodeJSON(t, rr, &teams)
	if len(teams) != 2 || teams[1]["logo"] != "/logos/t.png" {
		t.Fatalf("unexpected teams %+v", teams)
	}
}

func TestRouterProbes(t *testing.T) {
	router, _, _ := newTestRouter(t)

	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/health", nil), nethttp.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/ready", nil), nethttp.StatusOK)
}

func TestRouterUnregisteredRoutesAndMethodsAreNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/api/players", nil), nethttp.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodPut, "/api/matches/1", nil), nethttp.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodDelete, "/api/teams", nil), nethttp.StatusNotFound)
}

func TestRouterServesLogos(t *testing.T) {
	router, _, logoDir := newTestRouter(t)
	if err := os.WriteFile(filepath.Join(logoDir, "a.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write logo: %v", err)
	}

	rr := testutil.Serve(router, nethttp.MethodGet, "/logos/a.png", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusOK)
	if rr.Body.String() != "png-bytes" {
		t.Fatalf("unexpected logo body %q", rr.Body.String())
	}

	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/logos/missing.png", nil), nethttp.StatusNotFound)
}
