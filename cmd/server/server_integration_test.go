package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/content"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/serverapp"
)

func TestServer_HealthAndReadinessExposeRequestID(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d body=%s", path, res.Code, res.Body.String())
		}
		if rid := strings.TrimSpace(res.Header().Get("X-Request-Id")); rid == "" {
			t.Fatalf("%s missing X-Request-Id header", path)
		}
	}
}

func TestServer_EmbeddedStaticAndPages(t *testing.T) {
	app := newTestApp(t)

	staticRes := app.request(http.MethodGet, "/static/js/match.js", nil, "")
	if staticRes.Code != http.StatusOK {
		t.Fatalf("embedded static asset expected 200, got %d", staticRes.Code)
	}
	if staticRes.Body.Len() == 0 {
		t.Fatalf("embedded static asset should not be empty")
	}

	for _, path := range []string{"/", "/match"} {
		res := app.request(http.MethodGet, path, nil, "")
		if res.Code != http.StatusOK {
			t.Fatalf("%s expected 200, got %d", path, res.Code)
		}
		if !strings.Contains(res.Body.String(), "<html") {
			t.Fatalf("%s should render an HTML page", path)
		}
	}

	adminRes := app.request(http.MethodGet, "/_/admin/routes.json", nil, "")
	if adminRes.Code != http.StatusOK {
		t.Fatalf("admin routes expected 200, got %d", adminRes.Code)
	}
	if !strings.Contains(adminRes.Body.String(), "/api/match/cmd") {
		t.Fatalf("admin routes should list the command endpoint, body=%s", adminRes.Body.String())
	}
}

func TestServer_MatchRoundTrip(t *testing.T) {
	app := newTestApp(t)

	startRes := app.json(http.MethodPost, "/api/match/cmd", map[string]any{
		"cmd":  "match.start",
		"args": map[string]any{},
	})
	if startRes.Code != http.StatusOK {
		t.Fatalf("match.start expected 200, got %d body=%s", startRes.Code, startRes.Body.String())
	}
	startBody := decodeBodyMap(t, startRes)
	if ok, _ := startBody["ok"].(bool); !ok {
		t.Fatalf("match.start should report ok, body=%s", startRes.Body.String())
	}
	patch := asMap(t, startBody["patch"])
	matchID := asString(t, patch["id"])
	if asString(t, patch["status"]) != "active" {
		t.Fatalf("fresh match should be active, got %v", patch["status"])
	}
	hand, ok := patch["hand"].([]any)
	if !ok || len(hand) == 0 {
		t.Fatalf("fresh match should come with an opening hand, patch=%v", patch)
	}

	playRes := app.json(http.MethodPost, "/api/match/cmd", map[string]any{
		"cmd":  "card.play",
		"args": map[string]any{"matchId": matchID, "handIndex": 0},
	})
	if playRes.Code != http.StatusOK {
		t.Fatalf("card.play expected 200, got %d body=%s", playRes.Code, playRes.Body.String())
	}

	endRes := app.json(http.MethodPost, "/api/match/cmd", map[string]any{
		"cmd":  "turn.end",
		"args": map[string]any{"matchId": matchID},
	})
	if endRes.Code != http.StatusOK {
		t.Fatalf("turn.end expected 200, got %d body=%s", endRes.Code, endRes.Body.String())
	}

	stateRes := app.request(http.MethodGet, "/api/match/state?match="+matchID, nil, "")
	if stateRes.Code != http.StatusOK {
		t.Fatalf("match state expected 200, got %d body=%s", stateRes.Code, stateRes.Body.String())
	}
	state := decodeBodyMap(t, stateRes)
	if asString(t, state["id"]) != matchID {
		t.Fatalf("state should echo match id %s, got %v", matchID, state["id"])
	}

	listRes := app.request(http.MethodGet, "/api/matches", nil, "")
	if listRes.Code != http.StatusOK {
		t.Fatalf("list matches expected 200, got %d body=%s", listRes.Code, listRes.Body.String())
	}
	if !strings.Contains(listRes.Body.String(), matchID) {
		t.Fatalf("match list should include %s, body=%s", matchID, listRes.Body.String())
	}

	statsRes := app.request(http.MethodGet, "/api/stats", nil, "")
	if statsRes.Code != http.StatusOK {
		t.Fatalf("stats expected 200, got %d body=%s", statsRes.Code, statsRes.Body.String())
	}
	stats := decodeBodyMap(t, statsRes)
	if played, _ := stats["cards_played"].(float64); played < 1 {
		t.Fatalf("stats should count the played card, body=%s", statsRes.Body.String())
	}

	cfgRes := app.request(http.MethodGet, "/api/config", nil, "")
	if cfgRes.Code != http.StatusOK {
		t.Fatalf("config echo expected 200, got %d body=%s", cfgRes.Code, cfgRes.Body.String())
	}
	if !strings.Contains(cfgRes.Body.String(), "cards") {
		t.Fatalf("config echo should include the card pool, body=%s", cfgRes.Body.String())
	}
}

func TestServer_UnknownCommandRejected(t *testing.T) {
	app := newTestApp(t)

	res := app.json(http.MethodPost, "/api/match/cmd", map[string]any{
		"cmd":  "match.warp",
		"args": map[string]any{},
	})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("unknown command expected 400, got %d body=%s", res.Code, res.Body.String())
	}
	body := decodeBodyMap(t, res)
	if ok, _ := body["ok"].(bool); ok {
		t.Fatalf("unknown command should not report ok, body=%s", res.Body.String())
	}
}

type testApp struct {
	handler http.Handler
	logs    *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	h, err := serverapp.NewHandler(serverapp.Options{
		Config:  content.Default(),
		DataDir: t.TempDir(),
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	return &testApp{handler: h, logs: &logs}
}

func (a *testApp) json(method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	return a.request(method, path, bytes.NewReader(b), "application/json")
}

func (a *testApp) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBodyMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode json body failed: %v body=%s", err, rec.Body.String())
	}
	return out
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	out, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any, got %T (%v)", v, v)
	}
	return out
}

func asString(t *testing.T, v any) string {
	t.Helper()
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string, got %T (%v)", v, v)
	}
	return s
}
