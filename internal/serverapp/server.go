package serverapp

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/content"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/httpmw"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/match"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/telemetry"
	staticfiles "github.com/ilicaemirhan/deckbuilder-eng/static"
	"github.com/ilicaemirhan/deckbuilder-eng/ui/page"
)

type Options struct {
	Config        *content.Config
	DataDir       string
	StaticDir     string
	UseDiskStatic bool
	Logger        *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	lib, err := content.BuildLibrary(opts.Config)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registry := &RouteRegistry{}

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "deckbuilder",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	matchRepo, err := match.NewFileRepo(filepath.Join(opts.DataDir, "matches"))
	if err != nil {
		return nil, err
	}
	events := telemetry.NewMemoryRepository()
	matchHandler := match.NewHandler(matchRepo, lib, events)

	handle(mux, registry, "GET /api/match/state",
		"Snapshot of a single match", "?match=<id>",
		http.HandlerFunc(matchHandler.GetState))
	handle(mux, registry, "GET /api/matches",
		"List all stored matches", "",
		http.HandlerFunc(matchHandler.ListMatches))
	handle(mux, registry, "POST /api/match/cmd",
		"Run a match command", `{"cmd":"card.play","args":{"matchId":"...","handIndex":0}}`,
		http.HandlerFunc(matchHandler.Command))

	handle(mux, registry, "GET /api/config",
		"Echo the loaded content configuration", "",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(opts.Config); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}))

	handle(mux, registry, "GET /api/stats",
		"Aggregate telemetry since the given window", "?hours=24",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			since := time.Time{}
			if raw := strings.TrimSpace(r.URL.Query().Get("hours")); raw != "" {
				d, err := time.ParseDuration(raw + "h")
				if err != nil || d <= 0 {
					writeJSON(w, http.StatusBadRequest, map[string]any{
						"ok":    false,
						"error": "hours must be a positive number",
					})
					return
				}
				since = time.Now().Add(-d)
			}
			all, err := events.GetEvents(since, nil)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
				return
			}
			stats, err := telemetry.CalculateStats(all, since)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, stats)
		}))

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := matchRepo.List(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "match storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "deckbuilder",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	RegisterAdminUI(mux, registry)

	mux.Handle("/{$}", templ.Handler(page.HomePage()))
	mux.Handle("/match", templ.Handler(page.MatchPage()))

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
