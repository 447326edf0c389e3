package match

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/card"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/content"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/game"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/telemetry"
)

// Handler handles match-related HTTP requests.
type Handler struct {
	repo   Repo
	lib    *content.Library
	events telemetry.Repository
	clock  Clock
	newID  func() string
}

// NewHandler creates a match handler. A nil events recorder drops
// telemetry; a nil clock uses the wall clock.
func NewHandler(repo Repo, lib *content.Library, events telemetry.Repository) *Handler {
	h := &Handler{
		repo:   repo,
		lib:    lib,
		events: events,
		clock:  RealClock{},
		newID:  uuid.NewString,
	}
	if h.events == nil {
		h.events = telemetry.NopRepository{}
	}
	return h
}

// SetClock overrides the handler's clock (tests).
func (h *Handler) SetClock(c Clock) {
	if c != nil {
		h.clock = c
	}
}

// SetIDGenerator overrides match id generation (tests).
func (h *Handler) SetIDGenerator(fn func() string) {
	if fn != nil {
		h.newID = fn
	}
}

// StateResponse is the response for GET /api/match/state.
type StateResponse struct {
	ID          string          `json:"id"`
	Status      Status          `json:"status"`
	Hand        []card.Card     `json:"hand"`
	DrawCount   int             `json:"draw_count"`
	DiscardPile []card.Card     `json:"discard_pile"`
	Context     *game.Context   `json:"context"`
	Balance     content.Balance `json:"balance"`
	Turn        int             `json:"turn"`
}

// GET /api/match/state?match=<id>
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.URL.Query().Get("match"))
	if id == "" {
		writeErr(w, http.StatusBadRequest, "match query parameter is required")
		return
	}

	m, ok, err := h.repo.Get(id)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeErr(w, http.StatusNotFound, "no such match")
		return
	}

	writeJSON(w, http.StatusOK, h.stateView(m))
}

// GET /api/matches
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	matches, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	type summary struct {
		ID     string `json:"id"`
		Status Status `json:"status"`
		Turn   int    `json:"turn"`
	}
	out := make([]summary, 0, len(matches))
	for _, m := range matches {
		out = append(out, summary{ID: m.ID, Status: m.Status, Turn: m.Context.Turn})
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": out})
}

// CommandRequest is the request body for POST /api/match/cmd.
type CommandRequest struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args"`
}

// CommandResponse is the response for POST /api/match/cmd.
type CommandResponse struct {
	OK    bool   `json:"ok"`
	Patch any    `json:"patch,omitempty"`
	Error string `json:"error,omitempty"`
}

// POST /api/match/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	patch, err := h.executeCommand(req.Cmd, req.Args)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CommandResponse{
			OK:    false,
			Error: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, CommandResponse{OK: true, Patch: patch})
}

// executeCommand dispatches the command to the appropriate handler.
func (h *Handler) executeCommand(cmd string, args map[string]any) (any, error) {
	switch cmd {
	case "match.start":
		return h.cmdMatchStart(args)
	case "match.concede":
		return h.withMatch(args, h.cmdMatchConcede)
	case "card.play":
		return h.withMatch(args, h.cmdCardPlay)
	case "card.draw":
		return h.withMatch(args, h.cmdCardDraw)
	case "turn.end":
		return h.withMatch(args, h.cmdTurnEnd)
	case "deck.peek":
		return h.withMatch(args, h.cmdDeckPeek)
	case "deck.mill":
		return h.withMatch(args, h.cmdDeckMill)
	case "deck.search":
		return h.withMatch(args, h.cmdDeckSearch)
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
}

// withMatch loads the match named in args, runs fn, and saves the
// match afterwards. The deck counts its own recycles; every tick
// during the command becomes an event.
func (h *Handler) withMatch(args map[string]any, fn func(*Match, map[string]any) (any, error)) (any, error) {
	id, err := getString(args, "matchId")
	if err != nil {
		return nil, err
	}
	m, ok, err := h.repo.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no such match: %s", id)
	}

	recyclesBefore := m.Deck.Recycles

	patch, err := fn(m, args)
	if err != nil {
		return nil, err
	}

	for i := recyclesBefore; i < m.Deck.Recycles; i++ {
		_ = h.events.RecordEvent(telemetry.EventDeckRecycled, telemetry.EventMetadata{
			"match_id": m.ID,
		})
	}

	m.UpdatedAt = h.clock.Now()
	if err := h.repo.Save(m); err != nil {
		return nil, err
	}
	return patch, nil
}

// match.start {}
func (h *Handler) cmdMatchStart(args map[string]any) (any, error) {
	m := New(h.newID(), h.lib, h.clock.Now())
	if err := h.repo.Save(m); err != nil {
		return nil, err
	}

	_ = h.events.RecordEvent(telemetry.EventMatchStarted, telemetry.EventMetadata{
		"match_id": m.ID,
	})

	return h.stateView(m), nil
}

// match.concede { matchId }
func (h *Handler) cmdMatchConcede(m *Match, args map[string]any) (any, error) {
	if err := m.Concede(); err != nil {
		return nil, err
	}
	h.recordMatchOver(m)
	return h.stateView(m), nil
}

// card.play { matchId, handIndex }
func (h *Handler) cmdCardPlay(m *Match, args map[string]any) (any, error) {
	idx, err := getInt(args, "handIndex")
	if err != nil {
		return nil, err
	}

	enemyBefore := m.Context.EnemyHealth
	playerBefore := m.Context.PlayerHealth
	res, err := m.PlayCard(h.lib, idx)
	if err != nil {
		return nil, err
	}

	damage := enemyBefore - m.Context.EnemyHealth
	healed := m.Context.PlayerHealth - playerBefore
	_ = h.events.RecordEvent(telemetry.EventCardPlayed, telemetry.EventMetadata{
		"match_id":  m.ID,
		"card_id":   int(res.Card.ID),
		"card_name": res.Card.Name,
		"cost":      res.EnergySpent,
		"damage":    damage,
	})
	if damage > 0 {
		_ = h.events.RecordEvent(telemetry.EventDamageDealt, telemetry.EventMetadata{
			"match_id": m.ID,
			"amount":   damage,
		})
	}
	if healed > 0 {
		_ = h.events.RecordEvent(telemetry.EventPlayerHealed, telemetry.EventMetadata{
			"match_id": m.ID,
			"amount":   healed,
		})
	}
	if m.Status != StatusActive {
		h.recordMatchOver(m)
	}

	return res, nil
}

// card.draw { matchId }
func (h *Handler) cmdCardDraw(m *Match, args map[string]any) (any, error) {
	c, ok, err := m.DrawCard()
	if err != nil {
		return nil, err
	}
	if ok {
		_ = h.events.RecordEvent(telemetry.EventCardDrawn, telemetry.EventMetadata{
			"match_id":  m.ID,
			"card_id":   int(c.ID),
			"card_name": c.Name,
		})
	}
	return map[string]any{
		"drew":      ok,
		"card":      c,
		"hand_size": len(m.Hand),
	}, nil
}

// turn.end { matchId }
func (h *Handler) cmdTurnEnd(m *Match, args map[string]any) (any, error) {
	res, err := m.EndTurn()
	if err != nil {
		return nil, err
	}

	_ = h.events.RecordEvent(telemetry.EventTurnEnded, telemetry.EventMetadata{
		"match_id": m.ID,
		"turn":     res.Turn,
	})
	if m.Status != StatusActive {
		h.recordMatchOver(m)
	}

	return res, nil
}

// deck.peek { matchId, count? }
func (h *Handler) cmdDeckPeek(m *Match, args map[string]any) (any, error) {
	n := getIntOr(args, "count", 1)
	return map[string]any{"cards": m.Deck.Peek(n)}, nil
}

// deck.mill { matchId, count? }
func (h *Handler) cmdDeckMill(m *Match, args map[string]any) (any, error) {
	if m.Status != StatusActive {
		return nil, ErrMatchOver
	}
	n := getIntOr(args, "count", 1)
	milled := m.Deck.Mill(n)
	return map[string]any{
		"milled":        milled,
		"discard_count": len(m.Deck.DiscardPile),
	}, nil
}

// deck.search { matchId, name }
func (h *Handler) cmdDeckSearch(m *Match, args map[string]any) (any, error) {
	if m.Status != StatusActive {
		return nil, ErrMatchOver
	}
	name, err := getString(args, "name")
	if err != nil {
		return nil, err
	}

	c, found := m.Deck.Search(func(c card.Card) bool { return c.Name == name })
	if found {
		m.Hand = append(m.Hand, c)
	}
	return map[string]any{
		"found":     found,
		"card":      c,
		"hand_size": len(m.Hand),
	}, nil
}

func (h *Handler) recordMatchOver(m *Match) {
	_ = h.events.RecordEvent(telemetry.EventMatchOver, telemetry.EventMetadata{
		"match_id": m.ID,
		"status":   string(m.Status),
		"turn":     m.Context.Turn,
	})
}

func (h *Handler) stateView(m *Match) StateResponse {
	return StateResponse{
		ID:          m.ID,
		Status:      m.Status,
		Hand:        m.Hand,
		DrawCount:   len(m.Deck.DrawPile),
		DiscardPile: m.Deck.DiscardPile,
		Context:     m.Context,
		Balance:     m.Balance,
		Turn:        m.Context.Turn,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

// Helper to get string from args.
func getString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required field: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s must be a string", key)
	}
	return s, nil
}

// Helper to get int from args (JSON numbers are float64).
func getInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required field: %s", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %s must be a number", key)
	}
	return int(f), nil
}

// Helper to get optional int with default.
func getIntOr(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		return def
	}
	return int(f)
}
