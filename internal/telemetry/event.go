package telemetry

import "time"

type EventType string

const (
	EventMatchStarted EventType = "match_started"
	EventCardPlayed   EventType = "card_played"
	EventCardDrawn    EventType = "card_drawn"
	EventDamageDealt  EventType = "damage_dealt"
	EventPlayerHealed EventType = "player_healed"
	EventDeckRecycled EventType = "deck_recycled"
	EventTurnEnded    EventType = "turn_ended"
	EventMatchOver    EventType = "match_over"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
