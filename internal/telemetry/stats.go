package telemetry

import (
	"encoding/json"
	"time"
)

// Stats aggregates match balance numbers from an event window.
type Stats struct {
	Period        string            `json:"period"`
	EventCounts   map[EventType]int `json:"event_counts"`
	CardsPlayed   int               `json:"cards_played"`
	CardsPerTurn  float64           `json:"cards_per_turn"`
	DamagePerTurn float64           `json:"damage_per_turn"`
	TotalDamage   int               `json:"total_damage"`
	TurnsEnded    int               `json:"turns_ended"`
	DeckRecycles  int               `json:"deck_recycles"`
	MatchesWon    int               `json:"matches_won"`
	MatchesLost   int               `json:"matches_lost"`
	PlaysByCard   map[string]int    `json:"plays_by_card"`
}

// CalculateStats computes balance stats from events recorded at or
// after since.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
		PlaysByCard: make(map[string]int),
	}

	for _, event := range events {
		if event.Timestamp.Before(since) {
			continue
		}
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventCardPlayed:
			stats.CardsPlayed++
			if name, ok := metadata["card_name"].(string); ok {
				stats.PlaysByCard[name]++
			}
			if dmg, ok := metadata["damage"].(float64); ok {
				stats.TotalDamage += int(dmg)
			}
		case EventTurnEnded:
			stats.TurnsEnded++
		case EventDeckRecycled:
			stats.DeckRecycles++
		case EventMatchOver:
			switch metadata["status"] {
			case "won":
				stats.MatchesWon++
			case "lost", "conceded":
				stats.MatchesLost++
			}
		}
	}

	if stats.TurnsEnded > 0 {
		stats.CardsPerTurn = float64(stats.CardsPlayed) / float64(stats.TurnsEnded)
		stats.DamagePerTurn = float64(stats.TotalDamage) / float64(stats.TurnsEnded)
	}

	return stats, nil
}
