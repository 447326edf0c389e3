package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/card"
)

// Config is the game content file: the card pool, the starter deck
// composition, and match balance numbers. Loaded once at boot; hosts
// treat it as read-only.
type Config struct {
	Version     string      `yaml:"version" json:"version"`
	Cards       []CardDef   `yaml:"cards" json:"cards"`
	StarterDeck []DeckEntry `yaml:"starter_deck" json:"starter_deck"`
	Balance     Balance     `yaml:"balance" json:"balance"`
}

// CardDef defines one card in the pool and the effect it plays.
type CardDef struct {
	ID          int        `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Cost        int        `yaml:"cost" json:"cost"`
	Type        string     `yaml:"type" json:"type"`
	Effect      EffectSpec `yaml:"effect" json:"effect"`
}

// EffectSpec is the serialized form of a playable effect. Kind is one
// of "attack", "heal", or "compound"; compound specs nest.
type EffectSpec struct {
	Kind    string       `yaml:"kind" json:"kind"`
	Damage  int          `yaml:"damage,omitempty" json:"damage,omitempty"`
	Amount  int          `yaml:"amount,omitempty" json:"amount,omitempty"`
	Effects []EffectSpec `yaml:"effects,omitempty" json:"effects,omitempty"`
}

// DeckEntry puts Count copies of a pool card into the starter deck.
type DeckEntry struct {
	CardID int `yaml:"card" json:"card"`
	Count  int `yaml:"count" json:"count"`
}

const (
	effectAttack   = "attack"
	effectHeal     = "heal"
	effectCompound = "compound"
)

// Load reads and validates a content file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse content file: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued balance fields and entry counts.
func (c *Config) ApplyDefaults() {
	def := DefaultBalance()
	if c.Balance.PlayerHealth == 0 {
		c.Balance.PlayerHealth = def.PlayerHealth
	}
	if c.Balance.EnemyHealth == 0 {
		c.Balance.EnemyHealth = def.EnemyHealth
	}
	if c.Balance.MaxEnergy == 0 {
		c.Balance.MaxEnergy = def.MaxEnergy
	}
	if c.Balance.HandSize == 0 {
		c.Balance.HandSize = def.HandSize
	}
	if c.Balance.EnemyAttack == 0 {
		c.Balance.EnemyAttack = def.EnemyAttack
	}
	for i := range c.StarterDeck {
		if c.StarterDeck[i].Count == 0 {
			c.StarterDeck[i].Count = 1
		}
	}
}

// Validate checks effect kinds and starter deck references. Duplicate
// card ids in the pool are rejected here even though the core card
// type does not enforce uniqueness.
func (c *Config) Validate() error {
	seen := make(map[int]bool, len(c.Cards))
	for _, def := range c.Cards {
		if seen[def.ID] {
			return fmt.Errorf("duplicate card id %d in pool", def.ID)
		}
		seen[def.ID] = true
		if err := def.Effect.validate(def.ID); err != nil {
			return err
		}
	}
	for _, entry := range c.StarterDeck {
		if !seen[entry.CardID] {
			return fmt.Errorf("starter deck references unknown card %d", entry.CardID)
		}
		if entry.Count < 0 {
			return fmt.Errorf("starter deck entry for card %d has negative count", entry.CardID)
		}
	}
	if c.Balance.PlayerHealth < 0 || c.Balance.EnemyHealth < 0 ||
		c.Balance.MaxEnergy < 0 || c.Balance.HandSize < 0 || c.Balance.EnemyAttack < 0 {
		return fmt.Errorf("balance numbers must not be negative")
	}
	return nil
}

func (s EffectSpec) validate(cardID int) error {
	switch s.Kind {
	case effectAttack, effectHeal:
		return nil
	case effectCompound:
		if len(s.Effects) == 0 {
			return fmt.Errorf("card %d: compound effect has no sub-effects", cardID)
		}
		for _, sub := range s.Effects {
			if err := sub.validate(cardID); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("card %d: unknown effect kind %q", cardID, s.Kind)
	}
}

func cardType(s string) (card.Type, error) {
	switch card.Type(s) {
	case card.TypeAttack, card.TypeSkill, card.TypePower:
		return card.Type(s), nil
	default:
		return "", fmt.Errorf("unknown card type %q", s)
	}
}

// Default returns the built-in catalogue used when no content file is
// supplied: a small Strike/Defend-style pool.
func Default() *Config {
	cfg := &Config{
		Version: "builtin",
		Cards: []CardDef{
			{
				ID: 1, Name: "Strike", Description: "Deal 6 damage.",
				Cost: 1, Type: string(card.TypeAttack),
				Effect: EffectSpec{Kind: effectAttack, Damage: 6},
			},
			{
				ID: 2, Name: "Mend", Description: "Restore 4 health.",
				Cost: 1, Type: string(card.TypeSkill),
				Effect: EffectSpec{Kind: effectHeal, Amount: 4},
			},
			{
				ID: 3, Name: "Heavy Blow", Description: "Deal 10 damage.",
				Cost: 2, Type: string(card.TypeAttack),
				Effect: EffectSpec{Kind: effectAttack, Damage: 10},
			},
			{
				ID: 4, Name: "Battle Trance", Description: "Deal 5 damage, restore 3 health.",
				Cost: 2, Type: string(card.TypePower),
				Effect: EffectSpec{Kind: effectCompound, Effects: []EffectSpec{
					{Kind: effectAttack, Damage: 5},
					{Kind: effectHeal, Amount: 3},
				}},
			},
			{
				ID: 5, Name: "Flurry", Description: "Deal 2 damage three times.",
				Cost: 1, Type: string(card.TypeAttack),
				Effect: EffectSpec{Kind: effectCompound, Effects: []EffectSpec{
					{Kind: effectAttack, Damage: 2},
					{Kind: effectAttack, Damage: 2},
					{Kind: effectAttack, Damage: 2},
				}},
			},
		},
		StarterDeck: []DeckEntry{
			{CardID: 1, Count: 5},
			{CardID: 2, Count: 3},
			{CardID: 3, Count: 1},
			{CardID: 4, Count: 1},
			{CardID: 5, Count: 2},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}
