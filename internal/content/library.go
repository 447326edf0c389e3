package content

import (
	"fmt"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/card"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/game"
)

// Library is the compiled card catalogue: pool cards by id, each bound
// to the effect it plays. Built once from a Config and shared by all
// matches.
type Library struct {
	cards   map[card.ID]card.Card
	effects map[card.ID]game.Playable
	starter []card.Card
	balance Balance
}

// BuildLibrary compiles a validated Config into a Library.
func BuildLibrary(cfg *Config) (*Library, error) {
	lib := &Library{
		cards:   make(map[card.ID]card.Card, len(cfg.Cards)),
		effects: make(map[card.ID]game.Playable, len(cfg.Cards)),
		balance: cfg.Balance,
	}

	for _, def := range cfg.Cards {
		typ, err := cardType(def.Type)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", def.ID, err)
		}
		effect, err := compileEffect(def.Effect)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", def.ID, err)
		}
		id := card.ID(def.ID)
		lib.cards[id] = card.New(id, def.Name, def.Description, def.Cost, typ)
		lib.effects[id] = effect
	}

	for _, entry := range cfg.StarterDeck {
		c, ok := lib.cards[card.ID(entry.CardID)]
		if !ok {
			return nil, fmt.Errorf("starter deck references unknown card %d", entry.CardID)
		}
		for i := 0; i < entry.Count; i++ {
			lib.starter = append(lib.starter, c)
		}
	}

	return lib, nil
}

func compileEffect(spec EffectSpec) (game.Playable, error) {
	switch spec.Kind {
	case effectAttack:
		return game.AttackEffect{Damage: spec.Damage}, nil
	case effectHeal:
		return game.HealEffect{Amount: spec.Amount}, nil
	case effectCompound:
		effects := make([]game.Playable, 0, len(spec.Effects))
		for _, sub := range spec.Effects {
			e, err := compileEffect(sub)
			if err != nil {
				return nil, err
			}
			effects = append(effects, e)
		}
		return game.CompoundEffect{Effects: effects}, nil
	default:
		return nil, fmt.Errorf("unknown effect kind %q", spec.Kind)
	}
}

// Card looks up a pool card by id.
func (l *Library) Card(id card.ID) (card.Card, bool) {
	c, ok := l.cards[id]
	return c, ok
}

// Effect looks up the playable effect bound to a pool card.
func (l *Library) Effect(id card.ID) (game.Playable, bool) {
	e, ok := l.effects[id]
	return e, ok
}

// StarterDeck returns a fresh copy of the starter deck card list.
func (l *Library) StarterDeck() []card.Card {
	out := make([]card.Card, len(l.starter))
	copy(out, l.starter)
	return out
}

// Balance returns the match balance the library was compiled with.
func (l *Library) Balance() Balance {
	return l.balance
}

// Pool returns all pool cards, keyed by id.
func (l *Library) Pool() map[card.ID]card.Card {
	out := make(map[card.ID]card.Card, len(l.cards))
	for id, c := range l.cards {
		out[id] = c
	}
	return out
}
