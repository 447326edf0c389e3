package match

import (
	"errors"
	"time"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/card"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/content"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/deck"
	"github.com/ilicaemirhan/deckbuilder-eng/internal/game"
)

// Status is the lifecycle state of a match.
type Status string

const (
	StatusActive   Status = "active"
	StatusWon      Status = "won"
	StatusLost     Status = "lost"
	StatusConceded Status = "conceded"
)

var (
	ErrMatchOver          = errors.New("match is over")
	ErrNoSuchHandCard     = errors.New("no such card in hand")
	ErrUnknownCard        = errors.New("card is not in the pool")
	ErrInsufficientEnergy = errors.New("not enough energy")
)

// Match is one running game: a deck, the player's hand, and the
// numeric context, plus the balance it was started with. Matches are
// plain data; all mutation goes through the methods below, one command
// at a time.
type Match struct {
	ID        string          `json:"id"`
	Deck      *deck.Deck      `json:"deck"`
	Hand      []card.Card     `json:"hand"`
	Context   *game.Context   `json:"context"`
	Balance   content.Balance `json:"balance"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// New starts a match: starter deck in the draw pile, first turn's
// energy granted, opening hand drawn. The turn counter stays at 1;
// only subsequent turns advance it.
func New(id string, lib *content.Library, now time.Time) *Match {
	bal := lib.Balance()
	ctx := game.NewContext(bal.PlayerHealth, bal.EnemyHealth)
	ctx.Energy = bal.MaxEnergy

	m := &Match{
		ID:        id,
		Deck:      deck.New(lib.StarterDeck()),
		Hand:      []card.Card{},
		Context:   ctx,
		Balance:   bal,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.Hand = append(m.Hand, m.Deck.DrawMultiple(bal.HandSize)...)
	return m
}

// PlayResult describes what playing a card did.
type PlayResult struct {
	Card         card.Card `json:"card"`
	EnergySpent  int       `json:"energy_spent"`
	PlayerHealth int       `json:"player_health"`
	EnemyHealth  int       `json:"enemy_health"`
	Status       Status    `json:"status"`
}

// PlayCard plays the hand card at handIndex: the energy gate is the
// only thing that can refuse, and a refusal leaves the match untouched.
// On success the effect is applied and the card goes to the discard
// pile.
func (m *Match) PlayCard(lib *content.Library, handIndex int) (*PlayResult, error) {
	if m.Status != StatusActive {
		return nil, ErrMatchOver
	}
	if handIndex < 0 || handIndex >= len(m.Hand) {
		return nil, ErrNoSuchHandCard
	}
	c := m.Hand[handIndex]
	effect, ok := lib.Effect(c.ID)
	if !ok {
		return nil, ErrUnknownCard
	}
	if !m.Context.SpendEnergy(c.Cost) {
		return nil, ErrInsufficientEnergy
	}

	effect.Play(m.Context)
	m.Hand = append(m.Hand[:handIndex], m.Hand[handIndex+1:]...)
	m.Deck.Discard(c)
	m.resolveStatus()

	return &PlayResult{
		Card:         c,
		EnergySpent:  c.Cost,
		PlayerHealth: m.Context.PlayerHealth,
		EnemyHealth:  m.Context.EnemyHealth,
		Status:       m.Status,
	}, nil
}

// DrawCard draws one card into the hand. Returns false when both
// piles are exhausted (soft failure, not an error).
func (m *Match) DrawCard() (card.Card, bool, error) {
	if m.Status != StatusActive {
		return card.Card{}, false, ErrMatchOver
	}
	c, ok := m.Deck.Draw()
	if !ok {
		return card.Card{}, false, nil
	}
	m.Hand = append(m.Hand, c)
	return c, true, nil
}

// TurnResult describes an end-of-turn transition.
type TurnResult struct {
	EnemyAttack  int         `json:"enemy_attack"`
	Turn         int         `json:"turn"`
	Energy       int         `json:"energy"`
	Drawn        []card.Card `json:"drawn"`
	PlayerHealth int         `json:"player_health"`
	Status       Status      `json:"status"`
}

// EndTurn finishes the player's turn: the remaining hand is discarded,
// the enemy swings, then a new turn starts with energy reset (unspent
// energy is discarded) and a fresh hand drawn.
func (m *Match) EndTurn() (*TurnResult, error) {
	if m.Status != StatusActive {
		return nil, ErrMatchOver
	}

	for _, c := range m.Hand {
		m.Deck.Discard(c)
	}
	m.Hand = m.Hand[:0]

	// Enemy damage lands as a negative heal.
	m.Context.Heal(-m.Balance.EnemyAttack)
	m.resolveStatus()

	res := &TurnResult{
		EnemyAttack:  m.Balance.EnemyAttack,
		PlayerHealth: m.Context.PlayerHealth,
		Status:       m.Status,
	}
	if m.Status != StatusActive {
		res.Turn = m.Context.Turn
		res.Energy = m.Context.Energy
		return res, nil
	}

	m.Context.NewTurn(m.Balance.MaxEnergy)
	drawn := m.Deck.DrawMultiple(m.Balance.HandSize)
	m.Hand = append(m.Hand, drawn...)

	res.Turn = m.Context.Turn
	res.Energy = m.Context.Energy
	res.Drawn = drawn
	return res, nil
}

// Concede ends the match as a loss by choice.
func (m *Match) Concede() error {
	if m.Status != StatusActive {
		return ErrMatchOver
	}
	m.Status = StatusConceded
	return nil
}

// resolveStatus folds the context's terminal predicate into the match
// status. Enemy defeat wins ties: a card that kills both sides counts
// as a win.
func (m *Match) resolveStatus() {
	if !m.Context.IsGameOver() {
		return
	}
	if m.Context.EnemyHealth <= 0 {
		m.Status = StatusWon
	} else {
		m.Status = StatusLost
	}
}
