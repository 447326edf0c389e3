package deck

import (
	"github.com/ilicaemirhan/deckbuilder-eng/internal/card"
)

// Deck holds the two piles a match cycles cards through.
// DrawPile is ordered bottom-to-top (last index is the top, the pop
// end). DiscardPile is in insertion order. Every card the deck holds
// lives in exactly one of the two piles. Recycles counts how many
// times discarded cards have been cycled back into the draw pile.
type Deck struct {
	DrawPile    []card.Card `json:"draw_pile"`
	DiscardPile []card.Card `json:"discard_pile"`
	Recycles    int         `json:"recycles"`
}

// New creates a deck with the given cards in the draw pile, in the
// given order (the last card is on top), and an empty discard pile.
func New(cards []card.Card) *Deck {
	draw := make([]card.Card, len(cards))
	copy(draw, cards)
	return &Deck{
		DrawPile:    draw,
		DiscardPile: []card.Card{},
	}
}

// Shuffle recycles the discard pile into the draw pile and reverses
// the draw pile's order. It is deterministic, not randomized: the
// discard pile is appended on top, then the whole pile is flipped.
// This is the only path cards take from discard back to draw; the
// Recycles counter ticks whenever it actually moves cards.
func (d *Deck) Shuffle() {
	if len(d.DiscardPile) > 0 {
		d.Recycles++
	}
	d.DrawPile = append(d.DrawPile, d.DiscardPile...)
	d.DiscardPile = d.DiscardPile[:0]
	for i, j := 0, len(d.DrawPile)-1; i < j; i, j = i+1, j-1 {
		d.DrawPile[i], d.DrawPile[j] = d.DrawPile[j], d.DrawPile[i]
	}
}

// Draw removes and returns the top card of the draw pile. If the draw
// pile is empty it recycles the discard pile via Shuffle and retries
// once. Returns false only when both piles are empty (soft failure).
func (d *Deck) Draw() (card.Card, bool) {
	if len(d.DrawPile) == 0 {
		d.Shuffle()
	}
	if len(d.DrawPile) == 0 {
		return card.Card{}, false
	}
	top := d.DrawPile[len(d.DrawPile)-1]
	d.DrawPile = d.DrawPile[:len(d.DrawPile)-1]
	return top, true
}

// Discard puts a card on the discard pile. The card's provenance is
// not checked; callers own the one-pile invariant for cards they
// route around outside the deck.
func (d *Deck) Discard(c card.Card) {
	d.DiscardPile = append(d.DiscardPile, c)
}

// DrawMultiple draws up to n cards, stopping early once both piles
// are exhausted. Cards come back in draw order, most recent top first.
// A non-positive n draws nothing.
func (d *Deck) DrawMultiple(n int) []card.Card {
	if n < 0 {
		n = 0
	}
	drawn := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		c, ok := d.Draw()
		if !ok {
			break
		}
		drawn = append(drawn, c)
	}
	return drawn
}

// Peek returns up to n cards from the top of the draw pile, top
// first, without removing them. It never triggers a recycle, so a
// short or empty draw pile yields a short or empty result. A
// non-positive n yields nothing.
func (d *Deck) Peek(n int) []card.Card {
	if n < 0 {
		n = 0
	}
	if n > len(d.DrawPile) {
		n = len(d.DrawPile)
	}
	out := make([]card.Card, 0, n)
	for i := len(d.DrawPile) - 1; i >= len(d.DrawPile)-n; i-- {
		out = append(out, d.DrawPile[i])
	}
	return out
}

// Mill moves up to n cards from the top of the draw pile straight to
// the discard pile, returning copies of what moved. Unlike Draw it
// does not recycle; milling stops at the draw pile's floor. A
// non-positive n moves nothing.
func (d *Deck) Mill(n int) []card.Card {
	if n < 0 {
		n = 0
	}
	milled := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		if len(d.DrawPile) == 0 {
			break
		}
		top := d.DrawPile[len(d.DrawPile)-1]
		d.DrawPile = d.DrawPile[:len(d.DrawPile)-1]
		d.DiscardPile = append(d.DiscardPile, top)
		milled = append(milled, top)
	}
	return milled
}

// Search removes and returns the first card in the draw pile (in
// current pile order, bottom first) satisfying pred. The discard pile
// is not scanned. Returns false on a miss, with no mutation.
func (d *Deck) Search(pred func(card.Card) bool) (card.Card, bool) {
	for i, c := range d.DrawPile {
		if pred(c) {
			d.DrawPile = append(d.DrawPile[:i], d.DrawPile[i+1:]...)
			return c, true
		}
	}
	return card.Card{}, false
}

// MoveToBottom inserts a card at the bottom of the draw pile, the end
// opposite the pop end.
func (d *Deck) MoveToBottom(c card.Card) {
	d.DrawPile = append([]card.Card{c}, d.DrawPile...)
}

// Size returns the total number of cards across both piles.
func (d *Deck) Size() int {
	return len(d.DrawPile) + len(d.DiscardPile)
}
