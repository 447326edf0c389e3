package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilicaemirhan/deckbuilder-eng/internal/content"
)

func testLibrary(t *testing.T) *content.Library {
	t.Helper()
	lib, err := content.BuildLibrary(content.Default())
	require.NoError(t, err)
	return lib
}

// smallLibrary has two cards: Jab (1 energy, 2 damage) and Patch
// (1 energy, heal 2), three copies of each in the starter deck.
func smallLibrary(t *testing.T) *content.Library {
	t.Helper()
	cfg := &content.Config{
		Cards: []content.CardDef{
			{ID: 1, Name: "Jab", Cost: 1, Type: "attack",
				Effect: content.EffectSpec{Kind: "attack", Damage: 2}},
			{ID: 2, Name: "Patch", Cost: 1, Type: "skill",
				Effect: content.EffectSpec{Kind: "heal", Amount: 2}},
		},
		StarterDeck: []content.DeckEntry{
			{CardID: 1, Count: 3},
			{CardID: 2, Count: 3},
		},
		Balance: content.Balance{
			PlayerHealth: 10,
			EnemyHealth:  10,
			MaxEnergy:    3,
			HandSize:     4,
			EnemyAttack:  2,
		},
	}
	require.NoError(t, cfg.Validate())
	lib, err := content.BuildLibrary(cfg)
	require.NoError(t, err)
	return lib
}

func TestNewMatch(t *testing.T) {
	lib := smallLibrary(t)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m := New("m1", lib, now)

	assert.Equal(t, StatusActive, m.Status)
	assert.Equal(t, 1, m.Context.Turn)
	assert.Equal(t, 3, m.Context.Energy, "first turn energy is granted without advancing the turn")
	assert.Len(t, m.Hand, 4)
	assert.Equal(t, 2, len(m.Deck.DrawPile))
	assert.Equal(t, 6, m.Deck.Size()+len(m.Hand), "six cards total")
	assert.Equal(t, now, m.CreatedAt)
}

func TestPlayCard(t *testing.T) {
	t.Run("spends energy, applies effect, discards card", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())

		played := m.Hand[0]
		res, err := m.PlayCard(lib, 0)
		require.NoError(t, err)

		assert.Equal(t, played, res.Card)
		assert.Equal(t, 2, m.Context.Energy)
		assert.Len(t, m.Hand, 3)
		assert.Equal(t, played, m.Deck.DiscardPile[len(m.Deck.DiscardPile)-1])
	})

	t.Run("refuses when energy is short and changes nothing", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())
		m.Context.Energy = 0

		handBefore := len(m.Hand)
		enemyBefore := m.Context.EnemyHealth

		_, err := m.PlayCard(lib, 0)
		assert.ErrorIs(t, err, ErrInsufficientEnergy)
		assert.Len(t, m.Hand, handBefore)
		assert.Equal(t, enemyBefore, m.Context.EnemyHealth)
	})

	t.Run("rejects bad hand index", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())

		_, err := m.PlayCard(lib, 99)
		assert.ErrorIs(t, err, ErrNoSuchHandCard)
		_, err = m.PlayCard(lib, -1)
		assert.ErrorIs(t, err, ErrNoSuchHandCard)
	})

	t.Run("winning play flips status", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())
		m.Context.EnemyHealth = 1

		// The opening hand always holds at least one Jab: it is the top
		// four of a six-card pile with three Jabs at the bottom.
		idx := -1
		for i, c := range m.Hand {
			if c.Name == "Jab" {
				idx = i
				break
			}
		}
		require.GreaterOrEqual(t, idx, 0, "expected a Jab in the opening hand")

		res, err := m.PlayCard(lib, idx)
		require.NoError(t, err)
		assert.Equal(t, StatusWon, res.Status)

		_, err = m.PlayCard(lib, 0)
		assert.ErrorIs(t, err, ErrMatchOver)
	})
}

func TestEndTurn(t *testing.T) {
	t.Run("enemy swings, energy resets, hand redraws", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())
		require.True(t, m.Context.SpendEnergy(2))

		res, err := m.EndTurn()
		require.NoError(t, err)

		assert.Equal(t, 8, m.Context.PlayerHealth)
		assert.Equal(t, 2, res.Turn)
		assert.Equal(t, 3, res.Energy, "unspent energy is discarded, not banked")
		assert.Len(t, m.Hand, 4)
	})

	t.Run("old hand is discarded before redraw", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())
		total := m.Deck.Size() + len(m.Hand)

		_, err := m.EndTurn()
		require.NoError(t, err)

		assert.Equal(t, total, m.Deck.Size()+len(m.Hand), "no cards lost across a turn")
	})

	t.Run("lethal swing ends the match without a redraw", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())
		m.Context.PlayerHealth = 1

		res, err := m.EndTurn()
		require.NoError(t, err)

		assert.Equal(t, StatusLost, res.Status)
		assert.Empty(t, m.Hand)
		assert.Equal(t, 1, res.Turn, "turn does not advance past defeat")
	})

	t.Run("many turns keep cycling the same six cards", func(t *testing.T) {
		lib := smallLibrary(t)
		m := New("m1", lib, time.Now())
		m.Context.PlayerHealth = 1000

		for i := 0; i < 10; i++ {
			_, err := m.EndTurn()
			require.NoError(t, err)
			assert.Len(t, m.Hand, 4, "turn %d", i)
		}
		assert.Equal(t, 6, m.Deck.Size()+len(m.Hand))
	})
}

func TestDrawCard(t *testing.T) {
	lib := smallLibrary(t)
	m := New("m1", lib, time.Now())

	c, ok, err := m.DrawCard()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, c, m.Hand[len(m.Hand)-1])

	// Drain everything; further draws are a soft miss, not an error.
	m.DrawCard()
	_, ok, err = m.DrawCard()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConcede(t *testing.T) {
	lib := testLibrary(t)
	m := New("m1", lib, time.Now())

	require.NoError(t, m.Concede())
	assert.Equal(t, StatusConceded, m.Status)
	assert.ErrorIs(t, m.Concede(), ErrMatchOver)
}

func TestMemoryRepo(t *testing.T) {
	repo := NewMemoryRepo()
	lib := testLibrary(t)
	m := New("m1", lib, time.Now())

	require.NoError(t, repo.Save(m))

	got, ok, err := repo.Get("m1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m, got)

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete("m1"))
	_, ok, _ = repo.Get("m1")
	assert.False(t, ok)

	assert.Error(t, repo.Save(&Match{}), "empty id is rejected")
}

func TestFileRepo(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)

	lib := smallLibrary(t)
	m := New("m1", lib, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(m))

	t.Run("round-trips through a fresh repo", func(t *testing.T) {
		fresh, err := NewFileRepo(dir)
		require.NoError(t, err)

		got, ok, err := fresh.Get("m1")
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, m.Status, got.Status)
		assert.Equal(t, m.Context, got.Context)
		assert.Equal(t, m.Hand, got.Hand)
		assert.Equal(t, m.Deck.DrawPile, got.Deck.DrawPile)
	})

	t.Run("missing match is not an error", func(t *testing.T) {
		_, ok, err := repo.Get("nope")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list finds snapshots on disk", func(t *testing.T) {
		all, err := repo.List()
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("delete removes the snapshot", func(t *testing.T) {
		require.NoError(t, repo.Delete("m1"))
		require.NoError(t, repo.Delete("m1"), "double delete is fine")
		_, ok, err := repo.Get("m1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
