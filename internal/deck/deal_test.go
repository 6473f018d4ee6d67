package deck

import (
	"testing"

	"github.com/lox/pitango/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealSeeded(seed string, players []string, perHand int, cards []string) map[string]Hand {
	d := NewDeck(cards, randutil.FromSeed(seed))
	d.Shuffle()
	return DealHands(players, perHand, d)
}

func TestDealHandsRoundRobin(t *testing.T) {
	d := NewDeck([]string{"a", "b", "c", "d", "e"}, constSource(0))
	hands := DealHands([]string{"p1", "p2"}, 2, d)

	assert.Equal(t, Hand{{Text: "a"}, {Text: "c"}}, hands["p1"])
	assert.Equal(t, Hand{{Text: "b"}, {Text: "d"}}, hands["p2"])
	assert.Equal(t, []string{"e"}, d.Cards())
}

func TestDealHandsScenarioA(t *testing.T) {
	cards := []string{"c1", "c2", "c3", "c4", "c5", "c6"}
	shuffled := Shuffle(cards, randutil.FromSeed("abc"))

	d := NewDeck(cards, randutil.FromSeed("abc"))
	d.Shuffle()
	hands := DealHands([]string{"p1", "p2"}, 2, d)

	require.Len(t, hands["p1"], 2)
	require.Len(t, hands["p2"], 2)
	assert.Equal(t, 2, d.CardsRemaining())

	// Dealt cards are the shuffled prefix, alternating players.
	assert.Equal(t, shuffled[0], hands["p1"][0].Text)
	assert.Equal(t, shuffled[1], hands["p2"][0].Text)
	assert.Equal(t, shuffled[2], hands["p1"][1].Text)
	assert.Equal(t, shuffled[3], hands["p2"][1].Text)
	assert.Equal(t, shuffled[4:], d.Cards())
}

func TestDealHandsDeterministic(t *testing.T) {
	players := []string{"p1", "p2", "p3"}
	cards := makeCards(40)

	for _, seed := range []string{"a", "abc", "0", "しりとり", "long seed with spaces"} {
		first := dealSeeded(seed, players, 5, cards)
		second := dealSeeded(seed, players, 5, cards)
		assert.Equal(t, first, second, "seed %q", seed)
	}
}

func TestDealHandsConservation(t *testing.T) {
	tests := []struct {
		name    string
		players int
		perHand int
		cards   int
	}{
		{"exact", 3, 4, 12},
		{"surplus", 2, 2, 6},
		{"short mid round", 3, 4, 10},
		{"short first round", 4, 3, 2},
		{"single player", 1, 7, 5},
		{"no cards", 3, 2, 0},
		{"ten players", 10, 20, 83},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			players := make([]string, tt.players)
			for i := range players {
				players[i] = string(rune('A' + i))
			}
			cards := makeCards(tt.cards)
			hands := dealSeeded("conserve", players, tt.perHand, cards)

			require.Len(t, hands, tt.players)

			total := 0
			seen := map[string]bool{}
			for _, h := range hands {
				total += len(h)
				for _, c := range h {
					assert.False(t, seen[c.Text], "card %q dealt twice", c.Text)
					seen[c.Text] = true
					assert.False(t, c.Used)
				}
			}
			assert.Equal(t, min(tt.players*tt.perHand, tt.cards), total)

			// Sizes never increase along the configured order and differ by at most one.
			for i := 1; i < len(players); i++ {
				prev, cur := len(hands[players[i-1]]), len(hands[players[i]])
				assert.GreaterOrEqual(t, prev, cur)
				assert.LessOrEqual(t, prev-cur, 1)
			}
		})
	}
}

func TestDealHandsZeroPerHand(t *testing.T) {
	d := NewDeck(makeCards(3), constSource(0))
	hands := DealHands([]string{"p1"}, 0, d)
	assert.Empty(t, hands["p1"])
	assert.NotNil(t, hands["p1"])
	assert.Equal(t, 3, d.CardsRemaining())
}
