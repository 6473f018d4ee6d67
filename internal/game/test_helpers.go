package game

import "fmt"

// TestSnapshotOption configures test snapshot creation
type TestSnapshotOption func(*Snapshot)

// Test snapshot options
func WithSeed(seed string) TestSnapshotOption {
	return func(s *Snapshot) { s.Seed = seed }
}

func WithPerHand(n int) TestSnapshotOption {
	return func(s *Snapshot) { s.PerHand = n }
}

func WithCards(cards ...string) TestSnapshotOption {
	return func(s *Snapshot) { s.Cards = cards }
}

func WithStartWord(word string) TestSnapshotOption {
	return func(s *Snapshot) { s.StartWord = word }
}

// WithPlayers replaces the players with unnamed ones using the given ids.
func WithPlayers(ids ...string) TestSnapshotOption {
	return func(s *Snapshot) {
		s.Players = make([]Player, len(ids))
		for i, id := range ids {
			s.Players[i] = Player{ID: id, Color: "#60a5fa"}
		}
	}
}

// NewTestSnapshot creates a snapshot for testing with sensible defaults:
// two players, two cards each from a deck of eight, seed "test".
func NewTestSnapshot(opts ...TestSnapshotOption) Snapshot {
	s := Snapshot{
		PerHand:   2,
		Seed:      "test",
		StartWord: DefaultStartWord,
	}
	WithPlayers("p1", "p2")(&s)
	for i := 1; i <= 8; i++ {
		s.Cards = append(s.Cards, fmt.Sprintf("c%d", i))
	}

	for _, opt := range opts {
		opt(&s)
	}
	return s
}
