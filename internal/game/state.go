package game

import (
	"github.com/lox/pitango/internal/deck"
	"github.com/lox/pitango/internal/randutil"
)

// DefaultStartWord opens the chain when the lobby leaves it blank.
const DefaultStartWord = "しりとり"

// Snapshot is the validated lobby configuration a session is dealt from.
type Snapshot struct {
	Players   []Player `json:"players"`
	PerHand   int      `json:"perHand"`
	Seed      string   `json:"seed"`
	Cards     []string `json:"cards"`
	StartWord string   `json:"startWord"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Players = append([]Player(nil), s.Players...)
	out.Cards = append([]string(nil), s.Cards...)
	return out
}

// HistoryEntry records one card use so it can be undone.
type HistoryEntry struct {
	PlayerID  string `json:"playerId"`
	CardIndex int    `json:"cardIndex"`
	CardText  string `json:"cardText"`
	SaidWord  string `json:"saidWord"`
	PrevWord  string `json:"prevWord"`
}

// State is a live session: who holds which cards, the word currently in
// play, and the stack of actions taken so far.
type State struct {
	Players     []Player             `json:"players"`
	Hands       map[string]deck.Hand `json:"hands"`
	CurrentWord string               `json:"currentWord"`
	History     []HistoryEntry       `json:"history"`
}

// NewState deals snap into a fresh session. The shuffle is driven by
// snap.Seed; the same snapshot always deals the same hands unless the seed
// is empty.
func NewState(snap Snapshot) *State {
	d := deck.NewDeck(snap.Cards, randutil.FromSeed(snap.Seed))
	d.Shuffle()

	startWord := snap.StartWord
	if startWord == "" {
		startWord = DefaultStartWord
	}

	return &State{
		Players:     append([]Player(nil), snap.Players...),
		Hands:       deck.DealHands(PlayerIDs(snap.Players), snap.PerHand, d),
		CurrentWord: startWord,
		History:     []HistoryEntry{},
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	out := &State{
		Players:     append([]Player(nil), s.Players...),
		Hands:       make(map[string]deck.Hand, len(s.Hands)),
		CurrentWord: s.CurrentWord,
		History:     append([]HistoryEntry{}, s.History...),
	}
	for id, h := range s.Hands {
		out.Hands[id] = h.Clone()
	}
	return out
}

// UsedCount returns the number of used cards across every hand.
func (s *State) UsedCount() int {
	n := 0
	for _, h := range s.Hands {
		n += len(h) - h.Remaining()
	}
	return n
}

// DealtCount returns the number of cards across every hand.
func (s *State) DealtCount() int {
	n := 0
	for _, h := range s.Hands {
		n += len(h)
	}
	return n
}
