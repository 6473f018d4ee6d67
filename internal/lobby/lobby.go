// Package lobby holds the pre-game configuration: players, cards per hand,
// seed, start word and the card list. A lobby is edited, validated and then
// frozen into a game.Snapshot to deal from.
package lobby

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lox/pitango/internal/game"
	"github.com/lox/pitango/internal/store"
)

var (
	ErrLobbyFull     = errors.New("lobby is full")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrNotReady      = errors.New("lobby is not ready")
)

// Palette assigns display colours to players by position.
var Palette = []string{
	"#60a5fa", "#f472b6", "#34d399", "#fbbf24", "#a78bfa",
	"#fca5a5", "#22d3ee", "#fdba74", "#86efac", "#93c5fd",
}

// State is the persisted form of a lobby.
type State struct {
	Players   []game.Player `json:"players"`
	PerHand   int           `json:"perHand"`
	Seed      string        `json:"seed"`
	CardsRaw  string        `json:"cardsRaw"`
	StartWord string        `json:"startWord,omitempty"`
}

// Lobby is an editable pre-game configuration.
type Lobby struct {
	state State
	newID func() string
}

// New returns an empty lobby with the default cards per hand.
func New() *Lobby {
	return &Lobby{
		state: State{Players: []game.Player{}, PerHand: DefaultPerHand},
		newID: uuid.NewString,
	}
}

// FromState wraps a previously saved state.
func FromState(s State) *Lobby {
	l := New()
	l.state = s
	l.state.Players = append([]game.Player{}, s.Players...)
	return l
}

// State returns a copy of the lobby's current state.
func (l *Lobby) State() State {
	s := l.state
	s.Players = append([]game.Player{}, l.state.Players...)
	return s
}

// Players returns the configured players in order.
func (l *Lobby) Players() []game.Player {
	return append([]game.Player{}, l.state.Players...)
}

// EnsurePlayable fills in what a brand new lobby lacks: the default card
// list when no cards are set and one unnamed player when there are none.
func (l *Lobby) EnsurePlayable() {
	if l.state.CardsRaw == "" {
		l.LoadDefaultCards()
	}
	if len(l.state.Players) == 0 {
		_, _ = l.AddPlayer("")
	}
}

// AddPlayer appends a player with a fresh id and the next palette colour.
func (l *Lobby) AddPlayer(name string) (game.Player, error) {
	if len(l.state.Players) >= MaxPlayers {
		return game.Player{}, fmt.Errorf("%w (maximum %d players)", ErrLobbyFull, MaxPlayers)
	}
	p := game.Player{
		ID:    l.newID(),
		Name:  name,
		Color: Palette[len(l.state.Players)%len(Palette)],
	}
	l.state.Players = append(l.state.Players, p)
	return p, nil
}

// RemovePlayer drops the player with id.
func (l *Lobby) RemovePlayer(id string) error {
	i := game.IndexOf(l.state.Players, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	l.state.Players = append(l.state.Players[:i], l.state.Players[i+1:]...)
	return nil
}

// RenamePlayer sets the display name of the player with id.
func (l *Lobby) RenamePlayer(id, name string) error {
	i := game.IndexOf(l.state.Players, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	l.state.Players[i].Name = name
	return nil
}

// MovePlayer moves the player at from to position to, shifting the players
// in between.
func (l *Lobby) MovePlayer(from, to int) error {
	n := len(l.state.Players)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move %d -> %d out of range for %d players", from, to, n)
	}
	if from == to {
		return nil
	}
	p := l.state.Players[from]
	players := append(l.state.Players[:from:from], l.state.Players[from+1:]...)
	players = append(players[:to], append([]game.Player{p}, players[to:]...)...)
	l.state.Players = players
	return nil
}

// ClearPlayers removes every player.
func (l *Lobby) ClearPlayers() {
	l.state.Players = []game.Player{}
}

// SetPerHand sets the cards dealt to each player, clamped to
// [MinPerHand, MaxPerHand].
func (l *Lobby) SetPerHand(n int) {
	l.state.PerHand = max(MinPerHand, min(MaxPerHand, n))
}

func (l *Lobby) SetSeed(seed string) {
	l.state.Seed = seed
}

func (l *Lobby) SetStartWord(word string) {
	l.state.StartWord = strings.TrimSpace(word)
}

// SetCards replaces the raw card text. It is kept as typed; sanitizing
// happens when counting and dealing.
func (l *Lobby) SetCards(raw string) {
	l.state.CardsRaw = raw
}

// LoadDefaultCards replaces the card text with the built-in deck.
func (l *Lobby) LoadDefaultCards() {
	l.state.CardsRaw = DefaultCardsText()
}

// CleanCards rewrites the card text in sanitized form.
func (l *Lobby) CleanCards() {
	l.state.CardsRaw = strings.Join(SanitizeCards(l.state.CardsRaw), "\n")
}

// CardsText returns the raw card text, suitable for a cards.txt export.
func (l *Lobby) CardsText() string {
	return l.state.CardsRaw
}

// Cards returns the sanitized card list.
func (l *Lobby) Cards() []string {
	return SanitizeCards(l.state.CardsRaw)
}

// Reset returns the lobby to its initial empty state.
func (l *Lobby) Reset() {
	l.state = State{Players: []game.Player{}, PerHand: DefaultPerHand}
}

// Counts reports the player count, cards per hand, cards a full deal needs
// and cards available.
func (l *Lobby) Counts() Counts {
	c := Counts{
		Players:   len(l.state.Players),
		PerHand:   l.state.PerHand,
		Available: len(l.Cards()),
	}
	c.Needed = c.Players * c.PerHand
	return c
}

// Snapshot freezes the lobby into the configuration a session is dealt
// from. It fails unless Validate reports OK; force accepts warnings such
// as a short deck.
func (l *Lobby) Snapshot(force bool) (game.Snapshot, error) {
	v := l.Validate()
	if !v.OK && !(force && v.Level == LevelWarn) {
		return game.Snapshot{}, fmt.Errorf("%w: %s", ErrNotReady, v.Message)
	}

	startWord := l.state.StartWord
	if startWord == "" {
		startWord = game.DefaultStartWord
	}
	return game.Snapshot{
		Players:   l.Players(),
		PerHand:   l.state.PerHand,
		Seed:      l.state.Seed,
		Cards:     l.Cards(),
		StartWord: startWord,
	}, nil
}

// Load reads the lobby saved in st. A missing or unreadable lobby yields a
// fresh one; the decode error is returned alongside so callers can log it.
func Load(st store.Store) (*Lobby, error) {
	data, err := st.Get(store.KeyLobbyState)
	if errors.Is(err, store.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return New(), fmt.Errorf("failed to read lobby: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return New(), fmt.Errorf("failed to decode lobby: %w", err)
	}
	return FromState(s), nil
}

// Save writes the lobby to st.
func (l *Lobby) Save(st store.Store) error {
	data, err := json.Marshal(l.state)
	if err != nil {
		return fmt.Errorf("failed to encode lobby: %w", err)
	}
	if err := st.Put(store.KeyLobbyState, data); err != nil {
		return fmt.Errorf("failed to save lobby: %w", err)
	}
	return nil
}
