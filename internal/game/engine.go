package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Persister stores the full session after every change.
type Persister interface {
	Save(state *State) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(state *State) error

// Save calls f(state).
func (f PersisterFunc) Save(state *State) error {
	return f(state)
}

// NoOpPersister discards every save (for tests and dry runs)
type NoOpPersister struct{}

// Save does nothing
func (NoOpPersister) Save(*State) error { return nil }

// Engine applies card uses and undos to a session.
//
// Engine is not safe for concurrent use. Every call runs to completion,
// including its persistence write, before returning.
type Engine struct {
	state   *State
	persist Persister
	logger  *log.Logger
}

// NewEngine wraps state. A nil persister disables persistence.
func NewEngine(state *State, persist Persister, logger *log.Logger) *Engine {
	if persist == nil {
		persist = NoOpPersister{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		state:   state,
		persist: persist,
		logger:  logger.WithPrefix("engine"),
	}
}

// State returns a copy of the current session.
func (e *Engine) State() *State {
	return e.state.Clone()
}

// CurrentWord returns the word currently in play.
func (e *Engine) CurrentWord() string {
	return e.state.CurrentWord
}

// CanUndo reports whether there is an action to undo.
func (e *Engine) CanUndo() bool {
	return len(e.state.History) > 0
}

// UseCard marks a card as played for saidWord, which becomes the current
// word. A rejected call returns one of the package errors and changes
// nothing.
func (e *Engine) UseCard(playerID string, cardIndex int, saidWord string) (HistoryEntry, error) {
	hand, ok := e.state.Hands[playerID]
	if !ok {
		return HistoryEntry{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, playerID)
	}
	if cardIndex < 0 || cardIndex >= len(hand) {
		return HistoryEntry{}, fmt.Errorf("%w: %d (hand has %d)", ErrCardOutOfRange, cardIndex, len(hand))
	}
	if hand[cardIndex].Used {
		return HistoryEntry{}, fmt.Errorf("%w: %q", ErrCardUsed, hand[cardIndex].Text)
	}
	word := strings.TrimSpace(saidWord)
	if word == "" {
		return HistoryEntry{}, ErrEmptyWord
	}

	entry := HistoryEntry{
		PlayerID:  playerID,
		CardIndex: cardIndex,
		CardText:  hand[cardIndex].Text,
		SaidWord:  word,
		PrevWord:  e.state.CurrentWord,
	}
	e.apply(entry)

	if err := e.persist.Save(e.state); err != nil {
		e.revert(entry)
		return HistoryEntry{}, fmt.Errorf("failed to persist card use: %w", err)
	}

	e.logger.Debug("Card used", "player", playerID, "card", entry.CardText, "word", word)
	return entry, nil
}

// Undo reverses the most recent card use.
func (e *Engine) Undo() (HistoryEntry, error) {
	n := len(e.state.History)
	if n == 0 {
		return HistoryEntry{}, ErrNothingToUndo
	}

	entry := e.state.History[n-1]
	e.revert(entry)

	if err := e.persist.Save(e.state); err != nil {
		e.apply(entry)
		return HistoryEntry{}, fmt.Errorf("failed to persist undo: %w", err)
	}

	e.logger.Debug("Card use undone", "player", entry.PlayerID, "card", entry.CardText, "word", entry.PrevWord)
	return entry, nil
}

func (e *Engine) apply(entry HistoryEntry) {
	e.setUsed(entry, true)
	e.state.CurrentWord = entry.SaidWord
	e.state.History = append(e.state.History, entry)
}

// revert assumes entry is the top of the history stack.
func (e *Engine) revert(entry HistoryEntry) {
	e.state.History = e.state.History[:len(e.state.History)-1]
	e.setUsed(entry, false)
	e.state.CurrentWord = entry.PrevWord
}

func (e *Engine) setUsed(entry HistoryEntry, used bool) {
	hand := e.state.Hands[entry.PlayerID]
	if entry.CardIndex >= 0 && entry.CardIndex < len(hand) {
		hand[entry.CardIndex].Used = used
	}
}
