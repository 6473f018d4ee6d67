// Package session owns the single active game and keeps storage in step
// with it.
//
// A Manager is Idle until Start, Resume or Recover succeeds, and returns to
// Idle on End. Starting or resuming replaces whatever session was active.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pitango/internal/codec"
	"github.com/lox/pitango/internal/game"
	"github.com/lox/pitango/internal/store"
)

// ErrNoSession is returned when an operation needs an active session.
var ErrNoSession = errors.New("no active session")

// Manager holds the active session and persists it after every change.
//
// Manager is not safe for concurrent use.
type Manager struct {
	store  store.Store
	clock  quartz.Clock
	logger *log.Logger

	snapshot game.Snapshot
	engine   *game.Engine
}

// NewManager creates an idle manager.
func NewManager(st store.Store, clock quartz.Clock, logger *log.Logger) *Manager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		store:  st,
		clock:  clock,
		logger: logger.WithPrefix("session"),
	}
}

// Active reports whether a session is in progress.
func (m *Manager) Active() bool {
	return m.engine != nil
}

// Start deals a new session from snap, discarding any previous one.
func (m *Manager) Start(snap game.Snapshot) error {
	state := game.NewState(snap)
	if err := m.install(snap.Clone(), state); err != nil {
		return err
	}
	m.logger.Info("Session started",
		"players", len(snap.Players),
		"per_hand", snap.PerHand,
		"cards", len(snap.Cards),
		"dealt", state.DealtCount())
	return nil
}

// Resume validates an export document and makes it the active session.
// Storage is only touched once the document has passed every check; on
// failure the previous session, if any, stays active.
func (m *Manager) Resume(data []byte) error {
	snap, state, err := codec.Resume(data)
	if err != nil {
		return err
	}
	if err := m.install(snap, state); err != nil {
		return err
	}
	m.logger.Info("Session resumed", "players", len(snap.Players), "history", len(state.History))
	return nil
}

// Recover reloads the session persisted by an earlier run. A damaged
// snapshot is deleted rather than partially loaded, and the caller must
// deal a fresh session.
func (m *Manager) Recover() error {
	rawSnap, err := m.store.Get(store.KeySessionSnapshot)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("failed to read session snapshot: %w", err)
	}
	rawState, err := m.store.Get(store.KeyGameState)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("failed to read session state: %w", err)
	}

	snap, err := codec.DecodeSnapshot(rawSnap)
	if err == nil {
		var state *game.State
		state, err = codec.DecodeLive(rawState)
		if err == nil {
			m.attach(snap, state)
			m.logger.Info("Session recovered", "history", len(state.History), "word", state.CurrentWord)
			return nil
		}
	}

	m.logger.Warn("Discarding damaged session", "error", err)
	if derr := m.clear(); derr != nil {
		return errors.Join(fmt.Errorf("%w: %w", ErrNoSession, err), derr)
	}
	return fmt.Errorf("%w: stored session discarded: %w", ErrNoSession, err)
}

// End discards the active session and its stored copy.
func (m *Manager) End() error {
	m.engine = nil
	m.snapshot = game.Snapshot{}
	if err := m.clear(); err != nil {
		return err
	}
	m.logger.Info("Session ended")
	return nil
}

// UseCard plays a card on the active session.
func (m *Manager) UseCard(playerID string, cardIndex int, saidWord string) (game.HistoryEntry, error) {
	if m.engine == nil {
		return game.HistoryEntry{}, ErrNoSession
	}
	return m.engine.UseCard(playerID, cardIndex, saidWord)
}

// Undo reverses the most recent card use on the active session.
func (m *Manager) Undo() (game.HistoryEntry, error) {
	if m.engine == nil {
		return game.HistoryEntry{}, ErrNoSession
	}
	return m.engine.Undo()
}

// State returns a copy of the active session, or nil when idle.
func (m *Manager) State() *game.State {
	if m.engine == nil {
		return nil
	}
	return m.engine.State()
}

// Snapshot returns the configuration the active session was dealt from.
func (m *Manager) Snapshot() (game.Snapshot, bool) {
	if m.engine == nil {
		return game.Snapshot{}, false
	}
	return m.snapshot.Clone(), true
}

// CanUndo reports whether the active session has history to undo.
func (m *Manager) CanUndo() bool {
	return m.engine != nil && m.engine.CanUndo()
}

// Export builds an export document for the active session.
func (m *Manager) Export() (codec.ExportPayload, error) {
	if m.engine == nil {
		return codec.ExportPayload{}, ErrNoSession
	}
	return codec.NewExport(m.snapshot, m.engine.State(), m.clock.Now()), nil
}

// ExportFileName returns the default file name for an export taken now.
func (m *Manager) ExportFileName() string {
	return codec.ExportFileName(m.clock.Now().Local())
}

// WriteExport writes the export document to path. An empty path, or one
// naming an existing directory, gets the default file name. The path
// actually written is returned.
func (m *Manager) WriteExport(path string) (string, error) {
	payload, err := m.Export()
	if err != nil {
		return "", err
	}
	data, err := codec.MarshalExport(payload)
	if err != nil {
		return "", err
	}

	switch info, statErr := os.Stat(path); {
	case path == "":
		path = m.ExportFileName()
	case statErr == nil && info.IsDir():
		path = filepath.Join(path, m.ExportFileName())
	}

	if err := store.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	m.logger.Info("Session exported", "path", path, "history", len(payload.History))
	return path, nil
}

// install replaces the active session and rewrites both storage keys. On
// failure the manager is left idle with storage cleared.
func (m *Manager) install(snap game.Snapshot, state *game.State) error {
	m.engine = nil
	if err := m.clear(); err != nil {
		return err
	}

	rawSnap, err := codec.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := m.store.Put(store.KeySessionSnapshot, rawSnap); err != nil {
		return fmt.Errorf("failed to store session snapshot: %w", err)
	}
	if err := m.saveState(state); err != nil {
		_ = m.clear()
		return err
	}

	m.attach(snap, state)
	return nil
}

func (m *Manager) attach(snap game.Snapshot, state *game.State) {
	m.snapshot = snap
	m.engine = game.NewEngine(state, game.PersisterFunc(m.saveState), m.logger)
}

func (m *Manager) saveState(state *game.State) error {
	data, err := codec.EncodeLive(state)
	if err != nil {
		return err
	}
	if err := m.store.Put(store.KeyGameState, data); err != nil {
		return fmt.Errorf("failed to store session state: %w", err)
	}
	return nil
}

func (m *Manager) clear() error {
	if err := m.store.Delete(store.KeyGameState, store.KeySessionSnapshot); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	return nil
}
