package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pitango/internal/lobby"
	"github.com/lox/pitango/internal/session"
	"github.com/lox/pitango/internal/store"
	"github.com/lox/pitango/internal/tui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFEAA7")).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

// LobbyFlags select and override the lobby a game is dealt from.
type LobbyFlags struct {
	Config    string   `short:"c" help:"Lobby config file (HCL); the saved lobby is used when omitted" type:"path" env:"PITANGO_CONFIG"`
	Seed      string   `help:"Shuffle seed; the same seed deals the same hands"`
	StartWord string   `help:"Word the chain starts from"`
	PerHand   int      `help:"Cards dealt to each player (1-20)"`
	Player    []string `short:"p" help:"Player names in turn order; replaces the lobby's players"`
	Force     bool     `help:"Deal even when the deck is too small for every player to get a full hand"`
}

// loadLobby builds the lobby from the config file when one is given, or
// from the lobby saved in st, then applies flag overrides.
func (f LobbyFlags) loadLobby(st store.Store, logger *log.Logger) (*lobby.Lobby, error) {
	var l *lobby.Lobby
	if f.Config != "" {
		if _, err := os.Stat(f.Config); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		cfg, err := lobby.LoadConfig(f.Config)
		if err != nil {
			return nil, err
		}
		l = cfg.Lobby()
		logger.Debug("Loaded lobby config", "path", f.Config)
	} else {
		var err error
		l, err = lobby.Load(st)
		if err != nil {
			logger.Warn("Ignoring unreadable saved lobby", "error", err)
		}
	}

	if len(f.Player) > 0 {
		l.ClearPlayers()
		for _, name := range f.Player {
			if _, err := l.AddPlayer(name); err != nil {
				return nil, err
			}
		}
	}
	l.EnsurePlayable()

	if f.Seed != "" {
		l.SetSeed(f.Seed)
	}
	if f.StartWord != "" {
		l.SetStartWord(f.StartWord)
	}
	if f.PerHand != 0 {
		l.SetPerHand(f.PerHand)
	}
	return l, nil
}

func renderValidation(v lobby.Validation) string {
	switch v.Level {
	case lobby.LevelOK:
		return okStyle.Render(v.Message)
	case lobby.LevelWarn:
		return warnStyle.Render(v.Message)
	default:
		return badStyle.Render(v.Message)
	}
}

// runGame opens the game screen on the active session and blocks until the
// player quits.
func runGame(g *Globals, mgr *session.Manager, logger *log.Logger) error {
	if !mgr.Active() {
		return session.ErrNoSession
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	model := tui.NewTUIModel(mgr, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("game screen failed: %w", err)
	}

	state := mgr.State()
	logger.Info("Game screen closed", "history", len(state.History), "word", state.CurrentWord)
	fmt.Println(noteStyle.Render(fmt.Sprintf("Progress saved in %s. Run 'pitango continue' to pick it up again.", g.DataDir)))
	return nil
}
