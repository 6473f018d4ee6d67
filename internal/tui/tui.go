package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/pitango/internal/game"
)

// Session is the game the TUI drives.
type Session interface {
	State() *game.State
	UseCard(playerID string, cardIndex int, saidWord string) (game.HistoryEntry, error)
	Undo() (game.HistoryEntry, error)
	WriteExport(path string) (string, error)
}

const commandPlaceholder = "use <player#> <card#> [word] · undo · save · help · quit"

// pendingUse is a card waiting for its declared word.
type pendingUse struct {
	playerID   string
	playerName string
	cardIndex  int
	cardText   string
}

// TUIModel is the Bubble Tea model for a game in progress.
type TUIModel struct {
	session Session
	logger  *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	gameLog     []string
	pending     *pendingUse
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewTUIModel creates a model for an active session.
func NewTUIModel(session Session, logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(session, logger, false)
}

// NewTUIModelWithOptions creates a model with the test mode option. Test
// mode records log entries for assertions and skips viewport updates.
func NewTUIModelWithOptions(session Session, logger *log.Logger, testMode bool) *TUIModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Sized properly when WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = commandPlaceholder
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 100
	ti.PromptStyle = PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &TUIModel{
		session:     session,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		gameLog:     []string{},
		focusedPane: 1,
		testMode:    testMode,
		capturedLog: []string{},
	}
	m.addEntry(InfoStyle, "Type 'help' for commands.")
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "esc":
			if m.pending != nil {
				m.cancelPending()
				return m, nil
			}
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := m.input.Value()
				m.input.SetValue("")
				if m.Submit(line) {
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
				return m, nil
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit handles one line of input as if it had been typed at the prompt.
// It reports whether the user asked to quit.
func (m *TUIModel) Submit(line string) bool {
	if m.pending != nil {
		m.completePending(line)
		return false
	}

	cmd, err := ParseCommand(line)
	if err != nil {
		m.addEntry(ErrorStyle, err.Error())
		return false
	}

	switch cmd.Kind {
	case CmdNone:
	case CmdUse:
		m.handleUse(cmd)
	case CmdUndo:
		m.handleUndo()
	case CmdSave:
		m.handleSave(cmd.Path)
	case CmdHelp:
		for _, line := range strings.Split(HelpText, "\n") {
			m.addEntry(InfoStyle, line)
		}
	case CmdQuit:
		m.quitting = true
		return true
	}
	return false
}

func (m *TUIModel) handleUse(cmd Command) {
	state := m.session.State()
	if cmd.Player >= len(state.Players) {
		m.addEntry(ErrorStyle, fmt.Sprintf("No player %d (there are %d)", cmd.Player+1, len(state.Players)))
		return
	}
	player := state.Players[cmd.Player]
	hand := state.Hands[player.ID]
	if cmd.Card >= len(hand) {
		m.addEntry(ErrorStyle, fmt.Sprintf("%s has no card %d", player.DisplayName(cmd.Player), cmd.Card+1))
		return
	}

	if cmd.Word == "" {
		if hand[cmd.Card].Used {
			m.reportUseError(game.ErrCardUsed)
			return
		}
		m.pending = &pendingUse{
			playerID:   player.ID,
			playerName: player.DisplayName(cmd.Player),
			cardIndex:  cmd.Card,
			cardText:   hand[cmd.Card].Text,
		}
		m.input.Placeholder = "Word to declare (empty or Esc to cancel)"
		m.input.Prompt = fmt.Sprintf("[%s] > ", m.pending.cardText)
		return
	}

	m.useCard(player.ID, cmd.Card, cmd.Word)
}

func (m *TUIModel) completePending(word string) {
	p := m.pending
	if strings.TrimSpace(word) == "" {
		m.cancelPending()
		return
	}
	m.clearPending()
	m.useCard(p.playerID, p.cardIndex, word)
}

func (m *TUIModel) cancelPending() {
	m.addEntry(InfoStyle, fmt.Sprintf("Cancelled [%s]", m.pending.cardText))
	m.clearPending()
}

func (m *TUIModel) clearPending() {
	m.pending = nil
	m.input.Placeholder = commandPlaceholder
	m.input.Prompt = "> "
}

func (m *TUIModel) useCard(playerID string, cardIndex int, word string) {
	entry, err := m.session.UseCard(playerID, cardIndex, word)
	if err != nil {
		m.reportUseError(err)
		return
	}
	m.addEntry(SuccessStyle, m.describe(entry))
}

func (m *TUIModel) reportUseError(err error) {
	switch {
	case errors.Is(err, game.ErrCardUsed):
		m.addEntry(WarningStyle, "That card has already been used")
	case errors.Is(err, game.ErrEmptyWord):
		m.addEntry(WarningStyle, "Declare a word to play the card")
	default:
		m.logger.Error("Card use failed", "error", err)
		m.addEntry(ErrorStyle, err.Error())
	}
}

func (m *TUIModel) handleUndo() {
	entry, err := m.session.Undo()
	if errors.Is(err, game.ErrNothingToUndo) {
		m.addEntry(WarningStyle, "Nothing to undo")
		return
	}
	if err != nil {
		m.logger.Error("Undo failed", "error", err)
		m.addEntry(ErrorStyle, err.Error())
		return
	}
	m.addEntry(InfoStyle, fmt.Sprintf("Undid %s [%s], word back to 「%s」",
		m.playerName(entry.PlayerID), entry.CardText, entry.PrevWord))
}

func (m *TUIModel) handleSave(path string) {
	written, err := m.session.WriteExport(path)
	if err != nil {
		m.logger.Error("Export failed", "error", err)
		m.addEntry(ErrorStyle, err.Error())
		return
	}
	m.addEntry(SuccessStyle, "Saved "+written)
}

func (m *TUIModel) describe(e game.HistoryEntry) string {
	return fmt.Sprintf("%s played [%s] → 「%s」", m.playerName(e.PlayerID), e.CardText, e.SaidWord)
}

func (m *TUIModel) playerName(id string) string {
	players := m.session.State().Players
	if i := game.IndexOf(players, id); i >= 0 {
		return players[i].DisplayName(i)
	}
	return id
}

// AddLogEntry adds an unstyled entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.addEntry(GameLogStyle, entry)
}

func (m *TUIModel) addEntry(style lipgloss.Style, entry string) {
	m.gameLog = append(m.gameLog, style.Render(entry))

	// Test mode captures the plain text and skips viewport updates
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Pending reports whether a card is waiting for its word.
func (m *TUIModel) Pending() bool {
	return m.pending != nil
}

// Quitting reports whether the user has asked to leave.
func (m *TUIModel) Quitting() bool {
	return m.quitting
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
