package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/pitango/internal/game"
)

const minSidebarWidth = 28

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	state := m.session.State()

	header := m.renderHeader(state)
	headerHeight := lipgloss.Height(header)

	// Input pane (bottom, full width)
	inputContent := m.renderInputPane()
	inputHeight := lipgloss.Height(inputContent) + 2
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(max(1, m.width-2))
	if m.focusedPane == 1 {
		inputStyle = inputStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	inputPane := inputStyle.Render(inputContent)

	paneHeight := max(1, m.height-headerHeight-inputHeight-2)

	// Players sidebar (right)
	sidebarContent := m.renderPlayersPane(state)
	sidebarWidth := max(minSidebarWidth, lipgloss.Width(sidebarContent))
	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Log pane (left, fills what the sidebar leaves)
	logWidth := max(1, m.width-sidebarWidth-4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// On first proper sizing, show the latest entries
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	middle := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, header, middle, inputPane)
}

func (m *TUIModel) renderHeader(state *game.State) string {
	title := HeaderStyle.Render("Pitango")
	word := CurrentWordStyle.Render(fmt.Sprintf("「%s」", state.CurrentWord))
	turns := InfoStyle.Render(fmt.Sprintf("%d played", len(state.History)))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  Current word: ", word, "  ", turns)
}

// renderPlayersPane lists every hand with one-based card numbers for the
// use command.
func (m *TUIModel) renderPlayersPane(state *game.State) string {
	var content strings.Builder
	for i, p := range state.Players {
		hand := state.Hands[p.ID]
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(PlayerStyle(p.Color).Render(fmt.Sprintf("%d. %s", i+1, p.DisplayName(i))))
		content.WriteString(InfoStyle.Render(fmt.Sprintf("  %d / %d", hand.Remaining(), len(hand))))
		content.WriteString("\n")
		if len(hand) == 0 {
			content.WriteString(InfoStyle.Render("   (no cards)"))
			content.WriteString("\n")
		}
		for j, c := range hand {
			line := fmt.Sprintf("   %d %s", j+1, c.Text)
			if c.Used {
				content.WriteString(UsedCardStyle.Render(line))
			} else {
				content.WriteString(CardStyle.Render(line))
			}
			content.WriteString("\n")
		}
	}
	return strings.TrimRight(content.String(), "\n")
}

func (m *TUIModel) renderInputPane() string {
	var content strings.Builder
	content.WriteString(m.input.View())
	content.WriteString("\n")

	var help string
	switch {
	case m.focusedPane == 0:
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	case m.pending != nil:
		help = fmt.Sprintf("%s plays [%s] • Enter to declare • Esc to cancel", m.pending.playerName, m.pending.cardText)
	default:
		help = "Tab to scroll log • Enter to submit • Esc or Ctrl+C to quit"
	}
	content.WriteString(InfoStyle.Render(help))
	return content.String()
}
