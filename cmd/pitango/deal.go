package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lox/pitango/internal/game"
	"github.com/lox/pitango/internal/lobby"
	"github.com/lox/pitango/internal/store"
	"github.com/lox/pitango/internal/tui"
)

// DealCmd shows the hands a lobby deals without starting a session.
type DealCmd struct {
	LobbyFlags

	Save     bool   `help:"Save the resulting lobby as the default for 'pitango play'"`
	CardsOut string `help:"Write the cleaned card list to this file, one card per line" type:"path"`
}

func (c *DealCmd) Run(g *Globals) error {
	logger := g.batchLogger()

	st, err := g.openStore(logger)
	if err != nil {
		return err
	}

	l, err := c.loadLobby(st, logger)
	if err != nil {
		return err
	}
	l.CleanCards()

	v := l.Validate()
	fmt.Println(renderValidation(v))

	snap, err := l.Snapshot(c.Force)
	if err != nil {
		return err
	}

	fmt.Print(renderDeal(l, snap))

	if c.CardsOut != "" {
		if err := store.WriteFileAtomic(c.CardsOut, []byte(l.CardsText()+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write cards: %w", err)
		}
		logger.Info("Wrote card list", "path", c.CardsOut, "cards", len(l.Cards()))
	}

	if c.Save {
		if err := l.Save(st); err != nil {
			return err
		}
		logger.Info("Saved lobby", "dir", g.DataDir)
	}

	if snap.Seed == "" {
		fmt.Fprintln(os.Stderr, noteStyle.Render("No seed set; 'pitango play' will deal different hands."))
	}
	return nil
}

func renderDeal(l *lobby.Lobby, snap game.Snapshot) string {
	state := game.NewState(snap)
	counts := l.Counts()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pitango deal"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Seed: %q  Start word: 「%s」\n", snap.Seed, state.CurrentWord)
	fmt.Fprintf(&b, "Deck: %d cards, %d needed\n\n", counts.Available, counts.Needed)

	for i, p := range state.Players {
		b.WriteString(tui.PlayerStyle(p.Color).Render(p.DisplayName(i)))
		b.WriteString("\n")
		for j, card := range state.Hands[p.ID] {
			fmt.Fprintf(&b, "  %2d. %s\n", j+1, tui.CardStyle.Render(card.Text))
		}
		if len(state.Hands[p.ID]) < snap.PerHand {
			b.WriteString(warnStyle.Render(fmt.Sprintf("  short hand: %d of %d", len(state.Hands[p.ID]), snap.PerHand)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
