// Package transcript renders an exported session as a human-readable
// record of who played which card for which word.
package transcript

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/pitango/internal/codec"
	"github.com/lox/pitango/internal/game"
)

// Transcript is the readable summary of one session.
type Transcript struct {
	Schema      string   `toml:"schema"`
	ExportedAt  string   `toml:"exported_at,omitempty"`
	StartWord   string   `toml:"start_word"`
	CurrentWord string   `toml:"current_word"`
	PerHand     int      `toml:"per_hand"`
	Seed        string   `toml:"seed,omitempty"`
	Players     []Player `toml:"players"`
	Turns       []Turn   `toml:"turns"`
}

// Player summarises one player's hand at export time.
type Player struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Remaining int    `toml:"remaining"`
	Total     int    `toml:"total"`
}

// Turn is one card use, numbered from 1.
type Turn struct {
	Number   int    `toml:"number"`
	PlayerID string `toml:"player_id"`
	Player   string `toml:"player"`
	Card     string `toml:"card"`
	Word     string `toml:"word"`
	Previous string `toml:"previous"`
}

// FromExport builds a transcript from an export document. Players missing
// from the settings are shown by id.
func FromExport(p codec.ExportPayload) *Transcript {
	t := &Transcript{
		Schema:      p.Schema,
		ExportedAt:  p.ExportedAt,
		StartWord:   p.Settings.StartWord,
		CurrentWord: p.CurrentWord,
		PerHand:     p.Settings.PerHand,
		Seed:        p.Settings.Seed,
		Players:     make([]Player, 0, len(p.Settings.Players)),
		Turns:       make([]Turn, 0, len(p.History)),
	}
	if t.StartWord == "" {
		t.StartWord = game.DefaultStartWord
	}

	names := make(map[string]string, len(p.Settings.Players))
	for i, pl := range p.Settings.Players {
		name := pl.DisplayName(i)
		names[pl.ID] = name
		hand := p.Hands[pl.ID]
		t.Players = append(t.Players, Player{
			ID:        pl.ID,
			Name:      name,
			Remaining: hand.Remaining(),
			Total:     len(hand),
		})
	}

	for i, h := range p.History {
		name, ok := names[h.PlayerID]
		if !ok {
			name = h.PlayerID
		}
		t.Turns = append(t.Turns, Turn{
			Number:   i + 1,
			PlayerID: h.PlayerID,
			Player:   name,
			Card:     h.CardText,
			Word:     h.SaidWord,
			Previous: h.PrevWord,
		})
	}
	return t
}

// Encode writes the transcript as TOML.
func Encode(w io.Writer, t *Transcript) error {
	if t == nil {
		return fmt.Errorf("transcript: nil transcript")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(t)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(t *Transcript) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Text writes the transcript as plain lines:
//
//	Start word: しりとり
//	Current word: りんご
//	Dealt: 7 cards per player
//	History:
//	1. Alice / [赤い] → 「りんご」 (prev: しりとり)
func Text(w io.Writer, t *Transcript) error {
	lines := []string{
		"Start word: " + t.StartWord,
		"Current word: " + t.CurrentWord,
		fmt.Sprintf("Dealt: %d cards per player", t.PerHand),
		"History:",
	}
	for _, turn := range t.Turns {
		lines = append(lines, fmt.Sprintf("%d. %s / [%s] → 「%s」 (prev: %s)",
			turn.Number, turn.Player, turn.Card, turn.Word, turn.Previous))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
