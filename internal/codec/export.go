package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lox/pitango/internal/deck"
	"github.com/lox/pitango/internal/game"
)

// ExportSchema identifies the portable export format.
const ExportSchema = "pitango-solo-export/v1"

// exportTimeFormat is RFC 3339 in UTC with millisecond precision.
const exportTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ExportPayload is a complete, portable record of a session.
type ExportPayload struct {
	Schema      string               `json:"schema"`
	ExportedAt  string               `json:"exportedAt"`
	Settings    game.Snapshot        `json:"settings"`
	CurrentWord string               `json:"currentWord"`
	History     []game.HistoryEntry  `json:"history"`
	Hands       map[string]deck.Hand `json:"hands"`
}

// NewExport bundles snap and state into an export document. Hands are
// copied verbatim, used flags included.
func NewExport(snap game.Snapshot, state *game.State, exportedAt time.Time) ExportPayload {
	s := state.Clone()
	return ExportPayload{
		Schema:      ExportSchema,
		ExportedAt:  exportedAt.UTC().Format(exportTimeFormat),
		Settings:    snap.Clone(),
		CurrentWord: s.CurrentWord,
		History:     s.History,
		Hands:       s.Hands,
	}
}

// MarshalExport renders p as two-space indented JSON.
func MarshalExport(p ExportPayload) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFileName returns the download name for an export taken at t, in
// t's location.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("pitango_game_%s.json", t.Format("20060102_150405"))
}

// DecodeExport validates data exactly as Resume does and returns the
// document with legacy fields normalised.
func DecodeExport(data []byte) (ExportPayload, error) {
	snap, state, err := Resume(data)
	if err != nil {
		return ExportPayload{}, err
	}

	// Resume has already checked the document; only exportedAt is left
	var meta struct {
		ExportedAt string `json:"exportedAt"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return ExportPayload{}, fmt.Errorf("failed to decode export: %w", err)
	}

	return ExportPayload{
		Schema:      ExportSchema,
		ExportedAt:  meta.ExportedAt,
		Settings:    snap,
		CurrentWord: state.CurrentWord,
		History:     state.History,
		Hands:       state.Hands,
	}, nil
}
