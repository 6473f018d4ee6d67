package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/pitango/internal/deck"
	"github.com/lox/pitango/internal/game"
)

// Step identifies which resume check rejected a document.
type Step int

const (
	StepParse Step = iota + 1
	StepSchema
	StepSettings
	StepHands
	StepHistory
	StepDecode
	StepIntegrity
)

func (s Step) String() string {
	switch s {
	case StepParse:
		return "parse"
	case StepSchema:
		return "schema"
	case StepSettings:
		return "settings"
	case StepHands:
		return "hands"
	case StepHistory:
		return "history"
	case StepDecode:
		return "decode"
	case StepIntegrity:
		return "integrity"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// ValidationError reports the first check an export document failed.
type ValidationError struct {
	Step    Step
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("resume rejected at %s check: %s", e.Step, e.Message)
	}
	return fmt.Sprintf("resume rejected at %s check: %s: %s", e.Step, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// historyWire accepts the cardIdx key older exports used for cardIndex.
type historyWire struct {
	PlayerID  string `json:"playerId"`
	CardIndex *int   `json:"cardIndex"`
	CardIdx   *int   `json:"cardIdx"`
	CardText  string `json:"cardText"`
	SaidWord  string `json:"saidWord"`
	PrevWord  string `json:"prevWord"`
}

func (h historyWire) entry() game.HistoryEntry {
	idx := -1
	switch {
	case h.CardIndex != nil:
		idx = *h.CardIndex
	case h.CardIdx != nil:
		idx = *h.CardIdx
	}
	return game.HistoryEntry{
		PlayerID:  h.PlayerID,
		CardIndex: idx,
		CardText:  h.CardText,
		SaidWord:  h.SaidWord,
		PrevWord:  h.PrevWord,
	}
}

type exportWire struct {
	Settings    game.Snapshot        `json:"settings"`
	CurrentWord string               `json:"currentWord"`
	History     []historyWire        `json:"history"`
	Hands       map[string]deck.Hand `json:"hands"`
}

// Resume validates an untrusted export document and rebuilds the snapshot
// and live state it describes. Hands, history and the current word are
// taken from the document as-is; nothing is re-dealt.
//
// Checks run in a fixed order and the first failure is returned as a
// *ValidationError. Resume has no side effects.
func Resume(data []byte) (game.Snapshot, *game.State, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return reject(StepParse, "", "document is not valid JSON", err)
	}

	obj, _ := doc.(map[string]any)
	switch schema := obj["schema"].(type) {
	case string:
		if schema != ExportSchema {
			return reject(StepSchema, "schema", fmt.Sprintf("unsupported format %q, expected %q", schema, ExportSchema), nil)
		}
	case nil:
		return reject(StepSchema, "schema", fmt.Sprintf("format marker missing, expected %q", ExportSchema), nil)
	default:
		return reject(StepSchema, "schema", fmt.Sprintf("format marker is not a string, expected %q", ExportSchema), nil)
	}

	settings, _ := obj["settings"].(map[string]any)
	if _, ok := settings["players"].([]any); !ok {
		return reject(StepSettings, "settings.players", "settings are damaged: player list missing", nil)
	}
	if _, ok := settings["cards"].([]any); !ok {
		return reject(StepSettings, "settings.cards", "settings are damaged: card list missing", nil)
	}

	if _, ok := obj["hands"].(map[string]any); !ok {
		return reject(StepHands, "hands", "hand data not found", nil)
	}

	if _, ok := obj["history"].([]any); !ok {
		return reject(StepHistory, "history", "action history not found", nil)
	}

	if err := validateAgainst(schemaExport, data); err != nil {
		var se *schemaError
		if errors.As(err, &se) {
			return reject(StepDecode, se.Field, se.Message, err)
		}
		return reject(StepDecode, "", err.Error(), err)
	}

	var wire exportWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return reject(StepDecode, "", "document fields have unexpected types", err)
	}

	snap := wire.Settings
	if snap.StartWord == "" {
		snap.StartWord = game.DefaultStartWord
	}

	state := &game.State{
		Players:     append([]game.Player(nil), snap.Players...),
		Hands:       wire.Hands,
		CurrentWord: wire.CurrentWord,
		History:     make([]game.HistoryEntry, 0, len(wire.History)),
	}
	if state.CurrentWord == "" {
		state.CurrentWord = snap.StartWord
	}
	for _, h := range wire.History {
		state.History = append(state.History, h.entry())
	}

	if err := checkIntegrity(state); err != nil {
		var se *schemaError
		if errors.As(err, &se) {
			return reject(StepIntegrity, se.Field, se.Message, err)
		}
		return reject(StepIntegrity, "", err.Error(), err)
	}

	return snap, state, nil
}

func reject(step Step, field, msg string, err error) (game.Snapshot, *game.State, error) {
	return game.Snapshot{}, nil, &ValidationError{Step: step, Field: field, Message: msg, Err: err}
}
