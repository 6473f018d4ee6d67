// Package codec serializes sessions for crash recovery and for portable
// export, and validates documents on the way back in.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/lox/pitango/internal/game"
)

// EncodeLive serializes the full session for the live snapshot.
func EncodeLive(state *game.State) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session state: %w", err)
	}
	return data, nil
}

// DecodeLive parses a live snapshot. The document is checked against the
// state schema and the integrity rules before anything is returned, so a
// caller never sees a partially valid state.
func DecodeLive(data []byte) (*game.State, error) {
	if err := validateAgainst(schemaState, data); err != nil {
		return nil, fmt.Errorf("invalid session state: %w", err)
	}

	var state game.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	if err := checkIntegrity(&state); err != nil {
		return nil, fmt.Errorf("invalid session state: %w", err)
	}
	return &state, nil
}

// EncodeSnapshot serializes the lobby snapshot a session was dealt from.
func EncodeSnapshot(snap game.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses and schema-checks a stored snapshot.
func DecodeSnapshot(data []byte) (game.Snapshot, error) {
	if err := validateAgainst(schemaSnapshot, data); err != nil {
		return game.Snapshot{}, fmt.Errorf("invalid snapshot: %w", err)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
