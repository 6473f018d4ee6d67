package codec

import (
	"fmt"

	"github.com/lox/pitango/internal/game"
)

// checkIntegrity verifies the cross-field rules a schema cannot express:
// every player holds a hand, no hand belongs to a stranger, each history
// entry points at a distinct used card with matching text, and the history
// length equals the number of used cards.
func checkIntegrity(state *game.State) error {
	known := make(map[string]bool, len(state.Players))
	for i, p := range state.Players {
		if known[p.ID] {
			return &schemaError{Field: fmt.Sprintf("players[%d].id", i), Message: fmt.Sprintf("duplicate player id %q", p.ID)}
		}
		known[p.ID] = true
		if _, ok := state.Hands[p.ID]; !ok {
			return &schemaError{Field: "hands", Message: fmt.Sprintf("no hand for player %q", p.ID)}
		}
	}
	for id := range state.Hands {
		if !known[id] {
			return &schemaError{Field: "hands", Message: fmt.Sprintf("hand for unknown player %q", id)}
		}
	}

	type cardRef struct {
		player string
		index  int
	}
	seen := make(map[cardRef]bool, len(state.History))
	for i, h := range state.History {
		field := fmt.Sprintf("history[%d]", i)
		hand, ok := state.Hands[h.PlayerID]
		if !ok {
			return &schemaError{Field: field + ".playerId", Message: fmt.Sprintf("unknown player %q", h.PlayerID)}
		}
		if h.CardIndex < 0 || h.CardIndex >= len(hand) {
			return &schemaError{Field: field + ".cardIndex", Message: fmt.Sprintf("index %d outside hand of %d", h.CardIndex, len(hand))}
		}
		card := hand[h.CardIndex]
		if !card.Used {
			return &schemaError{Field: field, Message: fmt.Sprintf("card %q is not marked used", card.Text)}
		}
		if card.Text != h.CardText {
			return &schemaError{Field: field + ".cardText", Message: fmt.Sprintf("got %q, hand holds %q", h.CardText, card.Text)}
		}
		ref := cardRef{h.PlayerID, h.CardIndex}
		if seen[ref] {
			return &schemaError{Field: field, Message: "card already used earlier in history"}
		}
		seen[ref] = true
	}

	if used := state.UsedCount(); used != len(state.History) {
		return &schemaError{Field: "history", Message: fmt.Sprintf("%d entries but %d used cards", len(state.History), used)}
	}
	return nil
}
