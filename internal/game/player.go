package game

import (
	"fmt"
	"strings"
)

// Player is a seat configured in the lobby. Color is display-only.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DisplayName returns the player's name, or "Player N" (1-based) when the
// name is blank.
func (p Player) DisplayName(index int) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return p.Name
	}
	return fmt.Sprintf("Player %d", index+1)
}

// PlayerIDs returns the ids of players in configured order.
func PlayerIDs(players []Player) []string {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

// IndexOf returns the position of id in players, or -1.
func IndexOf(players []Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
