package lobby

import "fmt"

// Player count limits.
const (
	MinPlayers = 1
	MaxPlayers = 10
)

// Cards-per-hand range accepted by SetPerHand.
const (
	MinPerHand     = 1
	MaxPerHand     = 20
	DefaultPerHand = 7
)

// Level grades a validation result for display.
type Level string

const (
	LevelOK   Level = "ok"
	LevelWarn Level = "warn"
	LevelBad  Level = "bad"
)

// Validation is the advisory verdict on whether a lobby can start.
type Validation struct {
	OK      bool
	Level   Level
	Message string
}

// Counts summarises what a deal would need.
type Counts struct {
	Players   int
	PerHand   int
	Needed    int
	Available int
}

// Validate checks the lobby in a fixed order and reports the first
// problem. Card problems are graded as warnings since a short deck still
// deals, with later players receiving fewer cards.
func (l *Lobby) Validate() Validation {
	c := l.Counts()
	switch {
	case c.Players < MinPlayers:
		return Validation{Level: LevelBad, Message: fmt.Sprintf("Not enough players (minimum %d)", MinPlayers)}
	case c.Players > MaxPlayers:
		return Validation{Level: LevelBad, Message: fmt.Sprintf("Too many players (maximum %d)", MaxPlayers)}
	case c.PerHand < MinPerHand:
		return Validation{Level: LevelBad, Message: fmt.Sprintf("Cards per hand must be at least %d", MinPerHand)}
	case c.Available == 0:
		return Validation{Level: LevelWarn, Message: "No cards configured"}
	case c.Available < c.Needed:
		return Validation{Level: LevelWarn, Message: fmt.Sprintf("Not enough cards (need %d / have %d)", c.Needed, c.Available)}
	}
	return Validation{OK: true, Level: LevelOK, Message: "Ready to start"}
}
