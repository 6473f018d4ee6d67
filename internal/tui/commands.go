package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// CommandKind identifies a parsed input line.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdUse
	CmdUndo
	CmdSave
	CmdHelp
	CmdQuit
)

// Command is one line typed at the game prompt. Player and Card are
// zero-based; the prompt itself is one-based.
type Command struct {
	Kind   CommandKind
	Player int
	Card   int
	Word   string
	Path   string
}

// HelpText lists the commands accepted at the prompt.
const HelpText = `Commands:
  use <player#> <card#> [word]   play a card (prompts for the word if omitted)
  undo                           take back the last card
  save [path]                    export the game to a JSON file
  help                           show this help
  quit                           leave the game (progress is kept)`

// ParseCommand parses a prompt line. Everything after the card number is
// the declared word, spaces included.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Command{Kind: CmdNone}, nil
	}

	switch strings.ToLower(fields[0]) {
	case "use", "u":
		if len(fields) < 3 {
			return Command{}, fmt.Errorf("usage: use <player#> <card#> [word]")
		}
		player, err := parsePosition("player", fields[1])
		if err != nil {
			return Command{}, err
		}
		card, err := parsePosition("card", fields[2])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdUse, Player: player, Card: card, Word: wordAfter(input, 3)}, nil
	case "undo", "z":
		return Command{Kind: CmdUndo}, nil
	case "save", "s", "export":
		return Command{Kind: CmdSave, Path: wordAfter(input, 1)}, nil
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	default:
		return Command{}, fmt.Errorf("unknown command %q (try 'help')", fields[0])
	}
}

func parsePosition(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a number from 1, got %q", what, s)
	}
	return n - 1, nil
}

// wordAfter returns the input with its first n fields removed, trimmed.
func wordAfter(input string, n int) string {
	rest := strings.TrimSpace(input)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(rest, unicode.IsSpace)
		if idx < 0 {
			return ""
		}
		rest = strings.TrimSpace(rest[idx:])
	}
	return rest
}
