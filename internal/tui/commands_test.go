package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"", Command{Kind: CmdNone}},
		{"   ", Command{Kind: CmdNone}},
		{"use 1 2", Command{Kind: CmdUse, Player: 0, Card: 1}},
		{"use 2 3 りんご", Command{Kind: CmdUse, Player: 1, Card: 2, Word: "りんご"}},
		{"USE 1 1  two  words ", Command{Kind: CmdUse, Word: "two  words"}},
		{"u 1 1 x", Command{Kind: CmdUse, Word: "x"}},
		{"use\t1\t1\tタブ", Command{Kind: CmdUse, Word: "タブ"}},
		{"use 1 1　全角", Command{Kind: CmdUse, Word: "全角"}},
		{"undo", Command{Kind: CmdUndo}},
		{"z", Command{Kind: CmdUndo}},
		{"save", Command{Kind: CmdSave}},
		{"save  my game.json", Command{Kind: CmdSave, Path: "my game.json"}},
		{"help", Command{Kind: CmdHelp}},
		{"?", Command{Kind: CmdHelp}},
		{"quit", Command{Kind: CmdQuit}},
		{"exit", Command{Kind: CmdQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, input := range []string{"use", "use 1", "use a 1", "use 1 b", "use 0 1", "use 1 -2", "jump"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCommand(input)
			assert.Error(t, err)
		})
	}
}
