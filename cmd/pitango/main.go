package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Play       PlayCmd          `cmd:"" default:"withargs" help:"Deal a new game from the lobby and play it"`
	Continue   ContinueCmd      `cmd:"" help:"Continue the game saved by the last run"`
	Resume     ResumeCmd        `cmd:"" help:"Resume a game from an exported JSON file"`
	Deal       DealCmd          `cmd:"" help:"Print the hands a lobby would deal without starting a game"`
	Inspect    InspectCmd       `cmd:"" help:"Validate exported games and summarise them"`
	Transcript TranscriptCmd    `cmd:"" help:"Print the play-by-play of an exported game"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pitango"),
		kong.Description("Word-chain card game for one shared screen"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":  version,
			"data_dir": defaultDataDir(),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "pitango")
	}
	return ".pitango"
}
