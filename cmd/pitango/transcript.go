package main

import (
	"fmt"
	"os"

	"github.com/lox/pitango/internal/codec"
	"github.com/lox/pitango/internal/transcript"
)

// TranscriptCmd renders an exported game as a play-by-play.
type TranscriptCmd struct {
	File   string `arg:"" name:"file" help:"Exported game" type:"existingfile"`
	Format string `help:"Output format" enum:"text,toml" default:"text" short:"f"`
	Output string `short:"o" help:"Write to this file instead of stdout" type:"path"`
}

func (c *TranscriptCmd) Run(g *Globals) error {
	logger := g.batchLogger()

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	payload, err := codec.DecodeExport(data)
	if err != nil {
		return err
	}
	t := transcript.FromExport(payload)

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch c.Format {
	case "toml":
		err = transcript.Encode(out, t)
	default:
		err = transcript.Text(out, t)
	}
	if err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	logger.Debug("Wrote transcript", "file", c.File, "format", c.Format, "turns", len(t.Turns))
	return nil
}
