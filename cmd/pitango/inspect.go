package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/pitango/internal/codec"
	"golang.org/x/sync/errgroup"
)

// InspectCmd runs every resume check over exported games.
type InspectCmd struct {
	Files []string `arg:"" name:"file" help:"Exported games to check" type:"existingfile"`
}

type inspection struct {
	file    string
	payload codec.ExportPayload
	err     error
}

func (c *InspectCmd) Run(g *Globals) error {
	logger := g.batchLogger()

	results, err := inspectFiles(context.Background(), c.Files, logger)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		fmt.Println(renderInspection(r))
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d exports rejected", failed, len(results))
	}
	return nil
}

// inspectFiles checks files concurrently. Results keep the order of files;
// a rejected export is recorded in its result rather than returned.
func inspectFiles(ctx context.Context, files []string, logger *log.Logger) ([]inspection, error) {
	results := make([]inspection, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			payload, err := codec.DecodeExport(data)
			if err != nil {
				logger.Debug("Export rejected", "file", file, "error", err)
			}
			results[i] = inspection{file: file, payload: payload, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderInspection(r inspection) string {
	if r.err != nil {
		msg := r.err.Error()
		var ve *codec.ValidationError
		if errors.As(r.err, &ve) {
			msg = fmt.Sprintf("%s check: %s", ve.Step, ve.Message)
			if ve.Field != "" {
				msg += fmt.Sprintf(" (%s)", ve.Field)
			}
		}
		return fmt.Sprintf("%s %s\n  %s", badStyle.Render("✗"), r.file, msg)
	}

	p := r.payload
	used := 0
	dealt := 0
	for _, h := range p.Hands {
		dealt += len(h)
		used += len(h) - h.Remaining()
	}

	var names []string
	for i, pl := range p.Settings.Players {
		names = append(names, pl.DisplayName(i))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", okStyle.Render("✓"), r.file)
	fmt.Fprintf(&b, "  exported %s\n", p.ExportedAt)
	fmt.Fprintf(&b, "  players: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "  cards used: %d / %d, %d actions\n", used, dealt, len(p.History))
	fmt.Fprintf(&b, "  current word: 「%s」", p.CurrentWord)
	return b.String()
}
