package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/pitango/internal/codec"
	"github.com/lox/pitango/internal/session"
)

// ContinueCmd reopens the game saved in the data directory.
type ContinueCmd struct{}

func (c *ContinueCmd) Run(g *Globals) error {
	logger, closeLog, err := g.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := g.openStore(logger)
	if err != nil {
		return err
	}

	mgr := g.manager(st, logger)
	if err := mgr.Recover(); err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("%w; deal a new one with 'pitango play' (%v)", session.ErrNoSession, err)
		}
		return err
	}
	return runGame(g, mgr, logger)
}

// ResumeCmd loads an exported game and plays on from it.
type ResumeCmd struct {
	File string `arg:"" name:"file" help:"Exported game (pitango_game_*.json)" type:"existingfile"`
}

func (c *ResumeCmd) Run(g *Globals) error {
	logger, closeLog, err := g.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}

	st, err := g.openStore(logger)
	if err != nil {
		return err
	}

	mgr := g.manager(st, logger)
	if err := mgr.Resume(data); err != nil {
		var ve *codec.ValidationError
		if errors.As(err, &ve) {
			logger.Warn("Rejected export", "file", c.File, "step", ve.Step.String(), "field", ve.Field)
			fmt.Println(badStyle.Render(fmt.Sprintf("%s: %s", c.File, ve.Message)))
		}
		return err
	}
	return runGame(g, mgr, logger)
}
