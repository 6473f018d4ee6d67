package main

import (
	"fmt"

	"github.com/lox/pitango/internal/lobby"
)

// PlayCmd deals a new game.
type PlayCmd struct {
	LobbyFlags
}

func (c *PlayCmd) Run(g *Globals) error {
	logger, closeLog, err := g.fileLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := g.openStore(logger)
	if err != nil {
		return err
	}

	l, err := c.loadLobby(st, logger)
	if err != nil {
		return err
	}

	v := l.Validate()
	snap, err := l.Snapshot(c.Force)
	if err != nil {
		fmt.Println(renderValidation(v))
		if v.Level == lobby.LevelWarn {
			fmt.Println(noteStyle.Render("Use --force to deal anyway."))
		}
		return err
	}
	if err := l.Save(st); err != nil {
		return err
	}

	mgr := g.manager(st, logger)
	if err := mgr.Start(snap); err != nil {
		return err
	}
	return runGame(g, mgr, logger)
}
