package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/pitango/internal/session"
	"github.com/lox/pitango/internal/store"
	"github.com/muesli/termenv"
)

// Globals are flags shared by every command.
type Globals struct {
	DataDir  string `help:"Directory holding the saved lobby and game" default:"${data_dir}" env:"PITANGO_DATA_DIR" type:"path"`
	LogLevel string `help:"Log level" enum:"debug,info,warn,error" default:"info" env:"PITANGO_LOG_LEVEL"`
	LogFile  string `help:"Log file used while the game screen is open" default:"pitango.log" env:"PITANGO_LOG_FILE" type:"path"`
	NoColor  bool   `help:"Disable colour output" env:"PITANGO_NO_COLOR"`
}

// batchLogger logs to stderr for commands that print and exit.
func (g *Globals) batchLogger() *log.Logger {
	g.applyColor()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: g.level(),
	})
	if g.NoColor {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// fileLogger logs to LogFile, since the game screen owns the terminal.
// The returned function closes the file.
func (g *Globals) fileLogger() (*log.Logger, func(), error) {
	g.applyColor()
	f, err := os.OpenFile(g.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           g.level(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetColorProfile(termenv.Ascii)
	return logger, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}, nil
}

func (g *Globals) level() log.Level {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func (g *Globals) applyColor() {
	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func (g *Globals) openStore(logger *log.Logger) (*store.FileStore, error) {
	return store.NewFileStore(g.DataDir, logger)
}

func (g *Globals) manager(st store.Store, logger *log.Logger) *session.Manager {
	return session.NewManager(st, quartz.NewReal(), logger)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
