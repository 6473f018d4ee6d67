package lobby

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/pitango/internal/game"
)

// Config is a lobby described in an HCL file:
//
//	per_hand   = 7
//	seed       = "abc"
//	start_word = "しりとり"
//	cards      = ["赤い", "青い"]
//	cards_file = "cards.txt"
//
//	player "p1" {
//	  name  = "Alice"
//	  color = "#60a5fa"
//	}
type Config struct {
	PerHand   int            `hcl:"per_hand,optional"`
	Seed      string         `hcl:"seed,optional"`
	StartWord string         `hcl:"start_word,optional"`
	Cards     []string       `hcl:"cards,optional"`
	CardsFile string         `hcl:"cards_file,optional"`
	Players   []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig is one player block. The label is the player id.
type PlayerConfig struct {
	ID    string `hcl:"id,label"`
	Name  string `hcl:"name,optional"`
	Color string `hcl:"color,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		PerHand: DefaultPerHand,
		Cards:   append([]string(nil), DefaultCards...),
	}
}

// LoadConfig loads a lobby configuration from an HCL file. A missing file
// yields DefaultConfig. A relative cards_file is resolved against the
// config file's directory and its lines are appended to cards.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.CardsFile != "" {
		path := config.CardsFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(filename), path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read cards file: %w", err)
		}
		config.Cards = append(config.Cards, SanitizeCards(string(data))...)
	}

	// Apply defaults for missing values
	if config.PerHand == 0 {
		config.PerHand = DefaultPerHand
	}
	if len(config.Cards) == 0 {
		config.Cards = append([]string(nil), DefaultCards...)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the parts of a config that cannot be fixed up later.
// Player and card counts are left to Lobby.Validate.
func (c *Config) Validate() error {
	if c.PerHand < MinPerHand || c.PerHand > MaxPerHand {
		return fmt.Errorf("per_hand must be between %d and %d, got %d", MinPerHand, MaxPerHand, c.PerHand)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("player id cannot be empty")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate player id: %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Lobby builds a lobby from the config. Players without a colour take the
// palette colour for their position.
func (c *Config) Lobby() *Lobby {
	l := New()
	for i, p := range c.Players {
		color := p.Color
		if color == "" {
			color = Palette[i%len(Palette)]
		}
		l.state.Players = append(l.state.Players, game.Player{ID: p.ID, Name: p.Name, Color: color})
	}
	l.SetPerHand(c.PerHand)
	l.SetSeed(c.Seed)
	l.SetStartWord(c.StartWord)
	l.SetCards(strings.Join(c.Cards, "\n"))
	l.EnsurePlayable()
	return l
}
