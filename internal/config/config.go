package config

import (
	"fmt"

	"chain-reaction/internal/shared"

	"github.com/caarlos0/env/v11"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	HTTPAddr        string `env:"CHAIN_REACTION_HTTP_ADDR" envDefault:":8080"`
	Store           string `env:"CHAIN_REACTION_STORE" envDefault:"memory"`
	SQLitePath      string `env:"CHAIN_REACTION_SQLITE_PATH" envDefault:"data/chain-reaction.db"`
	HistoryDepth    int    `env:"CHAIN_REACTION_HISTORY_DEPTH" envDefault:"10"`
	ConflictRetries uint   `env:"CHAIN_REACTION_CONFLICT_RETRIES" envDefault:"3"`
	PlayerHeader    string `env:"CHAIN_REACTION_PLAYER_HEADER" envDefault:"X-Player-ID"`

	// Version and Environment label exported spans.
	Version     string `env:"CHAIN_REACTION_VERSION" envDefault:"dev"`
	Environment string `env:"CHAIN_REACTION_ENV" envDefault:"development"`

	// Tracing is disabled when OTelEndpoint is empty or OTelEnabled is false.
	OTelEndpoint    string  `env:"CHAIN_REACTION_OTEL_ENDPOINT"`
	OTelEnabled     bool    `env:"CHAIN_REACTION_OTEL_ENABLED" envDefault:"true"`
	OTelSampleRatio float64 `env:"CHAIN_REACTION_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// DefaultPlayerColors is the palette handed out in join order.
var DefaultPlayerColors = []string{
	"red", "green", "blue", "yellow", "purple", "orange", "cyan", "pink",
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.HistoryDepth < 1 {
		return fmt.Errorf("history depth must be at least 1, got %d", c.HistoryDepth)
	}
	if c.PlayerHeader == "" {
		return fmt.Errorf("player header is required")
	}
	if c.OTelSampleRatio < 0 || c.OTelSampleRatio > 1 {
		return fmt.Errorf("otel sample ratio must be within [0, 1], got %g", c.OTelSampleRatio)
	}
	return nil
}

// DefaultSettings are applied to rooms created without explicit settings.
func DefaultSettings() shared.Settings {
	return shared.Settings{
		MaxPlayers:  4,
		BoardSize:   shared.BoardSize{Rows: 9, Cols: 6},
		UndoEnabled: true,
	}
}
