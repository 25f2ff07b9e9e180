package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tatianab/event-engine/internal/engine"
)

// Config holds the application configuration.
type Config struct {
	ScriptsDir   string `env:"EVENTPLAY_SCRIPTS" envDefault:"scripts"`
	LocalesDir   string `env:"EVENTPLAY_LOCALES" envDefault:"locales"`
	Locale       string `env:"EVENTPLAY_LOCALE" envDefault:"en-US"`
	StartEvent   string `env:"EVENTPLAY_START_EVENT" envDefault:"intro"`
	RevealRate   int    `env:"EVENTPLAY_REVEAL_RATE" envDefault:"5"`
	FPS          int    `env:"EVENTPLAY_FPS" envDefault:"30"`
	PlayerName   string `env:"EVENTPLAY_PLAYER_NAME" envDefault:"Ash"`
	RivalName    string `env:"EVENTPLAY_RIVAL_NAME" envDefault:"Gary"`
	Pronouns     string `env:"EVENTPLAY_PRONOUNS" envDefault:"they"`
	Audio        bool   `env:"EVENTPLAY_AUDIO" envDefault:"true"`
	LogFile      string `env:"EVENTPLAY_LOG_FILE" envDefault:"eventplay.log"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is not set")

// LoadConfig reads an optional .env file from the working directory and then
// the environment.
func LoadConfig() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RevealRate < 1 {
		return fmt.Errorf("EVENTPLAY_REVEAL_RATE must be at least 1, got %d", c.RevealRate)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("EVENTPLAY_FPS must be between 1 and 240, got %d", c.FPS)
	}
	if _, ok := engine.PronounSet(c.Pronouns); !ok {
		return fmt.Errorf("EVENTPLAY_PRONOUNS: unknown pronoun set %q", c.Pronouns)
	}
	return nil
}

// Session builds the dialogue context for a play session.
func (c *Config) Session() engine.Session {
	p, _ := engine.PronounSet(c.Pronouns)
	return engine.Session{PlayerName: c.PlayerName, RivalName: c.RivalName, Pronouns: p}
}

// RequireAPIKey reports ErrMissingAPIKey when script generation cannot run.
func (c *Config) RequireAPIKey() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
