package config

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.ScriptsDir != "scripts" || cfg.StartEvent != "intro" || cfg.RevealRate != 5 || cfg.FPS != 30 || !cfg.Audio {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.RequireAPIKey(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("EVENTPLAY_START_EVENT", "lab")
	t.Setenv("EVENTPLAY_AUDIO", "false")
	t.Setenv("EVENTPLAY_PRONOUNS", "she")
	t.Setenv("EVENTPLAY_PLAYER_NAME", "Leaf")
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.StartEvent != "lab" || cfg.Audio {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	s := cfg.Session()
	if s.PlayerName != "Leaf" || s.Pronouns.Object != "her" {
		t.Errorf("unexpected session %+v", s)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"EVENTPLAY_FPS", "fast", "parse env:"},
		{"EVENTPLAY_FPS", "0", "EVENTPLAY_FPS"},
		{"EVENTPLAY_REVEAL_RATE", "0", "EVENTPLAY_REVEAL_RATE"},
		{"EVENTPLAY_PRONOUNS", "xe", "unknown pronoun set"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
