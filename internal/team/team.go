// Package team tracks the player's monster party.
package team

import (
	"fmt"
	"io"
	"log"

	"gopkg.in/yaml.v3"
)

const (
	Size     = 6
	MaxLevel = 100
)

// Monster is one party member.
type Monster struct {
	Species    string `yaml:"species"`
	Level      int    `yaml:"level"`
	Experience int    `yaml:"experience"`
}

// ExperienceFor is the total experience needed to reach level.
func ExperienceFor(level int) int { return level * level * level }

type Team struct {
	slots  [Size]*Monster
	logger *log.Logger
}

func New(logger *log.Logger) *Team {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Team{logger: logger}
}

// AddMonster puts a new monster in the first free slot. The level is
// clamped to [1, MaxLevel].
func (t *Team) AddMonster(species string, level int) (int, bool) {
	level = max(1, min(level, MaxLevel))
	for i, m := range t.slots {
		if m != nil {
			continue
		}
		t.slots[i] = &Monster{Species: species, Level: level, Experience: ExperienceFor(level)}
		t.logger.Printf("team: %s (lv %d) added to slot %d", species, level, i)
		return i, true
	}
	return 0, false
}

// GiveExperience adds amount to the monster in slot and reports whether it
// gained at least one level.
func (t *Team) GiveExperience(slot, amount int) (bool, bool) {
	if slot < 0 || slot >= Size || t.slots[slot] == nil {
		return false, false
	}
	m := t.slots[slot]
	if amount <= 0 || m.Level >= MaxLevel {
		return false, true
	}

	m.Experience = min(m.Experience+amount, ExperienceFor(MaxLevel))
	start := m.Level
	for m.Level < MaxLevel && m.Experience >= ExperienceFor(m.Level+1) {
		m.Level++
	}
	if m.Level > start {
		t.logger.Printf("team: %s grew to lv %d", m.Species, m.Level)
		return true, true
	}
	return false, true
}

// Slot returns a copy of the monster in slot i.
func (t *Team) Slot(i int) (Monster, bool) {
	if i < 0 || i >= Size || t.slots[i] == nil {
		return Monster{}, false
	}
	return *t.slots[i], true
}

// Members returns the occupied slots in order.
func (t *Team) Members() []Monster {
	var out []Monster
	for _, m := range t.slots {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// YAML renders the party as a YAML list of members. An empty party is "[]".
func (t *Team) YAML() ([]byte, error) {
	members := t.Members()
	if members == nil {
		members = []Monster{}
	}
	out, err := yaml.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("marshal team: %w", err)
	}
	return out, nil
}
