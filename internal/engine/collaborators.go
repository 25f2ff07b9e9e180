package engine

import "github.com/tatianab/event-engine/internal/models"

// Localizer resolves a text key to display text. Keys are assumed present.
type Localizer interface {
	Resolve(key string) string
}

// World moves and turns entities on the tile grid.
type World interface {
	Warp(entity string, to models.Tile, facing models.Direction)
	Turn(entity string, facing models.Direction)
	// Step begins a one-tile move. Moving reports true until it lands.
	Step(entity string, dir models.Direction)
	Moving(entity string) bool
}

// Camera receives camera commands. AtTarget reports whether the last
// MoveTo or Rotate has finished.
type Camera interface {
	Reset()
	Set(pos models.Vec3)
	MoveTo(pos models.Vec3)
	Rotate(degrees float64)
	AtTarget() bool
}

type Audio interface {
	PlayMusic(name string)
	PauseMusic()
	PlaySound(name string)
}

// Team is the player's monster party.
type Team interface {
	// AddMonster puts a new monster in the first free slot.
	AddMonster(species string, level int) (slot int, ok bool)
	// GiveExperience reports whether the monster in slot levelled up; ok is
	// false when the slot is empty.
	GiveExperience(slot, amount int) (levelUp bool, ok bool)
}

// Collaborators bundles the external systems the interpreter drives. Nil
// fields are replaced with no-op implementations.
type Collaborators struct {
	Locale Localizer
	World  World
	Camera Camera
	Audio  Audio
	Team   Team
}

func (c Collaborators) withDefaults() Collaborators {
	if c.Locale == nil {
		c.Locale = nopLocale{}
	}
	if c.World == nil {
		c.World = nopWorld{}
	}
	if c.Camera == nil {
		c.Camera = nopCamera{}
	}
	if c.Audio == nil {
		c.Audio = nopAudio{}
	}
	if c.Team == nil {
		c.Team = nopTeam{}
	}
	return c
}

type nopLocale struct{}

func (nopLocale) Resolve(key string) string { return key }

type nopWorld struct{}

func (nopWorld) Warp(string, models.Tile, models.Direction) {}
func (nopWorld) Turn(string, models.Direction)              {}
func (nopWorld) Step(string, models.Direction)              {}
func (nopWorld) Moving(string) bool                         { return false }

type nopCamera struct{}

func (nopCamera) Reset()             {}
func (nopCamera) Set(models.Vec3)    {}
func (nopCamera) MoveTo(models.Vec3) {}
func (nopCamera) Rotate(float64)     {}
func (nopCamera) AtTarget() bool     { return true }

type nopAudio struct{}

func (nopAudio) PlayMusic(string) {}
func (nopAudio) PauseMusic()      {}
func (nopAudio) PlaySound(string) {}

type nopTeam struct{}

func (nopTeam) AddMonster(string, int) (int, bool)   { return 0, false }
func (nopTeam) GiveExperience(int, int) (bool, bool) { return false, false }
