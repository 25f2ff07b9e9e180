package models

import (
	"fmt"
	"strings"

	"github.com/tatianab/event-engine/internal/vars"
)

// Direction is a cardinal facing on the tile grid.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = map[string]Direction{
	"north": North,
	"up":    North,
	"east":  East,
	"right": East,
	"south": South,
	"down":  South,
	"west":  West,
	"left":  West,
}

// ParseDirection accepts compass names and the up/right/down/left aliases.
func ParseDirection(s string) (Direction, error) {
	d, ok := directionNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return North, fmt.Errorf("unknown direction %q", s)
	}
	return d, nil
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Delta returns the tile offset of one step in direction d. North is -Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Tile is an integer grid position.
type Tile struct {
	X, Y, Z int
}

// Vec3 is a free camera-space position.
type Vec3 struct {
	X, Y, Z float64
}

// StepKind discriminates the concrete Step variants.
type StepKind int

const (
	KindFallback StepKind = iota
	KindText
	KindChoice
	KindInput
	KindWarp
	KindTurn
	KindMove
	KindWait
	KindGiveMonster
	KindGiveExperience
	KindResetCamera
	KindSetCamera
	KindMoveCamera
	KindRotateCamera
	KindMusic
	KindPauseMusic
	KindSound
	KindSetVariable
	KindTestVariable
	KindPlayAnimation
	KindPlayEmote
	KindDebugPrintVariables
)

var kindNames = [...]string{
	KindFallback:            "fallback",
	KindText:                "text",
	KindChoice:              "choice",
	KindInput:               "input",
	KindWarp:                "warp",
	KindTurn:                "turn",
	KindMove:                "move",
	KindWait:                "wait",
	KindGiveMonster:         "give_monster",
	KindGiveExperience:      "give_experience",
	KindResetCamera:         "reset_camera",
	KindSetCamera:           "set_camera",
	KindMoveCamera:          "move_camera",
	KindRotateCamera:        "rotate_camera",
	KindMusic:               "music",
	KindPauseMusic:          "pause_music",
	KindSound:               "sound",
	KindSetVariable:         "set_variable",
	KindTestVariable:        "test_variable",
	KindPlayAnimation:       "animation",
	KindPlayEmote:           "emote",
	KindDebugPrintVariables: "DEBUG_print_variables",
}

// String returns the script tag for k.
func (k StepKind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Tags returns every script tag the parser understands, in declaration order.
func Tags() []string {
	return append([]string(nil), kindNames[KindText:]...)
}

// Step is one typed instruction in an event chain.
type Step interface {
	Kind() StepKind
}

// Jump is a branch destination: a step index inside an event.
type Jump struct {
	Event    string
	Position int
}

// ChoiceOption is one selectable entry of a Choice step.
type ChoiceOption struct {
	Text   string
	Target Jump
}

// MaxChoices bounds the number of entries a Choice step may carry.
const MaxChoices = 4

type (
	Text struct {
		Key string
	}
	Choice struct {
		Key     string
		Options []ChoiceOption
	}
	Input struct {
		Prompt   string
		Variable string
	}
	Warp struct {
		Entity string
		To     Tile
		DoMove bool
		Facing Direction
	}
	Turn struct {
		Entity string
		Facing Direction
	}
	Move struct {
		Entity string
		Facing Direction
		Count  int
	}
	Wait struct {
		Ticks int
	}
	GiveMonster struct {
		Species string
		Level   int
	}
	GiveExperience struct {
		Slot   int
		Amount int
	}
	ResetCamera struct{}
	SetCamera   struct {
		To Vec3
	}
	MoveCamera struct {
		To   Vec3
		Wait bool
	}
	RotateCamera struct {
		Degrees float64
		Wait    bool
	}
	Music struct {
		Name string
	}
	PauseMusic struct{}
	Sound      struct {
		Name string
	}
	SetVariable struct {
		Name  string
		Value vars.Condition
	}
	TestVariable struct {
		Name   string
		Value  vars.Condition
		Target Jump
	}
	PlayAnimation struct {
		Name          string
		TicksPerFrame int
		Frames        []int
		Hold          bool
	}
	PlayEmote struct {
		Name string
		Unit string
		Wait bool
	}
	DebugPrintVariables struct{}

	// Fallback stands in for a record that could not be parsed. It carries
	// the original tag and executes as a no-op.
	Fallback struct {
		Tag string
	}
)

func (Text) Kind() StepKind                { return KindText }
func (Choice) Kind() StepKind              { return KindChoice }
func (Input) Kind() StepKind               { return KindInput }
func (Warp) Kind() StepKind                { return KindWarp }
func (Turn) Kind() StepKind                { return KindTurn }
func (Move) Kind() StepKind                { return KindMove }
func (Wait) Kind() StepKind                { return KindWait }
func (GiveMonster) Kind() StepKind         { return KindGiveMonster }
func (GiveExperience) Kind() StepKind      { return KindGiveExperience }
func (ResetCamera) Kind() StepKind         { return KindResetCamera }
func (SetCamera) Kind() StepKind           { return KindSetCamera }
func (MoveCamera) Kind() StepKind          { return KindMoveCamera }
func (RotateCamera) Kind() StepKind        { return KindRotateCamera }
func (Music) Kind() StepKind               { return KindMusic }
func (PauseMusic) Kind() StepKind          { return KindPauseMusic }
func (Sound) Kind() StepKind               { return KindSound }
func (SetVariable) Kind() StepKind         { return KindSetVariable }
func (TestVariable) Kind() StepKind        { return KindTestVariable }
func (PlayAnimation) Kind() StepKind       { return KindPlayAnimation }
func (PlayEmote) Kind() StepKind           { return KindPlayEmote }
func (DebugPrintVariables) Kind() StepKind { return KindDebugPrintVariables }
func (Fallback) Kind() StepKind            { return KindFallback }

// Event is a named, ordered chain of steps. It is immutable after load.
type Event struct {
	ID    string
	Steps []Step
}

// Unit is the initial placement of an entity declared by a script file.
type Unit struct {
	Pos    [3]int `yaml:"pos"`
	Facing string `yaml:"facing"`
}
