package models

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/tatianab/event-engine/internal/vars"
)

var (
	ErrMalformedRecord  = errors.New("record is not a tagged list")
	ErrUnknownTag       = errors.New("unknown tag")
	ErrBadArguments     = errors.New("bad arguments")
	ErrUnsupportedValue = errors.New("unsupported variable value")
)

// Diagnostic describes one record that degraded to a Fallback step.
type Diagnostic struct {
	Event string
	Index int
	Tag   string
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%d] %q: %v", d.Event, d.Index, d.Tag, d.Err)
}

// Parser turns raw script records into typed steps. It never fails: any
// record it cannot interpret becomes a Fallback carrying the record's tag.
type Parser struct {
	logger *log.Logger
}

func NewParser(logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Parser{logger: logger}
}

// Parse converts a single record.
func (p *Parser) Parse(record any) Step {
	step, tag, err := parseRecord(record)
	if err != nil {
		p.logger.Printf("script: record %q: %v; using fallback", tag, err)
		return Fallback{Tag: tag}
	}
	return step
}

// ParseChain converts every record of an event in order. The returned slice
// always has len(records) entries.
func (p *Parser) ParseChain(eventID string, records []any) ([]Step, []Diagnostic) {
	steps := make([]Step, 0, len(records))
	var diags []Diagnostic
	for i, record := range records {
		step, tag, err := parseRecord(record)
		if err != nil {
			d := Diagnostic{Event: eventID, Index: i, Tag: tag, Err: err}
			p.logger.Printf("script: %s; using fallback", d)
			diags = append(diags, d)
			step = Fallback{Tag: tag}
		}
		steps = append(steps, step)
	}
	return steps, diags
}

func parseRecord(record any) (Step, string, error) {
	list, ok := record.([]any)
	if !ok || len(list) == 0 {
		return nil, describe(record), ErrMalformedRecord
	}
	tag, ok := list[0].(string)
	if !ok {
		return nil, describe(list[0]), ErrMalformedRecord
	}
	a := args{tag: tag, vals: list[1:]}

	var (
		step Step
		err  error
	)
	switch tag {
	case "text":
		step, err = parseText(a)
	case "choice":
		step, err = parseChoice(a)
	case "input":
		step, err = parseInput(a)
	case "warp":
		step, err = parseWarp(a)
	case "turn":
		step, err = parseTurn(a)
	case "move":
		step, err = parseMove(a)
	case "wait":
		step, err = parseWait(a)
	case "give_monster":
		step, err = parseGiveMonster(a)
	case "give_experience":
		step, err = parseGiveExperience(a)
	case "reset_camera":
		step, err = ResetCamera{}, a.count(0)
	case "set_camera":
		step, err = parseSetCamera(a)
	case "move_camera":
		step, err = parseMoveCamera(a)
	case "rotate_camera":
		step, err = parseRotateCamera(a)
	case "music":
		step, err = parseMusic(a)
	case "pause_music":
		step, err = PauseMusic{}, a.count(0)
	case "sound":
		step, err = parseSound(a)
	case "set_variable":
		step, err = parseSetVariable(a)
	case "test_variable":
		step, err = parseTestVariable(a)
	case "animation":
		step, err = parseAnimation(a)
	case "emote":
		step, err = parseEmote(a)
	case "DEBUG_print_variables":
		step, err = DebugPrintVariables{}, a.count(0)
	default:
		return nil, tag, ErrUnknownTag
	}
	if err != nil {
		return nil, tag, err
	}
	return step, tag, nil
}

func parseText(a args) (Step, error) {
	if err := a.count(1); err != nil {
		return nil, err
	}
	key, err := a.str(0)
	if err != nil {
		return nil, err
	}
	return Text{Key: key}, nil
}

func parseChoice(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	key, err := a.str(0)
	if err != nil {
		return nil, err
	}
	entries, err := a.list(1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 || len(entries) > MaxChoices {
		return nil, a.errorf("choice needs 1 to %d entries, got %d", MaxChoices, len(entries))
	}
	options := make([]ChoiceOption, 0, len(entries))
	for i, entry := range entries {
		fields, ok := entry.([]any)
		if !ok || len(fields) < 2 || len(fields) > 3 {
			return nil, a.errorf("choice entry %d must be [text, event, position?]", i)
		}
		e := args{tag: a.tag, vals: fields}
		text, err := e.str(0)
		if err != nil {
			return nil, err
		}
		target, err := e.str(1)
		if err != nil {
			return nil, err
		}
		position := i
		if len(fields) == 3 {
			if position, err = e.nonNegative(2); err != nil {
				return nil, err
			}
		}
		options = append(options, ChoiceOption{Text: text, Target: Jump{Event: target, Position: position}})
	}
	return Choice{Key: key, Options: options}, nil
}

func parseInput(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	prompt, err := a.str(0)
	if err != nil {
		return nil, err
	}
	variable, err := a.str(1)
	if err != nil {
		return nil, err
	}
	return Input{Prompt: prompt, Variable: variable}, nil
}

func parseWarp(a args) (Step, error) {
	if err := a.count(4); err != nil {
		return nil, err
	}
	entity, err := a.entity(0)
	if err != nil {
		return nil, err
	}
	to, err := a.tile(1)
	if err != nil {
		return nil, err
	}
	doMove, err := a.boolean(2)
	if err != nil {
		return nil, err
	}
	facing, err := a.direction(3)
	if err != nil {
		return nil, err
	}
	return Warp{Entity: entity, To: to, DoMove: doMove, Facing: facing}, nil
}

func parseTurn(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	entity, err := a.entity(0)
	if err != nil {
		return nil, err
	}
	facing, err := a.direction(1)
	if err != nil {
		return nil, err
	}
	return Turn{Entity: entity, Facing: facing}, nil
}

func parseMove(a args) (Step, error) {
	if err := a.count(3); err != nil {
		return nil, err
	}
	entity, err := a.entity(0)
	if err != nil {
		return nil, err
	}
	facing, err := a.direction(1)
	if err != nil {
		return nil, err
	}
	count, err := a.nonNegative(2)
	if err != nil {
		return nil, err
	}
	return Move{Entity: entity, Facing: facing, Count: count}, nil
}

func parseWait(a args) (Step, error) {
	if err := a.count(1); err != nil {
		return nil, err
	}
	ticks, err := a.nonNegative(0)
	if err != nil {
		return nil, err
	}
	return Wait{Ticks: ticks}, nil
}

func parseGiveMonster(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	species, err := a.str(0)
	if err != nil {
		return nil, err
	}
	level, err := a.integer(1)
	if err != nil {
		return nil, err
	}
	if level < 1 || level > 100 {
		return nil, a.errorf("level %d out of range 1..100", level)
	}
	return GiveMonster{Species: species, Level: level}, nil
}

func parseGiveExperience(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	slot, err := a.nonNegative(0)
	if err != nil {
		return nil, err
	}
	amount, err := a.nonNegative(1)
	if err != nil {
		return nil, err
	}
	return GiveExperience{Slot: slot, Amount: amount}, nil
}

func parseSetCamera(a args) (Step, error) {
	if err := a.count(1); err != nil {
		return nil, err
	}
	to, err := a.vec3(0)
	if err != nil {
		return nil, err
	}
	return SetCamera{To: to}, nil
}

func parseMoveCamera(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	to, err := a.vec3(0)
	if err != nil {
		return nil, err
	}
	wait, err := a.boolean(1)
	if err != nil {
		return nil, err
	}
	return MoveCamera{To: to, Wait: wait}, nil
}

func parseRotateCamera(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	degrees, err := a.number(0)
	if err != nil {
		return nil, err
	}
	wait, err := a.boolean(1)
	if err != nil {
		return nil, err
	}
	return RotateCamera{Degrees: degrees, Wait: wait}, nil
}

func parseMusic(a args) (Step, error) {
	if err := a.count(1); err != nil {
		return nil, err
	}
	name, err := a.str(0)
	if err != nil {
		return nil, err
	}
	return Music{Name: name}, nil
}

func parseSound(a args) (Step, error) {
	if err := a.count(1); err != nil {
		return nil, err
	}
	name, err := a.str(0)
	if err != nil {
		return nil, err
	}
	return Sound{Name: name}, nil
}

func parseSetVariable(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	name, err := a.str(0)
	if err != nil {
		return nil, err
	}
	value, err := conditionOf(a.vals[1])
	if err != nil {
		return nil, err
	}
	return SetVariable{Name: name, Value: value}, nil
}

func parseTestVariable(a args) (Step, error) {
	if err := a.count(2); err != nil {
		return nil, err
	}
	test, err := a.list(0)
	if err != nil {
		return nil, err
	}
	jump, err := a.list(1)
	if err != nil {
		return nil, err
	}
	if len(test) != 2 || len(jump) != 2 {
		return nil, a.errorf("test_variable expects [name, value] and [event, position]")
	}
	t := args{tag: a.tag, vals: test}
	name, err := t.str(0)
	if err != nil {
		return nil, err
	}
	value, err := conditionOf(test[1])
	if err != nil {
		return nil, err
	}
	j := args{tag: a.tag, vals: jump}
	event, err := j.str(0)
	if err != nil {
		return nil, err
	}
	position, err := j.nonNegative(1)
	if err != nil {
		return nil, err
	}
	return TestVariable{Name: name, Value: value, Target: Jump{Event: event, Position: position}}, nil
}

func parseAnimation(a args) (Step, error) {
	if err := a.count(4); err != nil {
		return nil, err
	}
	name, err := a.str(0)
	if err != nil {
		return nil, err
	}
	tpf, err := a.integer(1)
	if err != nil {
		return nil, err
	}
	if tpf < 1 {
		return nil, a.errorf("ticks per frame must be positive, got %d", tpf)
	}
	raw, err := a.list(2)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, a.errorf("animation needs at least one frame")
	}
	f := args{tag: a.tag, vals: raw}
	frames := make([]int, len(raw))
	for i := range raw {
		if frames[i], err = f.nonNegative(i); err != nil {
			return nil, err
		}
	}
	hold, err := a.boolean(3)
	if err != nil {
		return nil, err
	}
	return PlayAnimation{Name: name, TicksPerFrame: tpf, Frames: frames, Hold: hold}, nil
}

func parseEmote(a args) (Step, error) {
	if err := a.count(3); err != nil {
		return nil, err
	}
	name, err := a.str(0)
	if err != nil {
		return nil, err
	}
	unit, err := a.entity(1)
	if err != nil {
		return nil, err
	}
	wait, err := a.boolean(2)
	if err != nil {
		return nil, err
	}
	return PlayEmote{Name: name, Unit: unit, Wait: wait}, nil
}

// conditionOf selects the Condition variant from the runtime shape of v.
func conditionOf(v any) (vars.Condition, error) {
	switch x := v.(type) {
	case string:
		return vars.Text(x), nil
	case bool:
		return vars.Bool(x), nil
	}
	n, err := toInt(v)
	if err != nil {
		return vars.Condition{}, fmt.Errorf("%w: %s", ErrUnsupportedValue, describe(v))
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return vars.Condition{}, fmt.Errorf("%w: %d overflows int32", ErrUnsupportedValue, n)
	}
	return vars.Int(int32(n)), nil
}

// args is the positional remainder of a record after its tag.
type args struct {
	tag  string
	vals []any
}

func (a args) errorf(format string, v ...any) error {
	return fmt.Errorf("%w: %s", ErrBadArguments, fmt.Sprintf(format, v...))
}

func (a args) count(n int) error {
	if len(a.vals) != n {
		return a.errorf("%s takes %d arguments, got %d", a.tag, n, len(a.vals))
	}
	return nil
}

func (a args) str(i int) (string, error) {
	s, ok := a.vals[i].(string)
	if !ok {
		return "", a.errorf("argument %d must be a string, got %s", i, describe(a.vals[i]))
	}
	return s, nil
}

func (a args) boolean(i int) (bool, error) {
	b, ok := a.vals[i].(bool)
	if !ok {
		return false, a.errorf("argument %d must be a boolean, got %s", i, describe(a.vals[i]))
	}
	return b, nil
}

func (a args) list(i int) ([]any, error) {
	l, ok := a.vals[i].([]any)
	if !ok {
		return nil, a.errorf("argument %d must be a list, got %s", i, describe(a.vals[i]))
	}
	return l, nil
}

func (a args) integer(i int) (int, error) {
	n, err := toInt(a.vals[i])
	if err != nil {
		return 0, a.errorf("argument %d: %v", i, err)
	}
	return n, nil
}

func (a args) nonNegative(i int) (int, error) {
	n, err := a.integer(i)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, a.errorf("argument %d must not be negative, got %d", i, n)
	}
	return n, nil
}

func (a args) number(i int) (float64, error) {
	f, err := toFloat(a.vals[i])
	if err != nil {
		return 0, a.errorf("argument %d: %v", i, err)
	}
	return f, nil
}

// entity accepts a string id or an integer id.
func (a args) entity(i int) (string, error) {
	if s, ok := a.vals[i].(string); ok && s != "" {
		return s, nil
	}
	if n, err := toInt(a.vals[i]); err == nil {
		return strconv.Itoa(n), nil
	}
	return "", a.errorf("argument %d must be an entity id, got %s", i, describe(a.vals[i]))
}

func (a args) direction(i int) (Direction, error) {
	s, err := a.str(i)
	if err != nil {
		return North, err
	}
	d, err := ParseDirection(s)
	if err != nil {
		return North, a.errorf("argument %d: %v", i, err)
	}
	return d, nil
}

func (a args) triple(i int) ([]any, error) {
	l, err := a.list(i)
	if err != nil {
		return nil, err
	}
	if len(l) != 3 {
		return nil, a.errorf("argument %d must be [x, y, z], got %d elements", i, len(l))
	}
	return l, nil
}

func (a args) tile(i int) (Tile, error) {
	l, err := a.triple(i)
	if err != nil {
		return Tile{}, err
	}
	var xyz [3]int
	for j, v := range l {
		if xyz[j], err = toInt(v); err != nil {
			return Tile{}, a.errorf("argument %d: %v", i, err)
		}
	}
	return Tile{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

func (a args) vec3(i int) (Vec3, error) {
	l, err := a.triple(i)
	if err != nil {
		return Vec3{}, err
	}
	var xyz [3]float64
	for j, v := range l {
		if xyz[j], err = toFloat(v); err != nil {
			return Vec3{}, a.errorf("argument %d: %v", i, err)
		}
	}
	return Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// toInt accepts any integer kind, and floats with an integral value, as
// produced by YAML and JSON decoders.
func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		if x < math.MinInt || x > math.MaxInt {
			return 0, fmt.Errorf("integer %d out of range", x)
		}
		return int(x), nil
	case uint:
		if uint64(x) > math.MaxInt {
			return 0, fmt.Errorf("integer %d out of range", x)
		}
		return int(x), nil
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, fmt.Errorf("integer %d out of range", x)
		}
		return int(x), nil
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	default:
		return 0, fmt.Errorf("expected an integer, got %s", describe(v))
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("expected an integer, got %v", f)
	}
	return int(f), nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, fmt.Errorf("expected a finite number, got %v", x)
		}
		return x, nil
	case float32:
		return toFloat(float64(x))
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %s", describe(v))
	}
	return float64(n), nil
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	default:
		return fmt.Sprintf("%T", v)
	}
}
