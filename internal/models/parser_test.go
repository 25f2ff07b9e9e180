package models

import (
	"bytes"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/tatianab/event-engine/internal/vars"
)

func rec(v ...any) []any { return v }

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		record any
		want   Step
	}{
		{"text", rec("text", "intro.hello"), Text{Key: "intro.hello"}},
		{"input", rec("input", "ask.name", "player_name"), Input{Prompt: "ask.name", Variable: "player_name"}},
		{
			"warp",
			rec("warp", "player", rec(1, 2, 0), true, "west"),
			Warp{Entity: "player", To: Tile{1, 2, 0}, DoMove: true, Facing: West},
		},
		{"turn numeric entity", rec("turn", 7, "up"), Turn{Entity: "7", Facing: North}},
		{"move", rec("move", "rival", "down", 4), Move{Entity: "rival", Facing: South, Count: 4}},
		{"wait float integral", rec("wait", 12.0), Wait{Ticks: 12}},
		{"give_monster", rec("give_monster", "sparkit", 5), GiveMonster{Species: "sparkit", Level: 5}},
		{"give_experience", rec("give_experience", 0, 120), GiveExperience{Slot: 0, Amount: 120}},
		{"reset_camera", rec("reset_camera"), ResetCamera{}},
		{"set_camera", rec("set_camera", rec(1, 2.5, 3)), SetCamera{To: Vec3{1, 2.5, 3}}},
		{"move_camera", rec("move_camera", rec(0, 0, 10), true), MoveCamera{To: Vec3{0, 0, 10}, Wait: true}},
		{"rotate_camera", rec("rotate_camera", -90, false), RotateCamera{Degrees: -90}},
		{"music", rec("music", "route1"), Music{Name: "route1"}},
		{"pause_music", rec("pause_music"), PauseMusic{}},
		{"sound", rec("sound", "door"), Sound{Name: "door"}},
		{"set text", rec("set_variable", "rival", "Gary"), SetVariable{Name: "rival", Value: vars.Text("Gary")}},
		{"set int", rec("set_variable", "badges", 3), SetVariable{Name: "badges", Value: vars.Int(3)}},
		{
			"test_variable",
			rec("test_variable", rec("met", true), rec("after", 2)),
			TestVariable{Name: "met", Value: vars.Bool(true), Target: Jump{Event: "after", Position: 2}},
		},
		{
			"animation",
			rec("animation", "door_open", 2, rec(0, 1, 2), true),
			PlayAnimation{Name: "door_open", TicksPerFrame: 2, Frames: []int{0, 1, 2}, Hold: true},
		},
		{"emote", rec("emote", "exclaim", "rival", false), PlayEmote{Name: "exclaim", Unit: "rival"}},
		{"debug", rec("DEBUG_print_variables"), DebugPrintVariables{}},
		{
			"choice",
			rec("choice", "ask", rec(rec("a", "ev_a"), rec("b", "ev_b", 4))),
			Choice{Key: "ask", Options: []ChoiceOption{
				{Text: "a", Target: Jump{Event: "ev_a", Position: 0}},
				{Text: "b", Target: Jump{Event: "ev_b", Position: 4}},
			}},
		},
	}

	p := NewParser(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.record)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%v) = %#v, want %#v", tt.record, got, tt.want)
			}
		})
	}
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		name    string
		record  any
		wantTag string
		wantErr error
	}{
		{"unknown tag", rec("teleport", "x"), "teleport", ErrUnknownTag},
		{"not a list", map[string]any{"text": "x"}, "map[string]interface {}", ErrMalformedRecord},
		{"empty list", rec(), "[]interface {}", ErrMalformedRecord},
		{"nil", nil, "null", ErrMalformedRecord},
		{"tag not string", rec(5, "x"), "int", ErrMalformedRecord},
		{"missing argument", rec("text"), "text", ErrBadArguments},
		{"extra argument", rec("wait", 1, 2), "wait", ErrBadArguments},
		{"wrong type", rec("wait", "soon"), "wait", ErrBadArguments},
		{"negative count", rec("move", "p", "north", -1), "move", ErrBadArguments},
		{"bad direction", rec("turn", "p", "sideways"), "turn", ErrBadArguments},
		{"fractional ticks", rec("wait", 1.5), "wait", ErrBadArguments},
		{"too many choices", rec("choice", "k", rec(
			rec("a", "e"), rec("b", "e"), rec("c", "e"), rec("d", "e"), rec("e", "e"))), "choice", ErrBadArguments},
		{"no choices", rec("choice", "k", rec()), "choice", ErrBadArguments},
		{"set list value", rec("set_variable", "x", rec(1)), "set_variable", ErrUnsupportedValue},
		{"set float value", rec("set_variable", "x", 1.25), "set_variable", ErrUnsupportedValue},
		{"set nil value", rec("set_variable", "x", nil), "set_variable", ErrUnsupportedValue},
		{"set overflow", rec("set_variable", "x", int64(1)<<40), "set_variable", ErrUnsupportedValue},
		{"test map value", rec("test_variable", rec("x", map[string]any{}), rec("e", 0)), "test_variable", ErrUnsupportedValue},
		{"empty frames", rec("animation", "a", 1, rec(), false), "animation", ErrBadArguments},
		{"zero ticks per frame", rec("animation", "a", 0, rec(0), false), "animation", ErrBadArguments},
		{"short vector", rec("set_camera", rec(1, 2)), "set_camera", ErrBadArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := NewParser(log.New(&buf, "", 0))

			got := p.Parse(tt.record)
			fb, ok := got.(Fallback)
			if !ok {
				t.Fatalf("Expected Fallback, got %#v", got)
			}
			if fb.Tag != tt.wantTag {
				t.Errorf("Expected tag %q, got %q", tt.wantTag, fb.Tag)
			}
			if !strings.Contains(buf.String(), "using fallback") {
				t.Errorf("Expected a logged diagnostic, got %q", buf.String())
			}

			_, _, err := parseRecord(tt.record)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseChainPreservesOrder(t *testing.T) {
	records := []any{
		rec("sound", "a"),
		rec("bogus"),
		rec("sound", "a"),
		rec("wait"),
		rec("sound", "b"),
	}
	steps, diags := NewParser(nil).ParseChain("ev", records)
	want := []Step{Sound{Name: "a"}, Fallback{Tag: "bogus"}, Sound{Name: "a"}, Fallback{Tag: "wait"}, Sound{Name: "b"}}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("ParseChain = %#v, want %#v", steps, want)
	}
	if len(diags) != 2 || diags[0].Index != 1 || diags[1].Index != 3 || diags[0].Event != "ev" {
		t.Errorf("Unexpected diagnostics: %v", diags)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"North": North, " left ": West, "down": South, "east": East} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDirection("nowhere"); err == nil {
		t.Error("Expected error for unknown direction")
	}
}
