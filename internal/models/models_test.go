package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tatianab/event-engine/internal/vars"
)

const demoScript = `
units:
  player:
    pos: [2, 3, 0]
    facing: south
events:
  intro:
    - [text, intro.hello]
    - [choice, intro.ask, [[intro.yes, yes_path, 1], [intro.no, no_path]]]
    - [set_variable, met_professor, true]
    - [teleport, somewhere]
    - [move, player, north, 3]
  yes_path:
    - [text, yes.one]
    - [text, yes.two]
`

func TestLoadBytes(t *testing.T) {
	s, err := LoadBytes([]byte(demoScript), NewParser(nil))
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	intro, ok := s.Registry().Get("intro")
	if !ok {
		t.Fatal("Expected intro event to be registered")
	}
	if len(intro.Steps) != 5 {
		t.Fatalf("Expected 5 steps, got %d", len(intro.Steps))
	}

	wantKinds := []StepKind{KindText, KindChoice, KindSetVariable, KindFallback, KindMove}
	for i, want := range wantKinds {
		if got := intro.Steps[i].Kind(); got != want {
			t.Errorf("Step %d: expected %s, got %s", i, want, got)
		}
	}

	choice := intro.Steps[1].(Choice)
	if choice.Options[0].Target != (Jump{Event: "yes_path", Position: 1}) {
		t.Errorf("Unexpected first option target: %+v", choice.Options[0].Target)
	}
	if choice.Options[1].Target != (Jump{Event: "no_path", Position: 1}) {
		t.Errorf("Expected missing position to default to the entry index, got %+v", choice.Options[1].Target)
	}

	set := intro.Steps[2].(SetVariable)
	if set.Value != vars.Bool(true) {
		t.Errorf("Expected Boolean(true), got %v", set.Value)
	}

	if fb := intro.Steps[3].(Fallback); fb.Tag != "teleport" {
		t.Errorf("Expected fallback to keep tag teleport, got %q", fb.Tag)
	}

	if len(s.Diagnostics) != 1 || s.Diagnostics[0].Index != 3 {
		t.Errorf("Expected one diagnostic at index 3, got %v", s.Diagnostics)
	}

	unit, ok := s.Units["player"]
	if !ok || unit.Pos != [3]int{2, 3, 0} || unit.Facing != "south" {
		t.Errorf("Unexpected player unit: %+v", unit)
	}
}

func TestLoadBytesJSON(t *testing.T) {
	doc := `{"events": {"e": [["wait", 3], ["sound", "door"]]}}`
	s, err := LoadBytes([]byte(doc), nil)
	if err != nil {
		t.Fatalf("Failed to load JSON script: %v", err)
	}
	ev, _ := s.Registry().Get("e")
	if w, ok := ev.Steps[0].(Wait); !ok || w.Ticks != 3 {
		t.Errorf("Expected Wait{3}, got %#v", ev.Steps[0])
	}
}

func TestLoadBytesInvalidYAML(t *testing.T) {
	if _, err := LoadBytes([]byte("events: [unclosed"), nil); err == nil {
		t.Fatal("Expected a decode error")
	}
}

func TestLoadDirRejectsDuplicateEvents(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.yaml", "events:\n  shared:\n    - [wait, 1]\n")
	write("b.yml", "events:\n  shared:\n    - [wait, 2]\n")
	write("notes.txt", "ignored")

	if _, err := LoadDir(dir, nil); err == nil {
		t.Fatal("Expected duplicate event error")
	}

	files, err := ListScripts(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 script files, got %v", files)
	}
}

func TestLoadDirMergesFiles(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("events:\n  one:\n    - [wait, 1]\n"), 0644)
	os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("events:\n  two:\n    - [pause_music]\n"), 0644)

	s, err := LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("Failed to load dir: %v", err)
	}
	ids := s.Registry().IDs()
	if len(ids) != 2 || ids[0] != "one" || ids[1] != "two" {
		t.Errorf("Unexpected ids: %v", ids)
	}
}
