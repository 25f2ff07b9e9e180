package textbox

import (
	"errors"
	"testing"

	"github.com/tatianab/event-engine/internal/models"
	"github.com/tatianab/event-engine/internal/vars"
)

type mapResolver map[string]string

func (m mapResolver) Resolve(key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return key
}

func TestRevealTiming(t *testing.T) {
	b := New(mapResolver{"k": "ABCDE"}, nil, 5)
	if err := b.Start("k"); err != nil {
		t.Fatal(err)
	}

	want := map[int]int{0: 1, 5: 2, 10: 3, 15: 4, 20: 5}
	if b.Cursor() != want[0] {
		t.Fatalf("tick 0: expected cursor 1, got %d", b.Cursor())
	}
	for tick := 1; tick <= 30; tick++ {
		b.Tick()
		if c, ok := want[tick]; ok && b.Cursor() != c {
			t.Errorf("tick %d: expected cursor %d, got %d", tick, c, b.Cursor())
		}
		if tick >= 20 && b.Displayed() != "ABCDE" {
			t.Errorf("tick %d: expected full text, got %q", tick, b.Displayed())
		}
	}
}

func TestRevealMonotonicAndBounded(t *testing.T) {
	b := New(nil, nil, 1)
	b.Start("héllo wörld 👋🏽")
	prev := b.Cursor()
	for i := 0; i < 50; i++ {
		b.Tick()
		c := b.Cursor()
		if c < prev || c < 0 || c > b.Len() {
			t.Fatalf("cursor %d out of order or bounds (prev %d, len %d)", c, prev, b.Len())
		}
		prev = c
	}
	if b.Len() != 13 {
		t.Errorf("expected 13 grapheme clusters, got %d", b.Len())
	}
}

func TestStartRequiresInactive(t *testing.T) {
	b := New(nil, nil, 0)
	if err := b.Start("a"); err != nil {
		t.Fatal(err)
	}
	if err := b.Start("b"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	b.Reset()
	if err := b.Start("b"); err != nil {
		t.Fatalf("expected start after reset to succeed, got %v", err)
	}
}

func TestConfirmSnapsThenCompletes(t *testing.T) {
	b := New(nil, nil, 5)
	b.Start("hello")

	out := b.Confirm()
	if out.Done {
		t.Fatal("first confirm should only skip the reveal")
	}
	if b.Cursor() != 5 || b.Displayed() != "hello" {
		t.Fatalf("expected full reveal, got cursor %d text %q", b.Cursor(), b.Displayed())
	}

	out = b.Confirm()
	if !out.Done || out.Choice != -1 {
		t.Fatalf("expected done without choice, got %+v", out)
	}
}

func TestEmptyTextCompletesOnFirstConfirm(t *testing.T) {
	b := New(nil, nil, 5)
	b.Start("")
	if b.Cursor() != 0 {
		t.Fatalf("expected cursor 0 for empty text, got %d", b.Cursor())
	}
	if out := b.Confirm(); !out.Done {
		t.Fatal("expected empty text to complete immediately")
	}
}

func TestChoiceSelection(t *testing.T) {
	options := []models.ChoiceOption{
		{Text: "opt.yes", Target: models.Jump{Event: "yes", Position: 0}},
		{Text: "opt.no", Target: models.Jump{Event: "no", Position: 2}},
	}
	b := New(mapResolver{"opt.yes": "Yes", "opt.no": "No"}, nil, 1)
	if err := b.StartChoice("q", options); err != nil {
		t.Fatal(err)
	}
	b.Confirm() // reveal

	b.MoveSelection(-1)
	if b.Selected() != 1 {
		t.Fatalf("expected selection to wrap to 1, got %d", b.Selected())
	}
	b.Select(7)
	if b.Selected() != 1 {
		t.Fatalf("out of range select should be ignored, got %d", b.Selected())
	}

	out := b.Confirm()
	if !out.Done || out.Choice != 1 {
		t.Fatalf("expected choice 1, got %+v", out)
	}
	target, ok := b.Target(out.Choice)
	if !ok || target != (models.Jump{Event: "no", Position: 2}) {
		t.Errorf("unexpected target %+v", target)
	}
	if got := b.Options(); got[0] != "Yes" || got[1] != "No" {
		t.Errorf("unexpected option text %v", got)
	}
}

func TestInputCapture(t *testing.T) {
	store := vars.NewStore()
	b := New(nil, store, 1)
	if err := b.StartInput("name?", "player_name"); err != nil {
		t.Fatal(err)
	}
	for _, r := range "Rexx" {
		b.TypeRune(r)
	}
	b.Backspace()
	b.TypeRune('\n')

	if b.Input() != "Rex" {
		t.Fatalf("expected buffer Rex, got %q", b.Input())
	}

	b.Confirm() // reveal prompt
	if _, ok := store.Get("player_name"); ok {
		t.Fatal("variable should not be written before completion")
	}
	if out := b.Confirm(); !out.Done {
		t.Fatal("expected input to complete")
	}
	got, ok := store.Get("player_name")
	if !ok || got != vars.Text("Rex") {
		t.Errorf("expected Text(\"Rex\"), got %v (present=%v)", got, ok)
	}
}

func TestInputLengthLimit(t *testing.T) {
	b := New(nil, vars.NewStore(), 1)
	b.StartInput("p", "v")
	for i := 0; i < MaxInputLength+5; i++ {
		b.TypeRune('a')
	}
	if n := len([]rune(b.Input())); n != MaxInputLength {
		t.Errorf("expected %d characters, got %d", MaxInputLength, n)
	}
}

func TestInactiveIgnoresInput(t *testing.T) {
	b := New(nil, nil, 1)
	b.Tick()
	if out := b.Confirm(); out.Done {
		t.Error("inactive box must not complete")
	}
	if b.State() != Inactive {
		t.Errorf("expected Inactive, got %v", b.State())
	}
}
