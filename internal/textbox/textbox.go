// Package textbox implements the dialogue box: character-by-character text
// reveal, choice menus and free text entry.
package textbox

import (
	"errors"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/tatianab/event-engine/internal/models"
	"github.com/tatianab/event-engine/internal/vars"
)

// DefaultRevealRate is the number of ticks between revealed characters.
const DefaultRevealRate = 5

// MaxInputLength bounds free text entry, in characters.
const MaxInputLength = 16

var ErrBusy = errors.New("textbox already active")

// State is the lifecycle of the box.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "Active"
	}
	return "Inactive"
}

// Mode says what confirming a fully revealed box does.
type Mode int

const (
	ModeText Mode = iota
	ModeChoice
	ModeInput
)

// Resolver turns a text key into display text.
type Resolver interface {
	Resolve(key string) string
}

// Outcome is the result of a confirm press.
type Outcome struct {
	// Done is set when the box finished: the player confirmed fully revealed
	// text, picked a choice, or submitted input.
	Done bool
	// Choice is the selected option index in ModeChoice, -1 otherwise.
	Choice int
}

// Box is the textbox state machine. Its zero value is not usable; see New.
type Box struct {
	resolver Resolver
	store    *vars.Store
	rate     int

	state     State
	mode      Mode
	chars     []string
	cursor    int
	timer     int
	displayed string

	choices  []models.ChoiceOption
	selected int

	variable string
	input    []string
}

// New returns an inactive box. store receives captured input; rate <= 0
// selects DefaultRevealRate.
func New(resolver Resolver, store *vars.Store, rate int) *Box {
	if rate <= 0 {
		rate = DefaultRevealRate
	}
	return &Box{resolver: resolver, store: store, rate: rate}
}

// Start opens the box on the text behind key.
func (b *Box) Start(key string) error {
	if b.state != Inactive {
		return ErrBusy
	}
	text := key
	if b.resolver != nil {
		text = b.resolver.Resolve(key)
	}

	b.chars = graphemes(text)
	b.cursor = min(1, len(b.chars))
	b.timer = 0
	b.choices = nil
	b.selected = 0
	b.variable = ""
	b.input = nil
	b.mode = ModeText
	b.state = Active
	b.refresh()
	return nil
}

// StartChoice opens the box on a prompt followed by a menu of options.
func (b *Box) StartChoice(key string, options []models.ChoiceOption) error {
	if err := b.Start(key); err != nil {
		return err
	}
	b.mode = ModeChoice
	b.choices = options
	return nil
}

// StartInput opens the box on a prompt and captures typed text into variable
// when confirmed.
func (b *Box) StartInput(key, variable string) error {
	if err := b.Start(key); err != nil {
		return err
	}
	b.mode = ModeInput
	b.variable = variable
	return nil
}

// Tick advances the reveal timer by one frame.
func (b *Box) Tick() {
	if b.state != Active {
		return
	}
	b.timer++
	if b.timer%b.rate == 0 && b.cursor < len(b.chars) {
		b.cursor++
		b.refresh()
	}
}

// Confirm handles the confirm button. While text is still revealing it
// snaps to the full text; once revealed it completes the box.
func (b *Box) Confirm() Outcome {
	if b.state != Active {
		return Outcome{Choice: -1}
	}
	if b.cursor < len(b.chars) {
		b.cursor = len(b.chars)
		b.refresh()
		return Outcome{Choice: -1}
	}

	switch b.mode {
	case ModeChoice:
		if len(b.choices) == 0 {
			return Outcome{Done: true, Choice: -1}
		}
		return Outcome{Done: true, Choice: b.selected}
	case ModeInput:
		if b.store != nil && b.variable != "" {
			b.store.Set(b.variable, vars.Text(strings.Join(b.input, "")))
		}
	}
	return Outcome{Done: true, Choice: -1}
}

// Reset closes the box and discards all of its state.
func (b *Box) Reset() {
	b.state = Inactive
	b.mode = ModeText
	b.chars = nil
	b.cursor = 0
	b.timer = 0
	b.displayed = ""
	b.choices = nil
	b.selected = 0
	b.variable = ""
	b.input = nil
}

// Select highlights option i. Out of range indexes are ignored.
func (b *Box) Select(i int) {
	if b.state == Active && b.mode == ModeChoice && i >= 0 && i < len(b.choices) {
		b.selected = i
	}
}

// MoveSelection moves the highlight by delta, wrapping around.
func (b *Box) MoveSelection(delta int) {
	if b.state != Active || b.mode != ModeChoice || len(b.choices) == 0 {
		return
	}
	n := len(b.choices)
	b.selected = ((b.selected+delta)%n + n) % n
}

// TypeRune appends r to the input buffer in ModeInput.
func (b *Box) TypeRune(r rune) {
	if b.state != Active || b.mode != ModeInput || len(b.input) >= MaxInputLength {
		return
	}
	if r < ' ' {
		return
	}
	// Combining marks join the previous character.
	joined := strings.Join(b.input, "") + string(r)
	b.input = graphemes(joined)
	if len(b.input) > MaxInputLength {
		b.input = b.input[:MaxInputLength]
	}
}

func (b *Box) Backspace() {
	if b.state == Active && b.mode == ModeInput && len(b.input) > 0 {
		b.input = b.input[:len(b.input)-1]
	}
}

func (b *Box) State() State      { return b.state }
func (b *Box) Mode() Mode        { return b.mode }
func (b *Box) Cursor() int       { return b.cursor }
func (b *Box) Len() int          { return len(b.chars) }
func (b *Box) Displayed() string { return b.displayed }
func (b *Box) Selected() int     { return b.selected }
func (b *Box) Input() string     { return strings.Join(b.input, "") }

// Revealed reports whether the whole text is shown.
func (b *Box) Revealed() bool { return b.cursor >= len(b.chars) }

// Options returns the display text of each choice.
func (b *Box) Options() []string {
	out := make([]string, len(b.choices))
	for i, c := range b.choices {
		out[i] = c.Text
		if b.resolver != nil {
			out[i] = b.resolver.Resolve(c.Text)
		}
	}
	return out
}

// Target returns the jump attached to option i.
func (b *Box) Target(i int) (models.Jump, bool) {
	if i < 0 || i >= len(b.choices) {
		return models.Jump{}, false
	}
	return b.choices[i].Target, true
}

func (b *Box) refresh() {
	b.displayed = strings.Join(b.chars[:b.cursor], "")
}

func graphemes(s string) []string {
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}
