// Package engine interprets event chains one frame at a time.
//
// A Handler owns the program counter of the running event. The game loop
// calls Tick once per frame; every piece of state needed to resume a step on
// the next frame lives in the Handler, so there is no hidden suspension.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/tatianab/event-engine/internal/anim"
	"github.com/tatianab/event-engine/internal/models"
	"github.com/tatianab/event-engine/internal/textbox"
	"github.com/tatianab/event-engine/internal/vars"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrAlreadyRunning = errors.New("event already running")
)

// Phase is the coarse interpreter state.
type Phase int

const (
	Idle Phase = iota
	Running
	AwaitingSubsystem
	// Complete is returned by the Tick that finishes a chain. The handler
	// is Idle afterwards.
	Complete
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case AwaitingSubsystem:
		return "AwaitingSubsystem"
	case Complete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Status is a snapshot of where the interpreter is.
type Status struct {
	Phase Phase
	Event string
	Step  int
}

// TraceFunc is called once when a step is first dispatched.
type TraceFunc func(event string, index int, step models.Step)

type Options struct {
	Session Session
	// RevealRate is ticks per revealed character; 0 uses the textbox default.
	RevealRate int
	Logger     *log.Logger
	Trace      TraceFunc
}

// Handler is the event interpreter.
type Handler struct {
	registry *models.Registry
	c        Collaborators
	store    *vars.Store
	box      *textbox.Box
	player   anim.Player
	logger   *log.Logger
	trace    TraceFunc

	event   *models.Event
	index   int
	counter int
	pending *models.Jump
	confirm bool
	// carry keeps a confirm pressed before a textbox opened for the tick
	// after it opens.
	carry bool

	// background is a non-waiting emote that keeps playing while the chain
	// moves on.
	background *anim.Clip
}

func NewHandler(registry *models.Registry, c Collaborators, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if registry == nil {
		registry = models.NewRegistry(nil)
	}
	c = c.withDefaults()
	store := vars.NewStore()
	resolver := sessionResolver{locale: c.Locale, session: opts.Session}
	return &Handler{
		registry: registry,
		c:        c,
		store:    store,
		box:      textbox.New(resolver, store, opts.RevealRate),
		logger:   logger,
		trace:    opts.Trace,
	}
}

// Start begins interpreting event id at its first step.
func (h *Handler) Start(id string) error {
	if h.event != nil {
		return fmt.Errorf("start %q: %w (running %q)", id, ErrAlreadyRunning, h.event.ID)
	}
	ev, ok := h.registry.Get(id)
	if !ok {
		return fmt.Errorf("start %q: %w", id, ErrEventNotFound)
	}

	h.box.Reset()
	h.player.Clear()
	h.background = nil
	h.event = &ev
	h.index = 0
	h.counter = 0
	h.pending = nil
	h.confirm = false
	return nil
}

// Cancel abandons the running event and drops any multi-tick state.
func (h *Handler) Cancel() {
	if h.event != nil {
		h.logger.Printf("engine: cancel %s at step %d", h.event.ID, h.index)
	}
	h.box.Reset()
	h.player.Clear()
	h.background = nil
	h.event = nil
	h.index = 0
	h.counter = 0
	h.pending = nil
	h.confirm = false
}

// SetRegistry swaps in a freshly loaded registry. It is rejected while an
// event is running.
func (h *Handler) SetRegistry(registry *models.Registry) error {
	if h.event != nil {
		return fmt.Errorf("reload: %w", ErrAlreadyRunning)
	}
	h.registry = registry
	return nil
}

// Tick runs one frame of the current event.
func (h *Handler) Tick() Phase {
	defer func() { h.confirm, h.carry = h.carry, false }()

	if h.event == nil {
		return Idle
	}
	if h.pending != nil {
		j := *h.pending
		h.pending = nil
		return h.jump(j)
	}
	if h.index >= len(h.event.Steps) {
		return h.finish()
	}

	step := h.event.Steps[h.index]
	if h.background != nil && !isAnimation(step) {
		if h.player.Run(*h.background) {
			h.background = nil
		}
	}
	if h.counter == 0 && h.trace != nil {
		h.trace(h.event.ID, h.index, step)
	}

	done := h.dispatch(step)
	if h.pending != nil {
		return Running
	}
	if !done {
		return AwaitingSubsystem
	}
	return h.advance()
}

// Status reports the current position.
func (h *Handler) Status() Status {
	if h.event == nil {
		return Status{Phase: Idle}
	}
	phase := Running
	if h.counter > 0 && h.pending == nil {
		phase = AwaitingSubsystem
	}
	return Status{Phase: phase, Event: h.event.ID, Step: h.index}
}

// Confirm registers a confirm press, consumed by the next Tick. A press that
// lands on the tick a textbox opens is applied on the tick after.
func (h *Handler) Confirm() { h.confirm = true }

func (h *Handler) Select(i int)           { h.box.Select(i) }
func (h *Handler) MoveSelection(d int)    { h.box.MoveSelection(d) }
func (h *Handler) TypeRune(r rune)        { h.box.TypeRune(r) }
func (h *Handler) Backspace()             { h.box.Backspace() }
func (h *Handler) Variables() *vars.Store { return h.store }

// TextboxView is what a renderer needs to draw the dialogue box.
type TextboxView struct {
	Open     bool
	Mode     textbox.Mode
	Text     string
	Revealed bool
	Options  []string
	Selected int
	Input    string
}

func (h *Handler) Textbox() TextboxView {
	if h.box.State() != textbox.Active {
		return TextboxView{}
	}
	v := TextboxView{
		Open:     true,
		Mode:     h.box.Mode(),
		Text:     h.box.Displayed(),
		Revealed: h.box.Revealed(),
		Selected: h.box.Selected(),
		Input:    h.box.Input(),
	}
	if v.Mode == textbox.ModeChoice {
		v.Options = h.box.Options()
	}
	return v
}

// Animation returns the frame currently shown, if any.
func (h *Handler) Animation() (anim.Frame, bool) { return h.player.Current() }

func (h *Handler) advance() Phase {
	h.index++
	h.counter = 0
	if h.index >= len(h.event.Steps) {
		return h.finish()
	}
	return Running
}

func (h *Handler) finish() Phase {
	h.box.Reset()
	if h.background != nil {
		h.player.Clear()
		h.background = nil
	}
	h.event = nil
	h.index = 0
	h.counter = 0
	h.pending = nil
	return Complete
}

func (h *Handler) jump(j models.Jump) Phase {
	ev, ok := h.registry.Get(j.Event)
	if !ok || j.Position < 0 || j.Position >= len(ev.Steps) {
		h.logger.Printf("engine: branch to %s[%d] from %s: no such step; ending event", j.Event, j.Position, h.event.ID)
		return h.finish()
	}
	h.event = &ev
	h.index = j.Position
	h.counter = 0
	return Running
}

// next returns the step that will run after the current one completes.
func (h *Handler) next(j *models.Jump) models.Step {
	if j != nil {
		ev, ok := h.registry.Get(j.Event)
		if ok && j.Position >= 0 && j.Position < len(ev.Steps) {
			return ev.Steps[j.Position]
		}
		return nil
	}
	if h.index+1 < len(h.event.Steps) {
		return h.event.Steps[h.index+1]
	}
	return nil
}

func isAnimation(s models.Step) bool {
	k := s.Kind()
	return k == models.KindPlayAnimation || k == models.KindPlayEmote
}

// dispatch executes one tick of step and reports whether it completed.
func (h *Handler) dispatch(step models.Step) bool {
	switch s := step.(type) {
	case models.Text:
		return h.runBox(func() error { return h.box.Start(s.Key) })
	case models.Choice:
		return h.runBox(func() error { return h.box.StartChoice(s.Key, s.Options) })
	case models.Input:
		return h.runBox(func() error { return h.box.StartInput(s.Prompt, s.Variable) })

	case models.Warp:
		if h.counter == 0 {
			h.c.World.Warp(s.Entity, s.To, s.Facing)
			if !s.DoMove {
				return true
			}
			h.c.World.Step(s.Entity, s.Facing)
			h.counter = 1
			return false
		}
		return !h.c.World.Moving(s.Entity)
	case models.Turn:
		h.c.World.Turn(s.Entity, s.Facing)
		return true
	case models.Move:
		if h.counter > 0 && h.c.World.Moving(s.Entity) {
			return false
		}
		if h.counter >= s.Count {
			return true
		}
		h.c.World.Step(s.Entity, s.Facing)
		h.counter++
		return false
	case models.Wait:
		h.counter++
		return h.counter >= s.Ticks

	case models.GiveMonster:
		slot, ok := h.c.Team.AddMonster(s.Species, s.Level)
		if !ok {
			h.logger.Printf("engine: give_monster %s: team is full", s.Species)
		} else {
			h.logger.Printf("engine: %s joined the team in slot %d", s.Species, slot)
		}
		return true
	case models.GiveExperience:
		levelUp, ok := h.c.Team.GiveExperience(s.Slot, s.Amount)
		switch {
		case !ok:
			h.logger.Printf("engine: give_experience: slot %d is empty", s.Slot)
		case levelUp:
			h.logger.Printf("engine: slot %d levelled up", s.Slot)
		}
		return true

	case models.ResetCamera:
		h.c.Camera.Reset()
		return true
	case models.SetCamera:
		h.c.Camera.Set(s.To)
		return true
	case models.MoveCamera:
		return h.runCamera(s.Wait, func() { h.c.Camera.MoveTo(s.To) })
	case models.RotateCamera:
		return h.runCamera(s.Wait, func() { h.c.Camera.Rotate(s.Degrees) })

	case models.Music:
		h.c.Audio.PlayMusic(s.Name)
		return true
	case models.PauseMusic:
		h.c.Audio.PauseMusic()
		return true
	case models.Sound:
		h.c.Audio.PlaySound(s.Name)
		return true

	case models.SetVariable:
		h.store.Set(s.Name, s.Value)
		return true
	case models.TestVariable:
		if got, ok := h.store.Get(s.Name); ok && got == s.Value {
			target := s.Target
			h.pending = &target
		}
		return true

	case models.PlayAnimation:
		h.background = nil
		if h.counter == 0 {
			h.player.Clear()
		}
		h.counter++
		return h.player.Run(anim.Clip{
			Name:          s.Name,
			Frames:        s.Frames,
			TicksPerFrame: s.TicksPerFrame,
			Hold:          s.Hold,
		})
	case models.PlayEmote:
		clip, ok := anim.Emote(s.Name, s.Unit)
		if !ok {
			h.logger.Printf("engine: unknown emote %q", s.Name)
			return true
		}
		if !s.Wait {
			h.background = &clip
			if h.player.Run(clip) {
				h.background = nil
			}
			return true
		}
		h.background = nil
		if h.counter == 0 {
			h.player.Clear()
		}
		h.counter++
		return h.player.Run(clip)

	case models.DebugPrintVariables:
		h.logger.Printf("engine: %d variables", h.store.Len())
		for _, line := range h.store.Dump() {
			h.logger.Printf("engine:   %s", line)
		}
		return true

	case models.Fallback:
		return true
	default:
		h.logger.Printf("engine: unhandled step %T", step)
		return true
	}
}

// runBox drives the textbox for Text, Choice and Input steps. The first tick
// opens the box; later ticks reveal text or handle a confirm press.
func (h *Handler) runBox(open func() error) bool {
	if h.counter == 0 {
		if h.box.State() == textbox.Active {
			h.box.Reset()
		}
		if err := open(); err != nil {
			h.logger.Printf("engine: open textbox: %v", err)
			return true
		}
		h.carry = h.confirm
		h.counter = 1
		return false
	}

	if !h.confirm {
		h.box.Tick()
		return false
	}
	out := h.box.Confirm()
	if !out.Done {
		return false
	}

	var branch *models.Jump
	if out.Choice >= 0 {
		if target, ok := h.box.Target(out.Choice); ok {
			branch = &target
		}
	}
	if _, keepOpen := h.next(branch).(models.Text); !keepOpen {
		h.box.Reset()
	}
	h.pending = branch
	return true
}

func (h *Handler) runCamera(wait bool, issue func()) bool {
	if h.counter == 0 {
		issue()
		if !wait {
			return true
		}
		h.counter = 1
		return false
	}
	return h.c.Camera.AtTarget()
}
