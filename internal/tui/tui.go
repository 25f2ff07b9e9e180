package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/event-engine/internal/engine"
	"github.com/tatianab/event-engine/internal/game"
	"github.com/tatianab/event-engine/internal/models"
	"github.com/tatianab/event-engine/internal/textbox"
)

const traceHeight = 6

type sessionState int

const (
	stateMenu sessionState = iota
	statePlaying
	stateError
)

// TraceLog collects one line per dispatched step for the trace panel.
type TraceLog struct {
	lines []string
}

// Record has the engine.TraceFunc signature.
func (t *TraceLog) Record(event string, index int, step models.Step) {
	t.lines = append(t.lines, fmt.Sprintf("%s[%d] %s %+v", event, index, step.Kind(), step))
}

func (t *TraceLog) note(s string) { t.lines = append(t.lines, s) }

func (t *TraceLog) String() string { return strings.Join(t.lines, "\n") }

type Options struct {
	// Start is started immediately when set; otherwise the event menu opens.
	Start string
	FPS   int
}

type tickMsg time.Time

type model struct {
	state    sessionState
	game     *game.Game
	trace    *TraceLog
	keys     keyMap
	frame    time.Duration
	events   []string
	cursor   int
	viewport viewport.Model
	err      error
	width    int
	height   int
}

func NewModel(g *game.Game, trace *TraceLog, opts Options) model {
	if trace == nil {
		trace = &TraceLog{}
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	m := model{
		state:    stateMenu,
		game:     g,
		trace:    trace,
		keys:     defaultKeys(),
		frame:    time.Second / time.Duration(fps),
		events:   g.Events(),
		viewport: viewport.New(80, traceHeight),
	}
	if opts.Start != "" {
		m.start(opts.Start)
	}
	return m
}

func (m model) Init() tea.Cmd {
	return m.tick()
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *model) start(id string) {
	if err := m.game.Handler.Start(id); err != nil {
		m.err = err
		m.state = stateError
		return
	}
	m.trace.note("── " + id + " ──")
	m.state = statePlaying
	m.refreshTrace()
}

func (m *model) refreshTrace() {
	m.viewport.SetContent(m.trace.String())
	m.viewport.GotoBottom()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.state == statePlaying {
			if m.game.Tick() == engine.Complete {
				m.trace.note("── done ──")
				m.state = stateMenu
			}
			m.refreshTrace()
		} else {
			m.game.World.Update()
			m.game.Camera.Update()
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = traceHeight
		m.refreshTrace()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case statePlaying:
			return m.updatePlaying(msg), nil
		case stateError:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Cancel):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.events)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		if len(m.events) > 0 {
			m.start(m.events[m.cursor])
		}
	}
	return m, nil
}

func (m model) updatePlaying(msg tea.KeyMsg) model {
	h := m.game.Handler
	if key.Matches(msg, m.keys.Cancel) {
		h.Cancel()
		m.trace.note("── cancelled ──")
		m.state = stateMenu
		m.refreshTrace()
		return m
	}

	if v := h.Textbox(); v.Open && v.Mode == textbox.ModeInput {
		switch msg.Type {
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				h.TypeRune(r)
			}
		case tea.KeySpace:
			h.TypeRune(' ')
		case tea.KeyBackspace:
			h.Backspace()
		case tea.KeyEnter:
			h.Confirm()
		}
		return m
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		h.Confirm()
	case key.Matches(msg, m.keys.Up):
		h.MoveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		h.MoveSelection(1)
	}
	return m
}

func (m model) View() string {
	var s string
	width := max(m.width, 60)

	switch m.state {
	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress any key to quit.", m.err)
		return "\n" + s + "\n"

	case stateMenu:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			renderWorld(m.game),
			"  "+renderMenu(m.events, m.cursor),
		)
		s = lipgloss.JoinVertical(lipgloss.Left, mainView, "\n"+m.viewport.View())

	case statePlaying:
		grid := renderWorld(m.game)
		stateWidth := max(width-lipgloss.Width(grid)-4, 24)
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			grid,
			renderState(m.game, stateWidth, lipgloss.Height(grid)),
		)
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			renderTextbox(m.game.Handler.Textbox(), width-4),
			m.viewport.View(),
		)
	}

	help := helpStyle.Render(m.keys.help())
	return "\n" + s + "\n" + help + "\n"
}

// Run plays g in the terminal until the user quits.
func Run(g *game.Game, trace *TraceLog, opts Options) error {
	p := tea.NewProgram(NewModel(g, trace, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
