package tui

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/event-engine/internal/engine"
	"github.com/tatianab/event-engine/internal/game"
	"github.com/tatianab/event-engine/internal/textbox"
	"github.com/tatianab/event-engine/internal/world"
)

const (
	gridWidth  = 17
	gridHeight = 9
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(0, 1)

	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C"))

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	playerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F")).Bold(true)
	unitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	emoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	floorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	selectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

var emoteGlyphs = map[string]string{
	"emote:exclaim":  "!",
	"emote:question": "?",
	"emote:heart":    "♥",
	"emote:music":    "♪",
	"emote:sweat":    "'",
	"emote:anger":    "#",
	"emote:ellipsis": "…",
	"emote:sleep":    "z",
}

var facingGlyphs = [...]string{"^", ">", "v", "<"}

// renderWorld draws the tiles around the camera. Only entities on the
// camera's layer are shown.
func renderWorld(g *game.Game) string {
	cam := g.Camera.Position()
	cx, cy, cz := int(math.Round(cam.X)), int(math.Round(cam.Y)), int(math.Round(cam.Z))
	left, top := cx-gridWidth/2, cy-gridHeight/2

	cells := make([][]string, gridHeight)
	for y := range cells {
		cells[y] = make([]string, gridWidth)
		for x := range cells[y] {
			cells[y][x] = floorStyle.Render("·")
		}
	}
	put := func(x, y int, s string) {
		x, y = x-left, y-top
		if x >= 0 && x < gridWidth && y >= 0 && y < gridHeight {
			cells[y][x] = s
		}
	}

	frame, animating := g.Handler.Animation()
	for _, e := range g.World.Entities() {
		if e.Tile.Z != cz {
			continue
		}
		if e.ID == world.PlayerID {
			put(e.Tile.X, e.Tile.Y, playerStyle.Render("@"))
		} else {
			put(e.Tile.X, e.Tile.Y, unitStyle.Render(glyph(e.ID)))
		}
		if animating && frame.Unit == e.ID {
			if s, ok := emoteGlyphs[frame.Name]; ok {
				put(e.Tile.X, e.Tile.Y-1, emoteStyle.Render(s))
			}
		}
	}

	rows := make([]string, gridHeight)
	for y, row := range cells {
		rows[y] = strings.Join(row, " ")
	}
	return gridStyle.Render(strings.Join(rows, "\n"))
}

func glyph(id string) string {
	for _, r := range id {
		return string(unicode.ToUpper(r))
	}
	return "?"
}

func renderTextbox(v engine.TextboxView, width int) string {
	if !v.Open {
		return ""
	}
	var b strings.Builder
	b.WriteString(v.Text)
	switch {
	case v.Mode == textbox.ModeChoice && v.Revealed:
		for i, opt := range v.Options {
			b.WriteString("\n")
			if i == v.Selected {
				b.WriteString(selectStyle.Render("▸ " + opt))
			} else {
				b.WriteString("  " + opt)
			}
		}
	case v.Mode == textbox.ModeInput:
		b.WriteString("\n> " + v.Input + "_")
	case v.Revealed:
		b.WriteString(" ▼")
	}
	return boxStyle.Width(max(width, 20)).Render(b.String())
}

func renderState(g *game.Game, width, height int) string {
	var b strings.Builder

	st := g.Handler.Status()
	b.WriteString(titleStyle.Render("EVENT") + "\n")
	if st.Phase == engine.Idle {
		b.WriteString("(idle)\n")
	} else {
		fmt.Fprintf(&b, "%s step %d\n%s\n", st.Event, st.Step, st.Phase)
	}
	fmt.Fprintf(&b, "tick %d\n\n", g.Ticks())

	cam := g.Camera.Position()
	b.WriteString(titleStyle.Render("CAMERA") + "\n")
	fmt.Fprintf(&b, "(%.1f, %.1f, %.1f) %.0f°\n\n", cam.X, cam.Y, cam.Z, g.Camera.Angle())

	b.WriteString(titleStyle.Render("UNITS") + "\n")
	for _, e := range g.World.Entities() {
		fmt.Fprintf(&b, "%s (%d,%d) %s\n", e.ID, e.Tile.X, e.Tile.Y, facingGlyphs[e.Facing])
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("TEAM") + "\n")
	members := g.Team.Members()
	if len(members) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, m := range members {
		fmt.Fprintf(&b, "%s lv %d\n", m.Species, m.Level)
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("VARIABLES") + "\n")
	lines := g.Handler.Variables().Dump()
	if len(lines) == 0 {
		b.WriteString("(none)\n")
	}
	for _, l := range lines {
		b.WriteString(l + "\n")
	}

	if f, ok := g.Handler.Animation(); ok {
		if _, emote := emoteGlyphs[f.Name]; !emote {
			b.WriteString("\n" + titleStyle.Render("ANIMATION") + "\n")
			fmt.Fprintf(&b, "%s frame %d\n", f.Name, f.Frame)
		}
	}

	return stateStyle.Width(width).Height(height).Render(b.String())
}

func renderMenu(events []string, cursor int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("EVENTS") + "\n\n")
	for i, id := range events {
		if i == cursor {
			b.WriteString(selectStyle.Render("▸ "+id) + "\n")
		} else {
			b.WriteString("  " + id + "\n")
		}
	}
	return b.String()
}
