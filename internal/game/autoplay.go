package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/tatianab/event-engine/internal/engine"
	"github.com/tatianab/event-engine/internal/textbox"
)

var ErrTimeout = errors.New("event did not finish")

// AutoPlayer answers the textbox without a human: it skips the reveal,
// picks a random option at each choice and types Name at each prompt.
type AutoPlayer struct {
	Name string
	// Picks records the option chosen at each choice, in order.
	Picks []int

	rng *rand.Rand
}

func NewAutoPlayer(seed uint64, name string) *AutoPlayer {
	return &AutoPlayer{Name: name, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Act queues the input for the next tick.
func (a *AutoPlayer) Act(h *engine.Handler) {
	v := h.Textbox()
	if !v.Open {
		return
	}
	if !v.Revealed {
		h.Confirm()
		return
	}
	switch v.Mode {
	case textbox.ModeChoice:
		if len(v.Options) > 0 {
			i := a.rng.IntN(len(v.Options))
			h.Select(i)
			a.Picks = append(a.Picks, i)
		}
	case textbox.ModeInput:
		if v.Input == "" {
			for _, r := range a.Name {
				h.TypeRune(r)
			}
		}
	}
	h.Confirm()
}

// Play starts event and ticks until it completes. A nil player never
// presses anything, so events with a textbox will time out.
func (g *Game) Play(ctx context.Context, event string, p *AutoPlayer, maxTicks int) error {
	if err := g.Handler.Start(event); err != nil {
		return err
	}
	for i := 0; i < maxTicks; i++ {
		if err := ctx.Err(); err != nil {
			g.Handler.Cancel()
			return err
		}
		if p != nil {
			p.Act(g.Handler)
		}
		if g.Tick() == engine.Complete {
			return nil
		}
	}
	g.Handler.Cancel()
	return fmt.Errorf("event %q: %w after %d ticks", event, ErrTimeout, maxTicks)
}
