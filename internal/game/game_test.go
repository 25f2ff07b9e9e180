package game

import (
	"context"
	"errors"
	"testing"

	"github.com/tatianab/event-engine/internal/engine"
	"github.com/tatianab/event-engine/internal/models"
	"github.com/tatianab/event-engine/internal/vars"
)

const script = `
events:
  intro:
    - [warp, player, [2, 2, 0], false, south]
    - [text, intro.hello]
    - [input, intro.name, player_name]
    - [choice, intro.pick, [[intro.left, left, 0], [intro.right, right, 0]]]
  left:
    - [set_variable, side, left]
    - [move, player, west, 2]
    - [give_monster, sparkit, 5]
  right:
    - [set_variable, side, right]
    - [move, player, east, 2]
    - [give_monster, bubbun, 5]
    - [move_camera, [9, 9, 0], true]
units:
  player: {pos: [0, 0, 0], facing: south}
  rival: {pos: [3, 2, 0], facing: west}
`

func load(t *testing.T) *models.Script {
	t.Helper()
	s, err := models.LoadBytes([]byte(script), nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", s.Diagnostics)
	}
	return s
}

func TestPlayRunsToCompletion(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		g := New(load(t), Options{})
		p := NewAutoPlayer(seed, "Red")
		if err := g.Play(context.Background(), "intro", p, 2000); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(p.Picks) != 1 {
			t.Fatalf("seed %d: expected one choice, got %v", seed, p.Picks)
		}

		vs := g.Handler.Variables()
		if name, _ := vs.Get("player_name"); name != vars.Text("Red") {
			t.Errorf("seed %d: player_name = %v", seed, name)
		}
		side, _ := vs.Get("side")
		player, _ := g.World.Entity("player")
		members := g.Team.Members()
		if len(members) != 1 {
			t.Fatalf("seed %d: expected one team member, got %v", seed, members)
		}
		switch p.Picks[0] {
		case 0:
			if side != vars.Text("left") || player.Tile.X != 0 || members[0].Species != "sparkit" {
				t.Errorf("seed %d: left branch state wrong: %v %+v %+v", seed, side, player, members)
			}
		case 1:
			if side != vars.Text("right") || player.Tile.X != 4 || members[0].Species != "bubbun" {
				t.Errorf("seed %d: right branch state wrong: %v %+v %+v", seed, side, player, members)
			}
			if g.Camera.Position() != (models.Vec3{X: 9, Y: 9}) {
				t.Errorf("seed %d: camera should have reached its target, at %+v", seed, g.Camera.Position())
			}
		}
		if s := g.Handler.Status(); s.Phase != engine.Idle {
			t.Errorf("seed %d: expected Idle, got %+v", seed, s)
		}
	}
}

func TestPlaySameSeedSamePath(t *testing.T) {
	var picks [][]int
	for i := 0; i < 2; i++ {
		g := New(load(t), Options{})
		p := NewAutoPlayer(42, "Red")
		if err := g.Play(context.Background(), "intro", p, 2000); err != nil {
			t.Fatal(err)
		}
		picks = append(picks, p.Picks)
	}
	if picks[0][0] != picks[1][0] {
		t.Errorf("same seed chose differently: %v", picks)
	}
}

func TestPlayTimesOutWithoutInput(t *testing.T) {
	g := New(load(t), Options{})
	err := g.Play(context.Background(), "intro", nil, 50)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if s := g.Handler.Status(); s.Phase != engine.Idle {
		t.Errorf("timed out event should be cancelled, got %+v", s)
	}
}

func TestPlayUnknownEvent(t *testing.T) {
	g := New(load(t), Options{})
	if err := g.Play(context.Background(), "nope", nil, 10); !errors.Is(err, engine.ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestPlayHonoursContext(t *testing.T) {
	g := New(load(t), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Play(ctx, "intro", NewAutoPlayer(1, "Red"), 100); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEventsAndTicks(t *testing.T) {
	g := New(load(t), Options{})
	if got := g.Events(); len(got) != 3 || got[0] != "intro" {
		t.Errorf("unexpected events %v", got)
	}
	g.Tick()
	g.Tick()
	if g.Ticks() != 2 {
		t.Errorf("expected 2 ticks, got %d", g.Ticks())
	}
}
