// Package game wires the event interpreter to the world, camera, team and
// audio so front ends only have to feed input and draw.
package game

import (
	"io"
	"log"

	"github.com/tatianab/event-engine/internal/engine"
	"github.com/tatianab/event-engine/internal/models"
	"github.com/tatianab/event-engine/internal/team"
	"github.com/tatianab/event-engine/internal/world"
)

type Options struct {
	Session    engine.Session
	RevealRate int
	Locale     engine.Localizer
	// Audio may be nil for silent play.
	Audio  engine.Audio
	Logger *log.Logger
	Trace  engine.TraceFunc
}

// Game aggregates everything a play session mutates.
type Game struct {
	Script  *models.Script
	Handler *engine.Handler
	World   *world.World
	Camera  *world.Camera
	Team    *team.Team

	ticks int
}

func New(script *models.Script, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	w := world.FromUnits(script.Units, logger)
	cam := world.NewCamera(w)
	tm := team.New(logger)

	c := engine.Collaborators{
		Locale: opts.Locale,
		World:  w,
		Camera: cam,
		Audio:  opts.Audio,
		Team:   tm,
	}

	h := engine.NewHandler(script.Registry(), c, engine.Options{
		Session:    opts.Session,
		RevealRate: opts.RevealRate,
		Logger:     logger,
		Trace:      opts.Trace,
	})
	return &Game{Script: script, Handler: h, World: w, Camera: cam, Team: tm}
}

// Tick advances the interpreter and then the world by one frame.
func (g *Game) Tick() engine.Phase {
	p := g.Handler.Tick()
	g.World.Update()
	g.Camera.Update()
	g.ticks++
	return p
}

// Ticks is the number of frames run so far.
func (g *Game) Ticks() int { return g.ticks }

// Events lists the ids that can be started.
func (g *Game) Events() []string { return g.Script.Registry().IDs() }
