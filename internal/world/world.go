// Package world holds the tile map state that event scripts drive: entity
// placement, one-tile steps and the camera.
package world

import (
	"io"
	"log"
	"sort"

	"github.com/tatianab/event-engine/internal/models"
)

// StepTicks is how many ticks a one-tile step takes.
const StepTicks = 8

// PlayerID is the entity the camera follows after a reset.
const PlayerID = "player"

// Entity is a unit on the grid.
type Entity struct {
	ID     string
	Tile   models.Tile
	Facing models.Direction

	from     models.Tile
	progress int // ticks left in the current step
}

// Moving reports whether e is between tiles.
func (e Entity) Moving() bool { return e.progress > 0 }

type World struct {
	entities map[string]*Entity
	logger   *log.Logger
}

func New(logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &World{entities: map[string]*Entity{}, logger: logger}
}

// FromUnits builds a world with the unit placements declared by scripts.
func FromUnits(units map[string]models.Unit, logger *log.Logger) *World {
	w := New(logger)
	for id, u := range units {
		facing := models.South
		if u.Facing != "" {
			if d, err := models.ParseDirection(u.Facing); err == nil {
				facing = d
			}
		}
		w.Warp(id, models.Tile{X: u.Pos[0], Y: u.Pos[1], Z: u.Pos[2]}, facing)
	}
	return w
}

// Warp places entity on tile to, creating it if needed. Any step in
// progress is dropped.
func (w *World) Warp(entity string, to models.Tile, facing models.Direction) {
	e, ok := w.entities[entity]
	if !ok {
		e = &Entity{ID: entity}
		w.entities[entity] = e
	}
	e.Tile = to
	e.from = to
	e.Facing = facing
	e.progress = 0
}

func (w *World) Turn(entity string, facing models.Direction) {
	e, ok := w.entities[entity]
	if !ok {
		w.logger.Printf("world: turn %s: no such entity", entity)
		return
	}
	e.Facing = facing
}

// Step starts moving entity one tile in dir. A step already in progress is
// finished first.
func (w *World) Step(entity string, dir models.Direction) {
	e, ok := w.entities[entity]
	if !ok {
		w.logger.Printf("world: step %s: no such entity", entity)
		return
	}
	dx, dy := dir.Delta()
	e.Facing = dir
	e.from = e.Tile
	e.Tile.X += dx
	e.Tile.Y += dy
	e.progress = StepTicks
}

func (w *World) Moving(entity string) bool {
	e, ok := w.entities[entity]
	return ok && e.Moving()
}

// Update advances every step in progress by one tick.
func (w *World) Update() {
	for _, e := range w.entities {
		if e.progress > 0 {
			e.progress--
			if e.progress == 0 {
				e.from = e.Tile
			}
		}
	}
}

// Entity returns a copy of the entity with id.
func (w *World) Entity(id string) (Entity, bool) {
	e, ok := w.entities[id]
	if !ok {
		return Entity{}, false
	}
	return *e, true
}

// Entities returns every entity sorted by id.
func (w *World) Entities() []Entity {
	out := make([]Entity, 0, len(w.entities))
	for _, e := range w.entities {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Position is the interpolated location of entity, in tiles.
func (w *World) Position(entity string) (models.Vec3, bool) {
	e, ok := w.entities[entity]
	if !ok {
		return models.Vec3{}, false
	}
	t := 1 - float64(e.progress)/StepTicks
	lerp := func(a, b int) float64 { return float64(a) + (float64(b)-float64(a))*t }
	return models.Vec3{
		X: lerp(e.from.X, e.Tile.X),
		Y: lerp(e.from.Y, e.Tile.Y),
		Z: lerp(e.from.Z, e.Tile.Z),
	}, true
}
