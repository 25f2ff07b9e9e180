package game

import (
	"fmt"
	"sort"

	"github.com/tatianab/event-engine/internal/anim"
	"github.com/tatianab/event-engine/internal/audio"
	"github.com/tatianab/event-engine/internal/models"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarn
)

func (s Severity) String() string {
	if s == SeverityWarn {
		return "warn"
	}
	return "error"
}

// Issue is one problem found by Check.
type Issue struct {
	Severity Severity
	Event    string
	Index    int
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s[%d]: %s", i.Event, i.Index, i.Message)
}

// MessageSet reports whether a dialogue key exists.
type MessageSet interface {
	Has(key string) bool
}

// Check looks for problems that would only show up while playing: records
// that fell back to no-ops, branches to nowhere, names no subsystem knows
// and dialogue keys missing from messages. messages may be nil.
func Check(script *models.Script, messages MessageSet) []Issue {
	var issues []Issue
	add := func(sev Severity, event string, index int, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Event: event, Index: index, Message: fmt.Sprintf(format, args...)})
	}

	for _, d := range script.Diagnostics {
		add(SeverityError, d.Event, d.Index, "%q falls back to a no-op: %v", d.Tag, d.Err)
	}

	known := map[string]bool{}
	for id := range script.Units {
		known[id] = true
	}
	for _, ev := range script.Events {
		for _, step := range ev.Steps {
			if w, ok := step.(models.Warp); ok {
				known[w.Entity] = true
			}
		}
	}

	reg := script.Registry()
	checkJump := func(event string, index int, j models.Jump) {
		target, ok := reg.Get(j.Event)
		switch {
		case !ok:
			add(SeverityError, event, index, "branch to unknown event %q", j.Event)
		case j.Position < 0 || j.Position >= len(target.Steps):
			add(SeverityError, event, index, "branch to %s[%d] is out of range (%d steps)", j.Event, j.Position, len(target.Steps))
		}
	}
	checkKey := func(event string, index int, key string) {
		if messages != nil && !messages.Has(key) {
			add(SeverityWarn, event, index, "missing message %q", key)
		}
	}
	checkEntity := func(event string, index int, id string) {
		if !known[id] {
			add(SeverityWarn, event, index, "unit %q is never placed", id)
		}
	}
	emotes := setOf(anim.EmoteNames())
	tracks := setOf(audio.Tracks())
	sounds := setOf(audio.Sounds())

	for _, id := range reg.IDs() {
		ev, _ := reg.Get(id)
		for i, step := range ev.Steps {
			switch s := step.(type) {
			case models.Text:
				checkKey(id, i, s.Key)
			case models.Choice:
				checkKey(id, i, s.Key)
				for _, opt := range s.Options {
					checkKey(id, i, opt.Text)
					checkJump(id, i, opt.Target)
				}
			case models.Input:
				checkKey(id, i, s.Prompt)
			case models.TestVariable:
				checkJump(id, i, s.Target)
			case models.Turn:
				checkEntity(id, i, s.Entity)
			case models.Move:
				checkEntity(id, i, s.Entity)
			case models.PlayEmote:
				if !emotes[s.Name] {
					add(SeverityWarn, id, i, "unknown emote %q", s.Name)
				}
				checkEntity(id, i, s.Unit)
			case models.Music:
				if !tracks[s.Name] {
					add(SeverityWarn, id, i, "unknown music %q", s.Name)
				}
			case models.Sound:
				if !sounds[s.Name] {
					add(SeverityWarn, id, i, "unknown sound %q", s.Name)
				}
			}
		}
	}

	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Severity != issues[b].Severity {
			return issues[a].Severity < issues[b].Severity
		}
		if issues[a].Event != issues[b].Event {
			return issues[a].Event < issues[b].Event
		}
		return issues[a].Index < issues[b].Index
	})
	return issues
}

func setOf(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
