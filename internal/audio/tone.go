package audio

import (
	"math"
	"sort"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is used for every generated stream.
const SampleRate = beep.SampleRate(44100)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// noteFreq returns the equal-tempered frequency of a MIDI note.
func noteFreq(midi int) float64 {
	return 440 * math.Pow(2, float64(midi-69)/12)
}

func sample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 4*math.Abs(phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone is a fixed-frequency oscillator with a linear fade-out.
type tone struct {
	freq     float64
	wave     WaveType
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
}

func newTone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) *tone {
	return &tone{freq: freq, wave: wave, length: rate.N(d), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		fade := 1 - float64(t.position)/float64(t.length)
		v := sample(t.wave, t.phase) * fade
		samples[i][0], samples[i][1] = v, v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// melody loops a note sequence forever. A zero note is a rest.
type melody struct {
	notes []int
	beat  int
	wave  WaveType
	pos   int
	phase float64
	rate  beep.SampleRate
}

func newMelody(notes []int, beat time.Duration, wave WaveType, rate beep.SampleRate) *melody {
	return &melody{notes: notes, beat: max(rate.N(beat), 1), wave: wave, rate: rate}
}

func (m *melody) Stream(samples [][2]float64) (int, bool) {
	total := m.beat * len(m.notes)
	for i := range samples {
		at := m.pos % total
		note := m.notes[at/m.beat]
		var v float64
		if note > 0 {
			// Short decay per note so repeated notes stay distinct.
			env := 1 - float64(at%m.beat)/float64(m.beat)
			v = 0.3 * env * sample(m.wave, m.phase)
			m.phase += noteFreq(note) / float64(m.rate)
			m.phase -= math.Floor(m.phase)
		}
		samples[i][0], samples[i][1] = v, v
		m.pos++
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

type track struct {
	notes []int
	beat  time.Duration
	wave  WaveType
}

var tracks = map[string]track{
	"town":   {notes: []int{72, 76, 79, 76, 74, 77, 81, 0}, beat: 250 * time.Millisecond, wave: WaveTriangle},
	"route":  {notes: []int{67, 69, 71, 74, 71, 69, 67, 0}, beat: 200 * time.Millisecond, wave: WaveSquare},
	"rival":  {notes: []int{64, 64, 67, 64, 70, 69, 67, 0}, beat: 150 * time.Millisecond, wave: WaveSquare},
	"lab":    {notes: []int{60, 0, 64, 0, 67, 0, 64, 0}, beat: 300 * time.Millisecond, wave: WaveSine},
	"battle": {notes: []int{57, 57, 60, 57, 62, 60, 64, 62}, beat: 120 * time.Millisecond, wave: WaveSquare},
}

type chirp struct {
	notes []int
	step  time.Duration
	wave  WaveType
	vol   float64 // log2 gain
}

var sounds = map[string]chirp{
	"door":    {notes: []int{55, 50}, step: 80 * time.Millisecond, wave: WaveSquare, vol: -2},
	"bump":    {notes: []int{40}, step: 90 * time.Millisecond, wave: WaveSquare, vol: -1},
	"confirm": {notes: []int{84}, step: 50 * time.Millisecond, wave: WaveSine, vol: -1},
	"select":  {notes: []int{79}, step: 40 * time.Millisecond, wave: WaveSine, vol: -2},
	"heal":    {notes: []int{72, 76, 79, 84}, step: 120 * time.Millisecond, wave: WaveTriangle, vol: -1},
	"levelup": {notes: []int{67, 72, 76, 79}, step: 90 * time.Millisecond, wave: WaveSquare, vol: -2},
	"caught":  {notes: []int{60, 64, 67, 72, 67, 72}, step: 100 * time.Millisecond, wave: WaveTriangle, vol: -1},
}

// build renders c as a finite stream.
func (c chirp) build(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(c.notes))
	for _, n := range c.notes {
		parts = append(parts, newTone(noteFreq(n), c.step, c.wave, rate))
	}
	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: c.vol}
}

// duration is how long c plays.
func (c chirp) duration() time.Duration {
	return c.step * time.Duration(len(c.notes))
}

// Tracks lists the music names PlayMusic accepts.
func Tracks() []string { return keys(tracks) }

// Sounds lists the cue names PlaySound accepts.
func Sounds() []string { return keys(sounds) }

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
