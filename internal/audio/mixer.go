// Package audio synthesizes the music tracks and sound cues named by event
// scripts. A Mixer is a beep.Streamer; hand it to speaker.Play to hear it.
package audio

import (
	"io"
	"log"
	"sync"

	"github.com/gopxl/beep"
)

// Mixer plays at most one music track plus any number of one-shot sounds.
// Its methods are safe to call while the speaker goroutine streams from it.
type Mixer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	music  *beep.Ctrl
	track  string
	rate   beep.SampleRate
	logger *log.Logger
}

func NewMixer(rate beep.SampleRate, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if rate <= 0 {
		rate = SampleRate
	}
	return &Mixer{mixer: &beep.Mixer{}, rate: rate, logger: logger}
}

// PlayMusic switches to the named track. Playing the current track again
// resumes it if paused.
func (m *Mixer) PlayMusic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.music != nil && m.track == name {
		m.music.Paused = false
		return
	}
	t, ok := tracks[name]
	if !ok {
		m.logger.Printf("audio: unknown music %q", name)
		return
	}
	m.stopMusic()
	m.music = &beep.Ctrl{Streamer: newMelody(t.notes, t.beat, t.wave, m.rate)}
	m.track = name
	m.mixer.Add(m.music)
}

// PauseMusic pauses the current track; PlayMusic with the same name resumes.
func (m *Mixer) PauseMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.music != nil {
		m.music.Paused = true
	}
}

// PlaySound starts a one-shot cue on top of the music.
func (m *Mixer) PlaySound(name string) {
	c, ok := sounds[name]
	if !ok {
		m.logger.Printf("audio: unknown sound %q", name)
		return
	}
	s := beep.Take(m.rate.N(c.duration()), c.build(m.rate))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.mixer.Add(s)
}

// Music returns the loaded track and whether it is playing.
func (m *Mixer) Music() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.music == nil {
		return "", false
	}
	return m.track, !m.music.Paused
}

// Voices is the number of streams currently mixed, music included.
func (m *Mixer) Voices() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mixer.Len()
}

// Stream fills samples with the mix. It never ends; silence is streamed
// when nothing is playing.
func (m *Mixer) Stream(samples [][2]float64) (int, bool) {
	m.mu.Lock()
	n, _ := m.mixer.Stream(samples)
	m.mu.Unlock()
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (m *Mixer) Err() error { return nil }

// stopMusic drops the current track. A Ctrl with no streamer reports
// drained, so the mixer removes it on its next pass.
func (m *Mixer) stopMusic() {
	if m.music == nil {
		return
	}
	m.music.Streamer = nil
	m.music = nil
	m.track = ""
}
