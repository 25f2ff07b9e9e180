package anim

// Clip describes a frame sequence to play.
type Clip struct {
	Name          string
	Unit          string
	Frames        []int
	TicksPerFrame int
	Hold          bool
}

// Frame is a snapshot of the playing clip for renderers.
type Frame struct {
	Name  string
	Unit  string
	Index int // position in the frame sequence
	Frame int // frame number at that position
}

type instance struct {
	clip    Clip
	index   int
	tick    int
	settled bool
}

// Player runs at most one clip at a time, one Run call per tick.
type Player struct {
	active *instance
}

// Run advances the clip by one tick and reports whether it finished on this
// call. A clip whose frames differ from the playing one replaces it.
//
// A held clip reports true once when it reaches its last frame and then
// stays on that frame, returning false until it is replaced or cleared.
func (p *Player) Run(c Clip) bool {
	if len(c.Frames) == 0 {
		p.active = nil
		return true
	}
	if p.active == nil || !sameFrames(p.active.clip.Frames, c.Frames) {
		p.begin(c)
		return false
	}

	a := p.active
	if a.settled {
		return false
	}
	a.tick++
	if a.tick < max(a.clip.TicksPerFrame, 1) {
		return false
	}
	a.tick = 0
	a.index++
	if a.index < len(a.clip.Frames) {
		return false
	}

	a.index = len(a.clip.Frames) - 1
	if !a.clip.Hold {
		p.active = nil
		return true
	}
	a.settled = true
	return true
}

// begin tears down any playing instance and starts c from its first frame.
func (p *Player) begin(c Clip) {
	frames := make([]int, len(c.Frames))
	copy(frames, c.Frames)
	c.Frames = frames
	p.active = &instance{clip: c}
}

// Clear stops playback.
func (p *Player) Clear() { p.active = nil }

// Active reports whether a clip is loaded, including a held one.
func (p *Player) Active() bool { return p.active != nil }

// Current returns the frame on screen.
func (p *Player) Current() (Frame, bool) {
	if p.active == nil {
		return Frame{}, false
	}
	a := p.active
	return Frame{
		Name:  a.clip.Name,
		Unit:  a.clip.Unit,
		Index: a.index,
		Frame: a.clip.Frames[a.index],
	}, true
}

// sameFrames compares the two sequences up to the shorter length.
func sameFrames(a, b []int) bool {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
