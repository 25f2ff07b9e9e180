package anim

import "sort"

// emoteTicksPerFrame is shared by every emote balloon.
const emoteTicksPerFrame = 6

var emotes = map[string][]int{
	"exclaim":  {0, 1, 2, 2, 2},
	"question": {3, 4, 5, 5, 5},
	"heart":    {6, 7, 6, 7, 6},
	"music":    {8, 9, 10, 9, 8},
	"sweat":    {11, 12, 13, 13},
	"anger":    {14, 15, 14, 15},
	"ellipsis": {16, 17, 18, 19},
	"sleep":    {20, 21, 22, 21, 20},
}

// Emote returns the balloon clip for name shown over unit.
func Emote(name, unit string) (Clip, bool) {
	frames, ok := emotes[name]
	if !ok {
		return Clip{}, false
	}
	return Clip{
		Name:          "emote:" + name,
		Unit:          unit,
		Frames:        frames,
		TicksPerFrame: emoteTicksPerFrame,
	}, true
}

// EmoteNames lists the known emotes in lexical order.
func EmoteNames() []string {
	names := make([]string, 0, len(emotes))
	for name := range emotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
