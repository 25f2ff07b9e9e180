package engine

import "strings"

// Pronouns is the set used to refer to the player in dialogue.
type Pronouns struct {
	Subject    string
	Object     string
	Possessive string
}

var pronounSets = map[string]Pronouns{
	"they": {"they", "them", "their"},
	"she":  {"she", "her", "her"},
	"he":   {"he", "him", "his"},
}

// PronounSet looks up a set by its subject form.
func PronounSet(name string) (Pronouns, bool) {
	p, ok := pronounSets[strings.ToLower(name)]
	return p, ok
}

// Session is the static context shared by every event of a play session.
type Session struct {
	PlayerName string
	RivalName  string
	Pronouns   Pronouns
}

// Expand replaces the session placeholders in text.
func (s Session) Expand(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	return strings.NewReplacer(
		"{player}", s.PlayerName,
		"{rival}", s.RivalName,
		"{they}", s.Pronouns.Subject,
		"{them}", s.Pronouns.Object,
		"{their}", s.Pronouns.Possessive,
	).Replace(text)
}

type sessionResolver struct {
	locale  Localizer
	session Session
}

func (r sessionResolver) Resolve(key string) string {
	return r.session.Expand(r.locale.Resolve(key))
}
