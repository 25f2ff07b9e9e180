package vars

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies which variant a Condition holds.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Condition is a typed scalar used for script variables and comparisons.
// It is comparable: two Conditions are == only when both the variant and the
// value match, so Int(1) never equals Bool(true).
type Condition struct {
	kind Kind
	i    int32
	b    bool
	s    string
}

func Int(v int32) Condition   { return Condition{kind: KindInt, i: v} }
func Bool(v bool) Condition   { return Condition{kind: KindBool, b: v} }
func Text(v string) Condition { return Condition{kind: KindText, s: v} }

func (c Condition) Kind() Kind { return c.kind }

// AsInt returns the integer value and whether c is an Integer.
func (c Condition) AsInt() (int32, bool) { return c.i, c.kind == KindInt }

// AsBool returns the boolean value and whether c is a Boolean.
func (c Condition) AsBool() (bool, bool) { return c.b, c.kind == KindBool }

// AsText returns the string value and whether c is a Text.
func (c Condition) AsText() (string, bool) { return c.s, c.kind == KindText }

func (c Condition) String() string {
	switch c.kind {
	case KindInt:
		return "Integer(" + strconv.FormatInt(int64(c.i), 10) + ")"
	case KindBool:
		return "Boolean(" + strconv.FormatBool(c.b) + ")"
	case KindText:
		return "Text(" + strconv.Quote(c.s) + ")"
	default:
		return "Invalid"
	}
}

// Store maps variable names to Conditions for the lifetime of a session.
type Store struct {
	values map[string]Condition
}

func NewStore() *Store {
	return &Store{values: make(map[string]Condition)}
}

// Get returns the value stored under name. A missing name is reported with
// ok == false and is not an error.
func (s *Store) Get(name string) (Condition, bool) {
	c, ok := s.values[name]
	return c, ok
}

// Set inserts or overwrites name.
func (s *Store) Set(name string, value Condition) {
	s.values[name] = value
}

func (s *Store) Len() int { return len(s.values) }

// Names returns all variable names in lexical order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dump renders every variable as "name = value", sorted by name.
func (s *Store) Dump() []string {
	names := s.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s = %s", name, s.values[name]))
	}
	return lines
}
