package vars

import "testing"

func TestConditionEqualityIsStrict(t *testing.T) {
	tests := []struct {
		name string
		a, b Condition
		want bool
	}{
		{"same int", Int(1), Int(1), true},
		{"different int", Int(1), Int(2), false},
		{"int vs bool", Int(1), Bool(true), false},
		{"zero int vs false", Int(0), Bool(false), false},
		{"text vs int", Text("1"), Int(1), false},
		{"empty text vs false", Text(""), Bool(false), false},
		{"same text", Text("ash"), Text("ash"), true},
		{"same bool", Bool(false), Bool(false), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a == tt.b; got != tt.want {
				t.Errorf("%v == %v: got %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStoreGetAbsent(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected missing variable to be absent")
	}
}

func TestStoreSetOverwrites(t *testing.T) {
	s := NewStore()
	s.Set("badges", Int(1))
	s.Set("badges", Text("one"))

	got, ok := s.Get("badges")
	if !ok {
		t.Fatal("expected badges to be present")
	}
	if got != Text("one") {
		t.Errorf("expected overwrite to Text(\"one\"), got %v", got)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 variable, got %d", s.Len())
	}
}

func TestStoreDumpSorted(t *testing.T) {
	s := NewStore()
	s.Set("zeta", Bool(true))
	s.Set("alpha", Int(-3))

	lines := s.Dump()
	want := []string{"alpha = Integer(-3)", "zeta = Boolean(true)"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
