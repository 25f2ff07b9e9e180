package team

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAddMonsterFillsSlots(t *testing.T) {
	tm := New(nil)
	for i := 0; i < Size; i++ {
		slot, ok := tm.AddMonster("sparkit", 5)
		if !ok || slot != i {
			t.Fatalf("add %d: got slot %d ok=%v", i, slot, ok)
		}
	}
	if _, ok := tm.AddMonster("extra", 5); ok {
		t.Error("expected full team to reject a seventh monster")
	}
	if n := len(tm.Members()); n != Size {
		t.Errorf("expected %d members, got %d", Size, n)
	}
}

func TestAddMonsterClampsLevel(t *testing.T) {
	tm := New(nil)
	tm.AddMonster("a", 0)
	tm.AddMonster("b", 250)
	a, _ := tm.Slot(0)
	b, _ := tm.Slot(1)
	if a.Level != 1 || b.Level != MaxLevel {
		t.Errorf("unexpected levels %d, %d", a.Level, b.Level)
	}
	if a.Experience != 1 {
		t.Errorf("level 1 should start at 1 xp, got %d", a.Experience)
	}
}

func TestGiveExperience(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		amount    int
		wantUp    bool
		wantLevel int
	}{
		{"not enough", 5, 10, false, 5},
		{"one level", 5, 216 - 125, true, 6},
		{"several levels", 5, 1000 - 125, true, 10},
		{"zero", 5, 0, false, 5},
		{"capped", 99, 1 << 30, true, MaxLevel},
		{"already max", MaxLevel, 500, false, MaxLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(nil)
			tm.AddMonster("sparkit", tt.level)
			up, ok := tm.GiveExperience(0, tt.amount)
			if !ok || up != tt.wantUp {
				t.Fatalf("GiveExperience = (%v, %v), want (%v, true)", up, ok, tt.wantUp)
			}
			m, _ := tm.Slot(0)
			if m.Level != tt.wantLevel {
				t.Errorf("level = %d, want %d", m.Level, tt.wantLevel)
			}
			if m.Experience > ExperienceFor(MaxLevel) {
				t.Errorf("experience %d above cap", m.Experience)
			}
		})
	}
}

func TestGiveExperienceEmptySlot(t *testing.T) {
	tm := New(nil)
	for _, slot := range []int{-1, 0, Size} {
		if _, ok := tm.GiveExperience(slot, 10); ok {
			t.Errorf("slot %d: expected not ok", slot)
		}
	}
}

func TestYAML(t *testing.T) {
	tm := New(nil)
	empty, err := tm.YAML()
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != "[]\n" {
		t.Errorf("empty team = %q, want %q", empty, "[]\n")
	}

	tm.AddMonster("emberling", 5)
	tm.AddMonster("tidepup", 2)
	out, err := tm.YAML()
	if err != nil {
		t.Fatal(err)
	}
	var got []map[string]any
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("dump is not valid YAML: %v\n%s", err, out)
	}
	if len(got) != 2 || got[0]["species"] != "emberling" || got[0]["level"] != 5 || got[1]["experience"] != 8 {
		t.Errorf("unexpected dump:\n%s", out)
	}
}
