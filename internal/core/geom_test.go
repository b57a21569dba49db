package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if r.Right() != 30 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (30, 25)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) || !f.Empty() {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionPause)
	f.Set(ActionOverlay)
	if !f.Has(ActionPause) || !f.Has(ActionOverlay) || f.Has(ActionStep) {
		t.Errorf("unexpected actions %v", f.Actions())
	}
	f.Set(ActionNone)
	if got := f.Actions(); len(got) != 2 || got[0] != ActionPause || got[1] != ActionOverlay {
		t.Errorf("Actions() = %v, expected [Pause Overlay]", got)
	}

	f.Clear()
	if f.Has(ActionPause) || !f.Empty() {
		t.Error("Clear should drop all actions")
	}
	if ActionStep.String() != "Step" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}

func TestRuntimeConfigDt(t *testing.T) {
	if dt := (RuntimeConfig{TickRate: 30}).Dt(); dt != 1.0/30 {
		t.Errorf("Dt() = %v", dt)
	}
	if dt := (RuntimeConfig{}).Dt(); dt != 1.0/60 {
		t.Errorf("zero tick rate Dt() = %v, expected 1/60", dt)
	}
}

func TestRectInsetIntersect(t *testing.T) {
	r := NewRect(0, 1, 10, 6)
	in := r.Inset(1)
	if in != NewRect(1, 2, 8, 4) {
		t.Errorf("Inset(1) = %+v", in)
	}
	if !r.Inset(4).Empty() {
		t.Error("over-inset rect should be empty")
	}

	got := r.Intersect(NewRect(5, 5, 10, 10))
	if got != NewRect(5, 5, 5, 2) {
		t.Errorf("Intersect = %+v", got)
	}
	if !r.Intersect(NewRect(20, 20, 2, 2)).Empty() {
		t.Error("disjoint rects should intersect to empty")
	}
}

func TestColorANSI(t *testing.T) {
	if ColorDefault.ANSI() != -1 || Color(200).ANSI() != -1 {
		t.Error("default and unknown colors should map to -1")
	}
	if ColorOrange.ANSI() != 208 || ColorTeamRed.ANSI() != 9 {
		t.Error("unexpected palette codes")
	}
}
