package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-arena/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorTeamRed)
	s.DrawText(2, 0, "cd", core.ColorTeamBlue)
	s.SetColor(5, 1, 'x', core.Color(200))

	// Tests run without a terminal, so lipgloss renders plain text.
	got := RenderScreen(s)
	if got != s.String() {
		t.Errorf("RenderScreen() = %q, expected %q", got, s.String())
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", got)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / 60},
		{-5, time.Second / 60},
	}
	for _, tc := range tests {
		if got := FrameInterval(tc.rate); got != tc.want {
			t.Errorf("FrameInterval(%d) = %v, expected %v", tc.rate, got, tc.want)
		}
	}
}
