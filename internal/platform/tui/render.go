package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-arena/internal/core"
)

var cellStyles = func() (out [core.NumColors]lipgloss.Style) {
	for c := range core.NumColors {
		s := lipgloss.NewStyle()
		if code := c.ANSI(); code >= 0 {
			s = s.Foreground(lipgloss.Color(strconv.Itoa(code)))
		}
		out[c] = s
	}
	return out
}()

func cellStyle(c core.Color) lipgloss.Style {
	if c >= core.NumColors {
		return cellStyles[core.ColorDefault]
	}
	return cellStyles[c]
}

// RenderScreen converts a Screen buffer to a styled string. Each run of
// same-colored cells in a row is rendered as one segment.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	run := make([]rune, 0, s.Width())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		run = run[:0]
		color := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != color && len(run) > 0 {
				sb.WriteString(cellStyle(color).Render(string(run)))
				run = run[:0]
			}
			color = cell.Color
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			sb.WriteString(cellStyle(color).Render(string(run)))
		}
	}
	return sb.String()
}
