package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammatch/internal/ui/theme"
)

// ConfidenceBar draws a value in [0, 1] as a bar with a percentage.
type ConfidenceBar struct {
	Value float64
	Width int
	// Threshold, when above zero, colours the percentage by acceptance.
	Threshold float64
}

func (c ConfidenceBar) View() string {
	barWidth := max(c.Width-6, 4)
	filled := min(max(int(float64(barWidth)*c.Value), 0), barWidth)

	bar := theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", barWidth-filled))

	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if c.Threshold > 0 {
		style = theme.Unmatched
		if c.Value > c.Threshold {
			style = theme.Matched
		}
	}
	return bar + style.Render(fmt.Sprintf(" %3d%%", int(c.Value*100+0.5)))
}
