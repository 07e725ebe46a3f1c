package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette, chosen to read like an annotated exam paper.
var (
	Primary   = lipgloss.Color("#2563EB") // Ink blue
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#EAB308") // Highlighter
	Success   = lipgloss.Color("#16A34A") // Green
	Error     = lipgloss.Color("#DC2626") // Red pen
	Text      = lipgloss.Color("#F1F5F9")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Keyword = lipgloss.NewStyle().
		Foreground(Accent)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Matched = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Unmatched = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	BarFilled = lipgloss.NewStyle().
			Background(Secondary)

	BarEmpty = lipgloss.NewStyle().
			Background(Border)
)
