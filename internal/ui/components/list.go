package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammatch/internal/ui/layout"
	"github.com/abhisek/grammatch/internal/ui/theme"
)

// ListItem is one row of a List. Badge is right-aligned, e.g. a count.
type ListItem struct {
	Label string
	Badge string
	Dim   bool
}

// List is a vertical, scrollable selection list.
type List struct {
	Items    []ListItem
	Selected int
	offset   int
}

func NewList(items []ListItem) List {
	return List{Items: items}
}

// SetItems replaces the rows and keeps the cursor in range.
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = min(l.Selected, max(len(items)-1, 0))
	l.offset = 0
}

// Update moves the cursor on up/down, k/j, home/end.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.Items) == 0 {
		return l, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if l.Selected > 0 {
			l.Selected--
		}
	case "down", "j":
		if l.Selected < len(l.Items)-1 {
			l.Selected++
		}
	case "home", "g":
		l.Selected = 0
	case "end", "G":
		l.Selected = len(l.Items) - 1
	}
	return l, nil
}

// View renders at most height rows, scrolled so the cursor is visible.
func (l *List) View(width, height int) string {
	if len(l.Items) == 0 {
		return theme.Hint.Render("  (nothing here)")
	}
	if height < 1 {
		height = 1
	}
	if l.Selected < l.offset {
		l.offset = l.Selected
	}
	if l.Selected >= l.offset+height {
		l.offset = l.Selected - height + 1
	}

	end := min(l.offset+height, len(l.Items))
	var b strings.Builder
	for i := l.offset; i < end; i++ {
		item := l.Items[i]
		prefix, style := "    ", theme.Unselected
		if i == l.Selected {
			prefix, style = "  ▸ ", theme.Selected
		} else if item.Dim {
			style = theme.Subtitle
		}

		badge := ""
		if item.Badge != "" {
			badge = " " + theme.Subtitle.Render(item.Badge)
		}
		room := width - lipgloss.Width(prefix) - lipgloss.Width(badge) - 1
		label := layout.Truncate(item.Label, room)
		gap := max(room-lipgloss.Width(label), 0)

		b.WriteString(style.Render(prefix+label) + strings.Repeat(" ", gap) + badge)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
