package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// SearchInput is a one-line filter box. Typing updates the query; enter or
// esc ends editing.
type SearchInput struct {
	Model   textinput.Model
	editing bool
}

func NewSearchInput(placeholder string) SearchInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return SearchInput{Model: ti}
}

// Start focuses the box for editing.
func (s *SearchInput) Start() tea.Cmd {
	s.editing = true
	return s.Model.Focus()
}

// Editing reports whether key presses belong to the box.
func (s SearchInput) Editing() bool { return s.editing }

// Update feeds msg to the input while editing.
func (s SearchInput) Update(msg tea.Msg) (SearchInput, tea.Cmd) {
	if !s.editing {
		return s, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			s.editing = false
			s.Model.Blur()
			return s, nil
		case "esc":
			s.editing = false
			s.Model.Blur()
			s.Model.SetValue("")
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

func (s SearchInput) View() string { return s.Model.View() }

func (s SearchInput) Value() string { return s.Model.Value() }
