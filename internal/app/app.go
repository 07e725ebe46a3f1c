package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammatch/internal/router"
	"github.com/abhisek/grammatch/internal/screen"
	"github.com/abhisek/grammatch/internal/screens/topics"
	"github.com/abhisek/grammatch/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates an AppModel opened on the topic list.
func NewAppModel(data []screen.TopicData) AppModel {
	return AppModel{
		router: router.New(topics.New(data)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if !m.capturing() {
				return m, tea.Quit
			}
		case "esc":
			if m.capturing() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturingInput()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "q", Description: "Quit"})
}

// Run starts the browser over data and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, data []screen.TopicData, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewAppModel(data), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
