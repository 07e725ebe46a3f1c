package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
	"github.com/abhisek/grammatch/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for a short right-aligned header
// status, e.g. "12/14 matched".
type StatusProvider interface {
	Status() string
}

// InputCapturer is implemented by screens that sometimes own the keyboard,
// such as while a search box is focused. The app does not treat esc as
// "back" while CapturingInput is true.
type InputCapturer interface {
	CapturingInput() bool
}

// TopicData is one topic together with its matcher run.
type TopicData struct {
	Topic   curriculum.Topic
	Result  matcher.Result
	Weights matcher.Weights
}
