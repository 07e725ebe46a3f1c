package curriculum

import "errors"

// ErrTopicNotFound is returned when a topic slug is not in the registry.
var ErrTopicNotFound = errors.New("topic not found")

// Level is the examination level a topic is taught for.
type Level string

const (
	LevelHSC Level = "HSC"
	LevelSSC Level = "SSC"
)

// AllLevels returns all levels in display order.
func AllLevels() []Level {
	return []Level{LevelHSC, LevelSSC}
}

// LevelDisplayName returns a human-readable name for a level.
func LevelDisplayName(l Level) string {
	switch l {
	case LevelHSC:
		return "Higher Secondary (HSC)"
	case LevelSSC:
		return "Secondary (SSC)"
	default:
		return string(l)
	}
}

// Rule is a named grammar pattern. Description may be written in Bangla.
type Rule struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Question is a board practice question. Text carries the blank labels and
// the instructional hints in parentheses.
type Question struct {
	ID     string `yaml:"id" json:"id"`
	Text   string `yaml:"text" json:"text"`
	Board  string `yaml:"board,omitempty" json:"board,omitempty"`
	Year   int    `yaml:"year,omitempty" json:"year,omitempty"`
	Answer string `yaml:"answer,omitempty" json:"answer,omitempty"`
}

// Topic groups the rules and board questions of one grammar item.
type Topic struct {
	Slug      string     `yaml:"slug" json:"slug"`
	Title     string     `yaml:"title" json:"title"`
	Level     Level      `yaml:"level" json:"level"`
	Rules     []Rule     `yaml:"rules" json:"rules"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// Dataset is the unit a data file decodes into.
type Dataset struct {
	Version string  `yaml:"version" json:"version"`
	Topics  []Topic `yaml:"topics" json:"topics"`
}
