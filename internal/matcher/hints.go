package matcher

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/abhisek/grammatch/internal/curriculum"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// parenGroup matches innermost parenthesised groups.
var parenGroup = regexp.MustCompile(`\(([^()]*)\)`)

// structuralWords are markers that carry no instruction on their own.
var structuralWords = map[string]bool{
	"board":  true,
	"boards": true,
}

// connectorWords are only structural next to another marker ("all boards").
var connectorWords = map[string]bool{
	"all": true,
	"and": true,
}

// romanLabels are blank labels some boards print instead of letters.
var romanLabels = map[string]bool{
	"i": true, "ii": true, "iii": true, "iv": true, "v": true,
	"vi": true, "vii": true, "viii": true, "ix": true, "x": true,
}

// normalize lower-cases s after NFC composition and trims it.
// A Caser is stateful, so one is built per call.
func normalize(s string) string {
	s = norm.NFC.String(s)
	return strings.TrimSpace(cases.Lower(language.Und).String(s))
}

// ExtractHints returns the instructional parenthetical hints in text,
// lower-cased and trimmed, in order of appearance. Blank labels, numbers,
// years and board names are dropped.
func ExtractHints(text string) []string {
	hints := []string{}
	for _, m := range parenGroup.FindAllStringSubmatch(text, -1) {
		h := normalize(m[1])
		if h == "" || IsStructural(h) {
			continue
		}
		hints = append(hints, h)
	}
	return hints
}

// IsStructural reports whether a candidate hint is a structural marker:
// a blank label (a–j or a roman numeral), a number or year, a board name,
// or a combination made only of those.
func IsStructural(h string) bool {
	tokens := strings.FieldsFunc(normalize(h), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(tokens) == 0 {
		// Punctuation only, e.g. "(---)".
		return true
	}

	marker := false
	for _, t := range tokens {
		switch {
		case isBlankLabel(t), isNumber(t), structuralWords[t], curriculum.IsBoardToken(t):
			marker = true
		case connectorWords[t]:
		default:
			return false
		}
	}
	return marker
}

func isBlankLabel(t string) bool {
	if len(t) == 1 && t[0] >= 'a' && t[0] <= 'j' {
		return true
	}
	return romanLabels[t]
}

// isNumber covers bare integers and four-digit years.
func isNumber(t string) bool {
	for _, r := range t {
		if r < '0' || r > '9' {
			return false
		}
	}
	return t != ""
}
