package curriculum

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// boardAliases maps every accepted spelling to its canonical board name.
// Several boards were renamed in 2018; both spellings occur in question banks.
var boardAliases = map[string]string{
	"dhaka":      "Dhaka",
	"rajshahi":   "Rajshahi",
	"comilla":    "Cumilla",
	"cumilla":    "Cumilla",
	"jessore":    "Jashore",
	"jashore":    "Jashore",
	"chittagong": "Chattogram",
	"chattogram": "Chattogram",
	"barisal":    "Barishal",
	"barishal":   "Barishal",
	"sylhet":     "Sylhet",
	"dinajpur":   "Dinajpur",
	"mymensingh": "Mymensingh",
	"madrasah":   "Madrasah",
	"technical":  "Technical",
}

// KnownBoards returns the canonical board names, sorted.
func KnownBoards() []string {
	return slices.Compact(slices.Sorted(maps.Values(boardAliases)))
}

// IsBoardToken reports whether s (any case) names an education board.
func IsBoardToken(s string) bool {
	_, ok := boardAliases[fold(s)]
	return ok
}

// IsBoard reports whether s names a board, with or without a trailing
// "Board".
func IsBoard(s string) bool {
	return IsBoardToken(strings.TrimSuffix(fold(s), " board"))
}

// CanonicalBoard returns the current official name for a board spelling,
// or the trimmed input when it is not a known board.
func CanonicalBoard(s string) string {
	key := fold(strings.TrimSuffix(fold(s), " board"))
	if c, ok := boardAliases[key]; ok {
		return c
	}
	return strings.TrimSpace(s)
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
