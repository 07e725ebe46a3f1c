package matcher

import (
	"regexp"
	"strings"
)

// Vocabulary is the fixed set of grammar terms recognised in hints, in the
// order keywords are reported.
var Vocabulary = []string{
	"pre-modify",
	"post-modify",
	"adjective",
	"noun",
	"verb",
	"adverb",
	"infinitive",
	"participle",
	"possessive",
	"determiner",
	"intensifier",
	"quantifier",
	"demonstrative",
	"article",
	"appositive",
	"relative clause",
	"prepositional phrase",
	"adverbial phrase",
	"present participle",
	"numeral",
	"gerund",
}

// modifyVariants folds "premodify", "pre modify", "pre-modifier" and the
// post- forms onto the hyphenated verb.
var (
	preModify  = regexp.MustCompile(`\bpre[\s-]?modif[a-z]*`)
	postModify = regexp.MustCompile(`\bpost[\s-]?modif[a-z]*`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// patternPhrases earn the phrase bonus when both hint and title contain them.
var patternPhrases = buildPatternPhrases()

func buildPatternPhrases() []string {
	var out []string
	for _, verb := range []string{"pre-modify", "post-modify"} {
		for _, head := range []string{"noun", "verb", "adjective", "adverb"} {
			out = append(out, verb+" the "+head)
		}
	}
	return out
}

// instructionTerms earn the term bonus for a "use <term>" hint whose term
// appears in the rule title.
var instructionTerms = []string{
	"possessive",
	"adjective",
	"adverb",
	"infinitive",
	"participle",
	"present participle",
	"past participle",
	"determiner",
	"intensifier",
	"quantifier",
	"demonstrative",
	"article",
	"definite article",
	"indefinite article",
	"appositive",
	"relative clause",
	"prepositional phrase",
	"adverbial phrase",
	"numeral",
	"gerund",
}

// canonical rewrites spelling variants and collapses whitespace.
func canonical(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = preModify.ReplaceAllString(s, "pre-modify")
	s = postModify.ReplaceAllString(s, "post-modify")
	return s
}

// ExtractKeywords returns the vocabulary terms found in any of hints,
// deduplicated and in vocabulary order.
func ExtractKeywords(hints []string) []string {
	keywords := []string{}
	if len(hints) == 0 {
		return keywords
	}
	joined := make([]string, len(hints))
	for i, h := range hints {
		joined[i] = canonical(h)
	}
	for _, term := range Vocabulary {
		for _, h := range joined {
			if strings.Contains(h, term) {
				keywords = append(keywords, term)
				break
			}
		}
	}
	return keywords
}

// usesTerm reports whether hint instructs to use term, allowing an article
// between "use" and the term.
func usesTerm(hint, term string) bool {
	for _, prefix := range []string{"use ", "use a ", "use an ", "use the "} {
		if strings.Contains(hint, prefix+term) {
			return true
		}
	}
	return false
}
