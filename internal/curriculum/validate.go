package curriculum

import (
	"fmt"
	"slices"
	"strings"
)

// Validate performs structural checks on a dataset and returns a combined
// error describing every problem found, or nil if the dataset is clean.
// The matcher tolerates all of these; this is a content lint.
func Validate(ds Dataset) error {
	var errs []string

	if err := checkVersion(ds.Version); err != nil {
		errs = append(errs, err.Error())
	}

	slugs := make(map[string]bool, len(ds.Topics))
	for _, t := range ds.Topics {
		if t.Slug == "" {
			errs = append(errs, fmt.Sprintf("topic %q has an empty slug", t.Title))
		} else if slugs[t.Slug] {
			errs = append(errs, fmt.Sprintf("duplicate topic slug: %q", t.Slug))
		}
		slugs[t.Slug] = true

		if !slices.Contains(AllLevels(), t.Level) {
			errs = append(errs, fmt.Sprintf("topic %q: unknown level %q", t.Slug, t.Level))
		}
		errs = append(errs, validateTopic(t)...)
	}

	if len(errs) > 0 {
		return fmt.Errorf("dataset validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func validateTopic(t Topic) []string {
	var errs []string

	ruleIDs := make(map[int]bool, len(t.Rules))
	for _, r := range t.Rules {
		if ruleIDs[r.ID] {
			errs = append(errs, fmt.Sprintf("topic %q: duplicate rule ID %d", t.Slug, r.ID))
		}
		ruleIDs[r.ID] = true
		if strings.TrimSpace(r.Title) == "" {
			errs = append(errs, fmt.Sprintf("topic %q: rule %d has an empty title", t.Slug, r.ID))
		}
	}

	qIDs := make(map[string]bool, len(t.Questions))
	for _, q := range t.Questions {
		if q.ID == "" {
			errs = append(errs, fmt.Sprintf("topic %q: question with empty ID", t.Slug))
		} else if qIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("topic %q: duplicate question ID %q", t.Slug, q.ID))
		}
		qIDs[q.ID] = true
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("topic %q: question %q has empty text", t.Slug, q.ID))
		}
		if q.Board != "" && !IsBoard(q.Board) {
			errs = append(errs, fmt.Sprintf("topic %q: question %q has unknown board %q", t.Slug, q.ID, q.Board))
		}
	}
	return errs
}
