package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/curriculum"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List grammar topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(ds.Topics) == 0 {
			fmt.Fprintln(out, "No topics found.")
			return nil
		}

		// Levels outside AllLevels only occur in unvalidated external data;
		// they are listed last.
		levels := curriculum.AllLevels()
		byLevel := make(map[curriculum.Level][]curriculum.Topic)
		for _, t := range ds.Topics {
			if _, ok := byLevel[t.Level]; !ok && !slices.Contains(levels, t.Level) {
				levels = append(levels, t.Level)
			}
			byLevel[t.Level] = append(byLevel[t.Level], t)
		}

		first := true
		for _, l := range levels {
			topics := byLevel[l]
			if len(topics) == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(out)
			}
			first = false

			fmt.Fprintln(out, curriculum.LevelDisplayName(l))
			fmt.Fprintf(out, "  %-16s  %5s  %9s  %s\n", "Slug", "Rules", "Questions", "Title")
			fmt.Fprintln(out, "  "+strings.Repeat("─", 70))
			for _, t := range topics {
				fmt.Fprintf(out, "  %-16s  %5d  %9d  %s\n", t.Slug, len(t.Rules), len(t.Questions), t.Title)
			}
		}
		return nil
	},
}
