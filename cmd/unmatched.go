package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var unmatchedCmd = &cobra.Command{
	Use:   "unmatched",
	Short: "List questions no rule could be assigned to",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, err := loadTopic(cmd)
		if err != nil {
			return err
		}
		res, err := matchTopic(cmd.Context(), topic)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(res.Unmatched) == 0 {
			fmt.Fprintln(out, "Every question matched a rule.")
			return nil
		}
		for _, id := range res.Unmatched {
			a, _ := res.AnalysisFor(id)
			hints := strings.Join(a.Hints, " | ")
			if hints == "" {
				hints = "-"
			}
			fmt.Fprintf(out, "%-28s  %.2f  %s\n", id, a.Confidence, hints)
		}
		fmt.Fprintf(out, "\n%d of %d questions unmatched\n", len(res.Unmatched), len(res.Analyses))
		return nil
	},
}

func init() {
	unmatchedCmd.Flags().String("topic", "", "topic slug")
}
