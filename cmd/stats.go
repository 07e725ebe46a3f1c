package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show match statistics",
	Long:  "Show match statistics for one topic, or for every topic when --topic is not given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var topics []curriculum.Topic
		if slug, _ := cmd.Flags().GetString("topic"); slug != "" {
			t, err := loadTopic(cmd)
			if err != nil {
				return err
			}
			topics = []curriculum.Topic{t}
		} else {
			ds, err := loadDataset()
			if err != nil {
				return err
			}
			topics = ds.Topics
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %9s  %7s  %9s  %8s  %11s  %8s\n",
			"Topic", "Questions", "Matched", "Unmatched", "AvgConf", "RulesUsed", "RulesIdle")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, t := range topics {
			res, err := matchTopic(cmd.Context(), t)
			if err != nil {
				return err
			}
			s := matcher.ComputeStats(res)
			fmt.Fprintf(out, "%-16s  %9d  %7d  %9d  %8.2f  %11d  %8d\n",
				t.Slug, s.TotalQuestions, s.MatchedQuestions, s.UnmatchedQuestions,
				s.AverageConfidence, s.RulesWithQuestions, s.RulesWithoutQuestions)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("topic", "", "topic slug (default all topics)")
}
