package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
	"github.com/abhisek/grammatch/internal/report"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Map a topic's questions to its rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		topic, err := loadTopic(cmd)
		if err != nil {
			return err
		}
		res, err := matchTopic(cmd.Context(), topic)
		if err != nil {
			return err
		}
		r := report.Build(topic, topic.Rules, topic.Questions, res)
		return report.Write(cmd.OutOrStdout(), r, format)
	},
}

// matchTopic runs the matcher over topic with the configured weights and
// worker count.
func matchTopic(ctx context.Context, topic curriculum.Topic) (matcher.Result, error) {
	start := time.Now()
	res, err := matcher.MatchConcurrent(ctx, topic.Rules, topic.Questions, appCfg.Weights, appCfg.Workers)
	if err != nil {
		return matcher.Result{}, err
	}
	debugLog.Printf("matched %s: %d questions, %d unmatched in %s",
		topic.Slug, len(res.Analyses), len(res.Unmatched), time.Since(start).Round(time.Microsecond))
	return res, nil
}

func formatFlag(cmd *cobra.Command) (report.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	return report.ParseFormat(s)
}

func init() {
	matchCmd.Flags().String("topic", "", "topic slug")
	matchCmd.Flags().StringP("format", "o", "text", "output format: text, json or yaml")
}
