package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the board questions of a topic",
	Long: `List the board questions of a topic. With --rule, only the questions the
matcher maps to that rule are listed, in mapping order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, err := loadTopic(cmd)
		if err != nil {
			return err
		}
		ruleID, _ := cmd.Flags().GetInt("rule")
		board, _ := cmd.Flags().GetString("board")
		year, _ := cmd.Flags().GetInt("year")

		if board != "" && !curriculum.IsBoard(board) {
			return fmt.Errorf("unknown board %q (known: %s)", board, strings.Join(curriculum.KnownBoards(), ", "))
		}

		qs := topic.Questions
		if cmd.Flags().Changed("rule") {
			if !hasRule(topic, ruleID) {
				return fmt.Errorf("topic %q has no rule %d", topic.Slug, ruleID)
			}
			res, err := matcher.MatchConcurrent(cmd.Context(), topic.Rules, topic.Questions, appCfg.Weights, appCfg.Workers)
			if err != nil {
				return err
			}
			qs = matcher.QuestionsForRule(ruleID, res.Mapping, topic.Questions)
		}
		qs = curriculum.FilterQuestions(qs, curriculum.QuestionFilter{Board: board, Year: year})

		out := cmd.OutOrStdout()
		if len(qs) == 0 {
			fmt.Fprintln(out, "No questions found.")
			return nil
		}
		for _, q := range qs {
			fmt.Fprintf(out, "%s  [%s %d]\n  %s\n", q.ID, q.Board, q.Year, q.Text)
		}
		return nil
	},
}

func hasRule(t curriculum.Topic, id int) bool {
	for _, r := range t.Rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

func init() {
	questionsCmd.Flags().String("topic", "", "topic slug")
	questionsCmd.Flags().Int("rule", 0, "only questions mapped to this rule id")
	questionsCmd.Flags().String("board", "", "only questions from this board")
	questionsCmd.Flags().Int("year", 0, "only questions from this year")
}
