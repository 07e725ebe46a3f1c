package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/curriculum"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the rules of a topic",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules of a topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, err := loadTopic(cmd)
		if err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		verbose, _ := cmd.Flags().GetBool("verbose")

		rules := curriculum.SearchRules(topic.Rules, search)
		out := cmd.OutOrStdout()
		if len(rules) == 0 {
			fmt.Fprintln(out, "No rules found.")
			return nil
		}
		for _, r := range rules {
			fmt.Fprintf(out, "%3d  %s\n", r.ID, r.Title)
			if verbose && r.Description != "" {
				fmt.Fprintf(out, "     %s\n", strings.TrimSpace(r.Description))
			}
		}
		return nil
	},
}

func init() {
	rulesListCmd.Flags().String("topic", "", "topic slug")
	rulesListCmd.Flags().String("search", "", "only rules whose title or description contains this text")
	rulesListCmd.Flags().BoolP("verbose", "v", false, "print rule descriptions")
	rulesCmd.AddCommand(rulesListCmd)
}
