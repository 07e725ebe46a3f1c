package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/curriculum"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the dataset for structural problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		if err := curriculum.Validate(ds); err != nil {
			return err
		}
		questions := 0
		for _, t := range ds.Topics {
			questions += len(t.Questions)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d topics, %d questions\n", len(ds.Topics), questions)
		return nil
	},
}
