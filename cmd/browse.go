package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/app"
	"github.com/abhisek/grammatch/internal/screen"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse topics, rules and mapped questions in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		data := make([]screen.TopicData, 0, len(ds.Topics))
		for _, t := range ds.Topics {
			res, err := matchTopic(cmd.Context(), t)
			if err != nil {
				return err
			}
			data = append(data, screen.TopicData{Topic: t, Result: res, Weights: appCfg.Weights})
		}
		return app.Run(cmd.Context(), data)
	},
}
