package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/grammatch/internal/config"
	"github.com/abhisek/grammatch/internal/curriculum"
)

var (
	cfgFile string

	// appCfg and debugLog are set before any subcommand runs.
	appCfg   config.Config
	debugLog = log.New(io.Discard, "", 0)
)

var rootCmd = &cobra.Command{
	Use:   "grammatch",
	Short: "Map board exam grammar questions to the rules they test",
	Long: `grammatch reads the hints printed in board exam grammar questions, scores
them against each topic's rules and reports which questions practise which rule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.Root())
	},
}

// Execute runs the command line; ctx is cancelled on interrupt by main.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.grammatch.yaml)")
	rootCmd.PersistentFlags().String("data", "", "dataset file or directory (default is the built-in curriculum)")
	rootCmd.PersistentFlags().Bool("debug", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().Int("workers", 0, "concurrent workers (default from config, 4)")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(unmatchedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads the config file and GRAMMATCH_* variables into appCfg.
// Each run gets a fresh viper so settings never leak between executions.
func initConfig(root *cobra.Command) error {
	v := viper.New()
	flags := root.PersistentFlags()
	for _, key := range []string{"data", "debug"} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("bind --%s: %w", key, err)
		}
	}
	if err := config.Init(v, cfgFile); err != nil {
		return err
	}
	// A zero flag means "not given"; only bind workers when set.
	if flags.Changed("workers") {
		n, _ := flags.GetInt("workers")
		v.Set("workers", n)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	appCfg = cfg

	if cfg.Debug {
		debugLog = log.New(os.Stderr, "grammatch: ", log.Ltime|log.Lmicroseconds)
		if used := v.ConfigFileUsed(); used != "" {
			debugLog.Println("using config file", used)
		}
	} else {
		debugLog = log.New(io.Discard, "", 0)
	}
	return nil
}

// loadDataset returns the configured dataset, or the built-in curriculum.
func loadDataset() (curriculum.Dataset, error) {
	if appCfg.Data == "" {
		return curriculum.Builtin(), nil
	}
	ds, err := curriculum.LoadFile(appCfg.Data)
	if err != nil {
		return curriculum.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}
	debugLog.Printf("loaded %d topics from %s", len(ds.Topics), appCfg.Data)
	return ds, nil
}

// loadTopic resolves the --topic flag against the dataset.
func loadTopic(cmd *cobra.Command) (curriculum.Topic, error) {
	slug, _ := cmd.Flags().GetString("topic")
	if slug == "" {
		return curriculum.Topic{}, fmt.Errorf("--topic is required")
	}
	ds, err := loadDataset()
	if err != nil {
		return curriculum.Topic{}, err
	}
	return ds.FindTopic(slug)
}
