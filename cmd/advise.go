package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/grammatch/internal/advisor"
	"github.com/abhisek/grammatch/internal/llm"
	"github.com/abhisek/grammatch/internal/report"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Ask an LLM which rule each unmatched question tests",
	Long: `Run the matcher, then ask the configured LLM provider for a second opinion
on every unmatched question. The heuristic mapping is left unchanged; advice is
reported next to it, followed by token usage and estimated cost.

The provider is chosen by GRAMMATCH_LLM_PROVIDER and GRAMMATCH_<PROVIDER>_API_KEY,
or discovered from GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or
OPENROUTER_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		topic, err := loadTopic(cmd)
		if err != nil {
			return err
		}

		llmCfg, err := llm.Resolve()
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		tally := llm.NewTally(debugLog)
		provider, err := llm.NewProvider(cmd.Context(), llmCfg, tally)
		if err != nil {
			return fmt.Errorf("create LLM provider: %w", err)
		}
		debugLog.Printf("advising with %s (%s)", llmCfg.Provider, provider.ModelID())

		res, err := matchTopic(cmd.Context(), topic)
		if err != nil {
			return err
		}
		adv := advisor.New(provider, advisor.DefaultConfig())
		advice, err := advisor.AdviseUnmatched(cmd.Context(), adv, topic.Rules, topic.Questions, res.Unmatched, appCfg.Workers)
		if err != nil {
			return err
		}

		r := report.Build(topic, topic.Rules, topic.Questions, res)
		r.Advice = advice
		out := cmd.OutOrStdout()
		if err := report.Write(out, r, format); err != nil {
			return err
		}
		// Machine-readable output stays parseable; usage goes to stderr.
		if format != report.FormatText {
			out = cmd.ErrOrStderr()
		}
		writeUsage(out, tally)
		return nil
	},
}

func writeUsage(w io.Writer, t *llm.Tally) {
	models := t.Models()
	if len(models) == 0 {
		fmt.Fprintln(w, "\nNo LLM calls made.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "LLM Usage")
	fmt.Fprintln(w, strings.Repeat("─", 86))
	fmt.Fprintf(w, "%-28s  %6s  %6s  %10s  %10s  %8s  %8s\n",
		"Model", "Calls", "Failed", "Input", "Output", "Avg Ms", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 86))
	for _, m := range append(models, t.Total()) {
		name := m.Model
		if len(name) > 28 {
			name = name[:28]
		}
		fmt.Fprintf(w, "%-28s  %6d  %6d  %10d  %10d  %8d  %8s\n",
			name, m.Calls, m.Failures, m.InputTokens, m.OutputTokens,
			m.AvgLatency()/time.Millisecond, formatCost(m.Cost))
	}
}

func formatCost(usd float64) string {
	if usd == 0 {
		return "-"
	}
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	adviseCmd.Flags().String("topic", "", "topic slug")
	adviseCmd.Flags().StringP("format", "o", "text", "output format: text, json or yaml")
}
