package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shruti/nursebot/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print LLM usage totals per request purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("db")
		if path == "" {
			var err error
			path, err = store.DefaultPath()
			if err != nil {
				return err
			}
		}

		st, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer st.Close()

		summaries, err := st.Summarize(cmd.Context())
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Println("no LLM events recorded yet")
			return nil
		}

		fmt.Printf("%-15s %8s %8s %10s %10s %10s\n",
			"PURPOSE", "CALLS", "FAILED", "TOKENS", "COST($)", "AVG MS")
		for _, s := range summaries {
			fmt.Printf("%-15s %8d %8d %10d %10.4f %10.0f\n",
				s.Purpose, s.Requests, s.Failures, s.TotalTokens, s.TotalCostUSD, s.AvgLatencyMs)
		}
		return nil
	},
}
