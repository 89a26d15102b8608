// Package cmd wires the CLI: serve runs the HTTP API, ask and quiz run
// one-shot requests, stats prints the LLM event log summary.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nursebot",
	Short: "Nursing study assistant",
	Long:  "Nursebot — retrieval-grounded nursing Q&A with LLM-generated practice quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("knowledge", "", "Path to the knowledge file, .txt or .pdf (overrides NURSEBOT_KNOWLEDGE)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite event log (overrides default cache location)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
