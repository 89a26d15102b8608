package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shruti/nursebot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides NURSEBOT_ADDR and PORT)")
}

func runServe(cmd *cobra.Command) error {
	a, err := buildApp(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	srv := server.New(a.answerer, a.suggester, a.generator, a.grader, a.history, a.logger)
	return srv.Run(resolveAddr(cmd))
}

func resolveAddr(cmd *cobra.Command) string {
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		return addr
	}
	if addr := os.Getenv("NURSEBOT_ADDR"); addr != "" {
		return addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8000"
}
