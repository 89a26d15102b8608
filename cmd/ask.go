package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question against the knowledge base",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		question := strings.Join(args, " ")
		answer, err := a.answerer.Answer(cmd.Context(), question)
		if err != nil {
			return err
		}

		fmt.Println(answer)

		if suggest, _ := cmd.Flags().GetBool("suggest"); suggest {
			fmt.Println("\nFollow-up questions:")
			for _, s := range a.suggester.Suggest(cmd.Context(), question) {
				fmt.Println("  -", s)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("suggest", false, "Also print follow-up question suggestions")
}
