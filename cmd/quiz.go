package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shruti/nursebot/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a practice quiz and print it with answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cmd, false)
		if err != nil {
			return err
		}
		defer a.close()

		count, _ := cmd.Flags().GetInt("n")
		topic, _ := cmd.Flags().GetString("topic")

		result, err := a.generator.Generate(cmd.Context(), quiz.GenerateRequest{
			Count: count,
			Topic: topic,
		})
		if err != nil {
			return err
		}

		for i, q := range result.Questions {
			fmt.Printf("%d. %s\n", i+1, q.Question)
			for j, opt := range q.Options {
				fmt.Printf("   %c) %s\n", 'a'+j, opt)
			}
			fmt.Printf("   Answer: %s\n\n", q.Answer)
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().Int("n", 10, "Number of questions")
	quizCmd.Flags().String("topic", quiz.GeneralTopic, "Quiz topic")
}
