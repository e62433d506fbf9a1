package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a student's answer to a question",
	Example: `  tutor evaluate -s Physics -q "What does F=ma mean?" -a "Force is mass times acceleration"
  cat answer.txt | tutor evaluate -s Physics -q "What does F=ma mean?" -a -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")

		if answer == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read answer from stdin: %w", err)
			}
			answer = strings.TrimSpace(string(data))
		}
		if answer == "" {
			return errors.New("an answer is required (use -a TEXT or -a - to read stdin)")
		}

		s, r, d, err := startSession(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		evaluation, err := s.EvaluateAnswer(cmd.Context(), question, answer, subject)
		if err != nil {
			return err
		}

		r.Heading("Answer evaluation")
		r.Markdown(evaluation)
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringP("subject", "s", "", "Subject of the question")
	evaluateCmd.Flags().StringP("question", "q", "", "The question that was asked")
	evaluateCmd.Flags().StringP("answer", "a", "", "The student's answer, or - to read stdin")
	_ = evaluateCmd.MarkFlagRequired("subject")
	_ = evaluateCmd.MarkFlagRequired("question")
}
