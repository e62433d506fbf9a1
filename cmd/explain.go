package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <subject> <concept>",
	Short: "Explain a concept adapted to the student profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetInt("difficulty")

		s, r, d, err := startSession(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		exp, err := s.ExplainConcept(cmd.Context(), args[0], args[1], difficulty)
		if err != nil {
			return err
		}

		r.Heading("Concept explanation")
		r.Markdown(exp.Text)
		r.Heading("Extracted practice questions (" + strconv.Itoa(len(exp.PracticeQuestions)) + ")")
		r.Questions(exp.PracticeQuestions)
		return nil
	},
}

func init() {
	explainCmd.Flags().IntP("difficulty", "d", 3, "Difficulty level (1-5 scale)")
}
