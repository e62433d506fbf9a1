package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/tutor"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise <subject> <concept>",
	Short: "Generate a personalized exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetInt("difficulty")
		exerciseType, _ := cmd.Flags().GetString("type")

		s, r, d, err := startSession(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		exercise, err := s.GeneratePersonalizedExercise(cmd.Context(), args[0], args[1], difficulty, exerciseType)
		if err != nil {
			return err
		}

		r.Heading("Personalized exercise")
		r.Markdown(exercise)
		return nil
	},
}

func init() {
	exerciseCmd.Flags().IntP("difficulty", "d", 3, "Difficulty level (1-5 scale)")
	exerciseCmd.Flags().StringP("type", "t", tutor.DefaultExerciseType, "Exercise type (e.g. problem_solving, conceptual)")
}
