package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/profile"
	"github.com/abhisek/tutor/internal/tutor"
)

const (
	demoSubject = "Physics"
	demoConcept = "Newton's Second Law of Motion (F=ma)"

	demoFallbackQuestion = "Explain Newton's Second Law of Motion"

	demoAnswer = `The Second Law says that force equals mass times acceleration (F=ma).
So if you push a heavy object and a light object with the same force,
the light object will accelerate more because it has less mass.`
)

// demoProfile is the sample student used when no --profile is given.
func demoProfile() profile.Profile {
	return profile.Profile{
		Name:              "Alex Chen",
		Age:               15,
		Grade:             10,
		LearningStyle:     "visual",
		Interests:         []string{"video games", "basketball", "space exploration"},
		Strengths:         []string{"problem solving", "creativity"},
		GrowthAreas:       []string{"mathematical formulas", "writing detailed explanations"},
		PreferredExamples: "technology and sports-related",
	}
}

// demoQuestion picks the question the sample answer is evaluated against.
func demoQuestion(questions []string) string {
	if len(questions) == 0 || strings.TrimSpace(questions[0]) == "" {
		return demoFallbackQuestion
	}
	return questions[0]
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an explain, evaluate and exercise round for a sample student",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile(cmd)
		if err != nil {
			return err
		}
		if p.IsZero() {
			p = demoProfile()
		}

		r, err := newRenderer(cmd)
		if err != nil {
			return err
		}
		d, err := buildDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		s, err := newSession(d.provider, p)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		exp, err := s.ExplainConcept(ctx, demoSubject, demoConcept, 3)
		if err != nil {
			return err
		}
		r.Heading("Concept explanation")
		r.Markdown(exp.Text)
		r.Heading("Extracted practice questions")
		r.Questions(exp.PracticeQuestions)

		evaluation, err := s.EvaluateAnswer(ctx, demoQuestion(exp.PracticeQuestions), demoAnswer, demoSubject)
		if err != nil {
			return err
		}
		r.Heading("Answer evaluation")
		r.Markdown(evaluation)

		exercise, err := s.GeneratePersonalizedExercise(ctx, demoSubject, demoConcept, 3, tutor.DefaultExerciseType)
		if err != nil {
			return err
		}
		r.Heading("Personalized exercise")
		r.Markdown(exercise)
		return nil
	},
}
