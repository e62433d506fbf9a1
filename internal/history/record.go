// Package history holds the in-memory log of tutoring interactions.
package history

import "time"

// Kind identifies what produced an interaction record.
type Kind string

const (
	KindConceptExplanation   Kind = "concept_explanation"
	KindAnswerEvaluation     Kind = "answer_evaluation"
	KindPersonalizedExercise Kind = "personalized_exercise"
)

// Record is one completed interaction. Only the fields relevant to its Kind
// are populated. Records are values; the log never hands out pointers to
// its own storage.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject"`
	Concept   string    `json:"concept,omitempty"`
	Kind      Kind      `json:"interaction_type"`

	// concept_explanation and personalized_exercise
	DifficultyLevel int `json:"difficulty_level,omitempty"`

	// concept_explanation
	PracticeQuestions []string `json:"practice_questions,omitempty"`

	// answer_evaluation
	Question      string `json:"question,omitempty"`
	StudentAnswer string `json:"student_answer,omitempty"`
	Evaluation    string `json:"evaluation,omitempty"`

	// personalized_exercise
	ExerciseType    string `json:"exercise_type,omitempty"`
	ExerciseContent string `json:"exercise_content,omitempty"`
}

func (r Record) clone() Record {
	if r.PracticeQuestions != nil {
		r.PracticeQuestions = append([]string(nil), r.PracticeQuestions...)
	}
	return r
}
