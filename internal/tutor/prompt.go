package tutor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/tutor/internal/history"
	"github.com/abhisek/tutor/internal/profile"
)

const (
	noProfile = "No student profile available"
	noHistory = "No prior learning history for this subject"
)

const explainInstructions = `Explain this concept using the following approach:
1. Start with a simple definition aligned with the student's current knowledge
2. Provide a real-world analogy that connects to the student's interests or experiences
3. Break down the concept into clear, sequential components
4. Explain each component with examples of increasing complexity
5. Connect the concept to previously learned material
6. Include 2-3 practice questions that check understanding

Adapt your explanation to the student's:
- Learning style (if known)
- Prior knowledge in this subject
- Specific areas of interest
- Any learning challenges mentioned in their profile

The explanation should be clear, engaging, and matched to the student's abilities.`

const evaluateInstructions = `Provide a detailed evaluation that includes:
1. Whether the answer is correct, partially correct, or incorrect
2. Specific strengths in the student's understanding
3. Any misconceptions or errors that need addressing
4. The correct answer or solution process (if the student's answer is incorrect)
5. Suggestions for improving understanding
6. A follow-up question that helps deepen understanding

Focus on being constructive and encouraging while giving clear feedback.`

const exerciseInstructions = `Design an exercise that:
1. Targets the core principles of the concept at the appropriate difficulty level
2. Connects to the student's interests or real-world applications if possible
3. Builds on their current understanding
4. Challenges them appropriately without causing frustration
5. Can be completed in 10-15 minutes

Include:
- Clear instructions
- The exercise itself
- A detailed solution or rubric
- Learning objectives for this exercise`

// buildExplainPrompt composes the concept explanation prompt. recent holds
// the already-truncated same-subject history.
func buildExplainPrompt(subject, concept string, difficulty int, p profile.Profile, recent []history.Record) string {
	var b strings.Builder

	b.WriteString("Explain the following educational concept, adapting to the student's profile:\n\n")
	fmt.Fprintf(&b, "SUBJECT: %s\n", subject)
	fmt.Fprintf(&b, "CONCEPT: %s\n", concept)
	fmt.Fprintf(&b, "DIFFICULTY LEVEL: %d (1-5 scale)\n\n", difficulty)

	b.WriteString("STUDENT PROFILE:\n")
	b.WriteString(profileContext(p))
	b.WriteString("\n\nRELEVANT LEARNING HISTORY:\n")
	b.WriteString(historyContext(recent))
	b.WriteString("\n\n")

	b.WriteString(explainInstructions)
	return b.String()
}

func buildEvaluatePrompt(question, answer, subject string) string {
	var b strings.Builder

	b.WriteString("Evaluate this student's answer to a question:\n\n")
	fmt.Fprintf(&b, "SUBJECT: %s\n", subject)
	fmt.Fprintf(&b, "QUESTION: %s\n", question)
	fmt.Fprintf(&b, "STUDENT'S ANSWER: %s\n\n", answer)

	b.WriteString(evaluateInstructions)
	return b.String()
}

// buildExercisePrompt composes the exercise prompt. priorCount is the number
// of records matching both subject and concept.
func buildExercisePrompt(subject, concept string, difficulty int, exerciseType string, p profile.Profile, priorCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a personalized %s exercise for this student:\n\n", exerciseType)
	fmt.Fprintf(&b, "SUBJECT: %s\n", subject)
	fmt.Fprintf(&b, "CONCEPT: %s\n", concept)
	fmt.Fprintf(&b, "DIFFICULTY LEVEL: %d (1-5 scale)\n", difficulty)
	fmt.Fprintf(&b, "EXERCISE TYPE: %s\n\n", exerciseType)

	b.WriteString("STUDENT PROFILE:\n")
	b.WriteString(profileContext(p))
	b.WriteString("\n\nKNOWLEDGE CONTEXT:\n")
	b.WriteString(knowledgeContext(priorCount))
	b.WriteString("\n\n")

	b.WriteString(exerciseInstructions)
	return b.String()
}

func profileContext(p profile.Profile) string {
	if p.IsZero() {
		return noProfile
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		// Extra held something JSON cannot encode; fall back to Go syntax.
		return fmt.Sprintf("%v", p.Map())
	}
	return string(data)
}

func historyContext(recent []history.Record) string {
	if len(recent) == 0 {
		return noHistory
	}
	data, err := json.MarshalIndent(recent, "", "  ")
	if err != nil {
		return noHistory
	}
	return string(data)
}

func knowledgeContext(priorCount int) string {
	if priorCount == 0 {
		return "Student has no recorded history with this specific concept."
	}
	return fmt.Sprintf("Student has %d prior interactions with this concept.", priorCount)
}
