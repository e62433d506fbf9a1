package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristic_NumberedQuestions(t *testing.T) {
	text := "Question 1: What is momentum? Question 2: How is force related to acceleration?"

	got := Heuristic{}.Extract(text)

	assert.Equal(t, []string{
		"What is momentum?",
		"How is force related to acceleration?",
	}, got)
}

func TestHeuristic_NumberedLabelVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "short label with period",
			text: "Q1. Define inertia.\nQ2. Give an example of Newton's third law.",
			want: []string{"Define inertia.", "Give an example of Newton's third law."},
		},
		{
			name: "label with dot before number",
			text: "Question. 3 Explain why a heavier cart needs more force.",
			want: []string{"Explain why a heavier cart needs more force."},
		},
		{
			name: "capture spans lines",
			text: "Practice:\nQuestion 1:\nA 2 kg ball accelerates at 3 m/s^2.\nWhat force acts on it?",
			want: []string{"A 2 kg ball accelerates at 3 m/s^2.\nWhat force acts on it?"},
		},
		{
			name: "empty capture is kept",
			text: "Question 1: Question 2: What is mass?",
			want: []string{"", "What is mass?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Heuristic{}.Extract(tt.text))
		})
	}
}

func TestHeuristic_FallbackSentences(t *testing.T) {
	text := "Right? This is a longer question about photosynthesis and energy transfer, isn't it?"

	got := Heuristic{}.Extract(text)

	assert.Equal(t, []string{
		"This is a longer question about photosynthesis and energy transfer, isn't it?",
	}, got)
}

func TestHeuristic_FallbackRequiresMoreThanFiveWords(t *testing.T) {
	// Exactly five words is not enough.
	assert.Empty(t, Heuristic{}.Extract("Can you see it now?"))
	assert.Equal(t,
		[]string{"Can you see it right now?"},
		Heuristic{}.Extract("Can you see it right now?"),
	)
}

func TestHeuristic_FallbackStaysOnOneLine(t *testing.T) {
	text := "Think about this\nwhat happens when two carts with different masses collide?"

	got := Heuristic{}.Extract(text)

	assert.Equal(t, []string{"what happens when two carts with different masses collide?"}, got)
}

func TestHeuristic_NoQuestions(t *testing.T) {
	assert.Empty(t, Heuristic{}.Extract("Force equals mass times acceleration."))
	assert.Empty(t, Heuristic{}.Extract(""))

	qs := Heuristic{}.Extract("No questions here.")
	require.NotNil(t, qs)
	out, err := json.Marshal(qs)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestHeuristic_Idempotent(t *testing.T) {
	inputs := []string{
		"Question 1: What is momentum? Question 2: How is force related to acceleration?",
		"Right? This is a longer question about photosynthesis and energy transfer, isn't it?",
		"No questions here.",
	}
	for _, in := range inputs {
		assert.Equal(t, Heuristic{}.Extract(in), Heuristic{}.Extract(in))
	}
}
