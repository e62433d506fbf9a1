package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructured_BareJSON(t *testing.T) {
	text := `{"practice_questions": ["What is inertia?", "  Why do seatbelts help?  "]}`

	got := NewStructured(nil).Extract(text)

	assert.Equal(t, []string{"What is inertia?", "Why do seatbelts help?"}, got)
}

func TestStructured_FencedJSON(t *testing.T) {
	text := "Here is the explanation.\n\n```json\n{\"practice_questions\": [\"Compute F for m=2, a=3.\"]}\n```\n"

	got := NewStructured(nil).Extract(text)

	assert.Equal(t, []string{"Compute F for m=2, a=3."}, got)
}

func TestStructured_SchemaMismatchFallsBack(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"wrong item type", `{"practice_questions": [1, 2]}`},
		{"missing key", `{"questions": ["Question 1: What is mass?"]}`},
		{"empty list", `{"practice_questions": []}`},
		{"malformed", "```json\n{\"practice_questions\": [\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			fallback := ExtractorFunc(func(text string) []string {
				seen = text
				return []string{"fallback"}
			})

			got := NewStructured(fallback).Extract(tt.text)

			assert.Equal(t, []string{"fallback"}, got)
			assert.Equal(t, tt.text, seen)
		})
	}
}

func TestStructured_DefaultFallbackIsHeuristic(t *testing.T) {
	text := "Question 1: What is momentum? Question 2: How is force related to acceleration?"

	assert.Equal(t, Heuristic{}.Extract(text), NewStructured(nil).Extract(text))
}

func TestStructured_NilFallback(t *testing.T) {
	s := &Structured{}
	assert.Empty(t, s.Extract("plain prose without json"))
}

func TestByName(t *testing.T) {
	e, err := ByName("")
	require.NoError(t, err)
	assert.IsType(t, Heuristic{}, e)

	e, err = ByName(NameHeuristic)
	require.NoError(t, err)
	assert.IsType(t, Heuristic{}, e)

	e, err = ByName(NameStructured)
	require.NoError(t, err)
	assert.IsType(t, &Structured{}, e)

	_, err = ByName("regex")
	assert.Error(t, err)
}
