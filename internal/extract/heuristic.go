package extract

import (
	"regexp"
	"strings"
)

var (
	// numberedLabel matches "Question 1:", "Q2.", "Question. 3" and similar.
	numberedLabel = regexp.MustCompile(`(?:Question|Q)\.?\s*(\d+)[.:]?\s*`)

	// questionSpan matches a run of text on one line ending in '?'.
	questionSpan = regexp.MustCompile(`[^\n?]*\?`)
)

// minFallbackWords is the word count a fallback span must exceed to be
// kept. It filters rhetorical fragments like "Right?".
const minFallbackWords = 5

// Heuristic is the default extractor. It looks for numbered question labels
// first and falls back to sentences that end in a question mark. The result
// is never nil.
type Heuristic struct{}

func (Heuristic) Extract(text string) []string {
	if qs := numbered(text); len(qs) > 0 {
		return qs
	}
	return questionSentences(text)
}

// numbered returns the text following each numbered label up to the next
// label or the end of text. Captures may span lines and may be empty.
func numbered(text string) []string {
	locs := numberedLabel.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	out := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		out = append(out, strings.TrimSpace(text[loc[1]:end]))
	}
	return out
}

func questionSentences(text string) []string {
	out := []string{}
	for _, span := range questionSpan.FindAllString(text, -1) {
		span = strings.TrimSpace(span)
		if len(strings.Fields(span)) > minFallbackWords {
			out = append(out, span)
		}
	}
	return out
}
