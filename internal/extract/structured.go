package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const practiceSchemaURL = "schema://practice-questions.json"

const practiceSchema = `{
	"type": "object",
	"properties": {
		"practice_questions": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string", "minLength": 1}
		}
	},
	"required": ["practice_questions"]
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func practiceQuestionsSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(practiceSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(practiceSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(practiceSchemaURL)
	})
	return compiledSchema, compileErr
}

// Structured reads questions from a JSON document of the form
// {"practice_questions": ["..."]}, either bare or inside a ```json fence.
// Text that does not validate is handed to Fallback.
type Structured struct {
	Fallback Extractor
}

// NewStructured returns a Structured extractor. A nil fallback selects
// Heuristic.
func NewStructured(fallback Extractor) *Structured {
	if fallback == nil {
		fallback = Heuristic{}
	}
	return &Structured{Fallback: fallback}
}

func (s *Structured) Extract(text string) []string {
	if qs, err := parsePracticeQuestions(text); err == nil {
		return qs
	}
	if s.Fallback == nil {
		return []string{}
	}
	return s.Fallback.Extract(text)
}

func parsePracticeQuestions(text string) ([]string, error) {
	raw := jsonPayload(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in text")
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := practiceQuestionsSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var parsed struct {
		PracticeQuestions []string `json:"practice_questions"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(parsed.PracticeQuestions))
	for _, q := range parsed.PracticeQuestions {
		out = append(out, strings.TrimSpace(q))
	}
	return out, nil
}

// jsonPayload returns the body of the first ```json fence, or the whole
// text when it looks like a bare object.
func jsonPayload(text string) string {
	const fence = "```"
	if start := strings.Index(text, fence+"json"); start >= 0 {
		body := text[start+len(fence+"json"):]
		if end := strings.Index(body, fence); end >= 0 {
			return strings.TrimSpace(body[:end])
		}
		return ""
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed
	}
	return ""
}
