// Package extract pulls practice questions out of free-form generated text.
package extract

import "fmt"

// Extractor returns the practice questions found in text, in order of
// appearance. Implementations never fail; an empty result is normal.
type Extractor interface {
	Extract(text string) []string
}

// ExtractorFunc adapts a plain function to the Extractor interface.
type ExtractorFunc func(text string) []string

func (f ExtractorFunc) Extract(text string) []string { return f(text) }

// Names of the built-in extractors, as accepted by ByName.
const (
	NameHeuristic  = "heuristic"
	NameStructured = "structured"
)

// ByName resolves a configured extractor name. The empty name selects the
// heuristic extractor.
func ByName(name string) (Extractor, error) {
	switch name {
	case "", NameHeuristic:
		return Heuristic{}, nil
	case NameStructured:
		return NewStructured(nil), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (valid: %s, %s)", name, NameHeuristic, NameStructured)
	}
}
