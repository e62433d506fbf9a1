package tutor

import (
	"context"
	"errors"
	"fmt"
)

// Operation names carried by GenerationError.
const (
	OpExplainConcept   = "explain concept"
	OpEvaluateAnswer   = "evaluate answer"
	OpGenerateExercise = "generate exercise"
)

// GenerationError reports that the text generator failed or timed out
// during Op. When it is returned the interaction log is unchanged.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call was cut off by a deadline.
func (e *GenerationError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}
