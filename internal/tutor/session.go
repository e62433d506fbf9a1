// Package tutor composes tutoring prompts from a student profile and the
// interaction history, and records each completed interaction.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/tutor/internal/extract"
	"github.com/abhisek/tutor/internal/history"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/profile"
)

// Purpose labels attached to generation calls for the audit log.
const (
	PurposeExplain  = "explain"
	PurposeEvaluate = "evaluate"
	PurposeExercise = "exercise"
)

// DefaultExerciseType is used when no exercise type is given.
const DefaultExerciseType = "problem_solving"

// Explanation is the result of ExplainConcept.
type Explanation struct {
	Text              string   `json:"explanation"`
	PracticeQuestions []string `json:"practice_questions"`
}

// Session is one student's tutoring context. It owns the student profile
// and the interaction log. Methods are safe for concurrent use; each
// operation makes exactly one generation call with no lock held.
type Session struct {
	ID string

	provider  llm.Provider
	cfg       Config
	extractor extract.Extractor
	logger    *log.Logger
	now       func() time.Time

	mu      sync.RWMutex
	profile profile.Profile

	history *history.Log
}

// Option configures a Session.
type Option func(*Session)

// WithExtractor overrides the extractor named in Config.
func WithExtractor(e extract.Extractor) Option {
	return func(s *Session) { s.extractor = e }
}

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock sets the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithProfile sets the initial student profile.
func WithProfile(p profile.Profile) Option {
	return func(s *Session) { s.profile = p.Clone() }
}

// New creates a Session that generates text through provider.
func New(provider llm.Provider, cfg Config, opts ...Option) (*Session, error) {
	if provider == nil {
		return nil, errors.New("tutor: provider is required")
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = defaultHistoryWindow
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		ID:       uuid.NewString(),
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
		history:  history.NewLog(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.extractor == nil {
		e, err := extract.ByName(cfg.Extractor)
		if err != nil {
			return nil, fmt.Errorf("tutor: %w", err)
		}
		s.extractor = e
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.logger = s.logger.With("session", s.ID)

	return s, nil
}

// SetProfile replaces the student profile. Nothing is merged or validated.
func (s *Session) SetProfile(p profile.Profile) {
	p = p.Clone()
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	s.logger.Debug("profile replaced", "empty", p.IsZero())
}

// Profile returns a copy of the current student profile.
func (s *Session) Profile() profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// History returns a copy of every recorded interaction, oldest first.
func (s *Session) History() []history.Record {
	return s.history.Records()
}

// HistoryFor returns the interactions for subject. A non-empty concept
// narrows the result to exact subject and concept matches.
func (s *Session) HistoryFor(subject, concept string) []history.Record {
	if concept == "" {
		return s.history.BySubject(subject)
	}
	return s.history.BySubjectConcept(subject, concept)
}

// ExplainConcept asks for an explanation of concept adapted to the student
// and extracts its practice questions. The explanation text itself is not
// kept in the history.
func (s *Session) ExplainConcept(ctx context.Context, subject, concept string, difficultyLevel int) (*Explanation, error) {
	recent := history.Last(s.history.BySubject(subject), s.cfg.HistoryWindow)
	prompt := buildExplainPrompt(subject, concept, difficultyLevel, s.Profile(), recent)

	text, err := s.generate(ctx, OpExplainConcept, PurposeExplain, prompt)
	if err != nil {
		return nil, err
	}

	questions := s.extractor.Extract(text)
	if questions == nil {
		questions = []string{}
	}
	s.history.Append(history.Record{
		Timestamp:         s.now(),
		Subject:           subject,
		Concept:           concept,
		Kind:              history.KindConceptExplanation,
		DifficultyLevel:   difficultyLevel,
		PracticeQuestions: questions,
	})

	s.logger.Info("concept explained",
		"subject", subject, "concept", concept,
		"difficulty", difficultyLevel, "questions", len(questions))

	return &Explanation{Text: text, PracticeQuestions: questions}, nil
}

// EvaluateAnswer asks for feedback on a student's answer to question.
func (s *Session) EvaluateAnswer(ctx context.Context, question, studentAnswer, subject string) (string, error) {
	prompt := buildEvaluatePrompt(question, studentAnswer, subject)

	evaluation, err := s.generate(ctx, OpEvaluateAnswer, PurposeEvaluate, prompt)
	if err != nil {
		return "", err
	}

	s.history.Append(history.Record{
		Timestamp:     s.now(),
		Subject:       subject,
		Kind:          history.KindAnswerEvaluation,
		Question:      question,
		StudentAnswer: studentAnswer,
		Evaluation:    evaluation,
	})

	s.logger.Info("answer evaluated", "subject", subject)
	return evaluation, nil
}

// GeneratePersonalizedExercise asks for an exercise of the given type. An
// empty exerciseType selects DefaultExerciseType.
func (s *Session) GeneratePersonalizedExercise(ctx context.Context, subject, concept string, difficultyLevel int, exerciseType string) (string, error) {
	if exerciseType == "" {
		exerciseType = DefaultExerciseType
	}

	prior := len(s.history.BySubjectConcept(subject, concept))
	prompt := buildExercisePrompt(subject, concept, difficultyLevel, exerciseType, s.Profile(), prior)

	exercise, err := s.generate(ctx, OpGenerateExercise, PurposeExercise, prompt)
	if err != nil {
		return "", err
	}

	s.history.Append(history.Record{
		Timestamp:       s.now(),
		Subject:         subject,
		Concept:         concept,
		Kind:            history.KindPersonalizedExercise,
		DifficultyLevel: difficultyLevel,
		ExerciseType:    exerciseType,
		ExerciseContent: exercise,
	})

	s.logger.Info("exercise generated",
		"subject", subject, "concept", concept,
		"type", exerciseType, "prior_interactions", prior)

	return exercise, nil
}

// generate makes the single generation call for an operation.
func (s *Session) generate(ctx context.Context, op, purpose, prompt string) (string, error) {
	ctx = llm.WithSession(llm.WithPurpose(ctx, purpose), s.ID)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, llm.Prompt(prompt, s.cfg.Temperature, s.cfg.MaxTokens))
	if err == nil && resp == nil {
		err = &llm.ErrInvalidResponse{Provider: s.provider.ModelID(), Err: errors.New("empty response")}
	}
	if err != nil {
		// Surface the deadline even when the provider wrapped it away.
		if cerr := ctx.Err(); cerr != nil && !errors.Is(err, cerr) {
			err = fmt.Errorf("%w: %w", cerr, err)
		}
		s.logger.Warn("generation failed", "op", op, "err", err)
		return "", &GenerationError{Op: op, Err: err}
	}

	s.logger.Debug("generation complete",
		"op", op, "model", resp.Model,
		"tokens", resp.Usage.TotalTokens,
		"latency", time.Since(start).Round(time.Millisecond))

	return resp.Text, nil
}
