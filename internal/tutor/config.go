package tutor

import (
	"fmt"
	"time"

	"github.com/abhisek/tutor/internal/extract"
)

// Config controls generation parameters for a Session.
type Config struct {
	// Temperature is passed to every generation call. It must be positive:
	// adapters treat zero as "provider default", which for OpenAI is 1.0.
	Temperature float64 `mapstructure:"temperature"`

	// MaxTokens is the token budget for each reply. Zero leaves the
	// provider default.
	MaxTokens int `mapstructure:"max_tokens"`

	// HistoryWindow is how many same-subject records are quoted in an
	// explanation prompt.
	HistoryWindow int `mapstructure:"history_window"`

	// Timeout bounds each generation call. Zero disables the deadline.
	Timeout time.Duration `mapstructure:"timeout"`

	// Extractor names the question extractor ("heuristic" or "structured").
	Extractor string `mapstructure:"extractor"`
}

const (
	defaultHistoryWindow = 3
	maxTemperature       = 2.0
)

// DefaultConfig returns the recommended session settings.
func DefaultConfig() Config {
	return Config{
		Temperature:   0.1,
		MaxTokens:     2048,
		HistoryWindow: defaultHistoryWindow,
		Timeout:       60 * time.Second,
		Extractor:     extract.NameHeuristic,
	}
}

// Validate reports settings no session can run with.
func (c Config) Validate() error {
	if c.Temperature <= 0 || c.Temperature > maxTemperature {
		return fmt.Errorf("tutor.temperature must be in (0, %g], got %g", maxTemperature, c.Temperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("tutor.max_tokens must not be negative, got %d", c.MaxTokens)
	}
	if _, err := extract.ByName(c.Extractor); err != nil {
		return err
	}
	return nil
}
