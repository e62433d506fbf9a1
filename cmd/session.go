package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/logging"
	"github.com/abhisek/tutor/internal/profile"
	"github.com/abhisek/tutor/internal/render"
	"github.com/abhisek/tutor/internal/store"
	"github.com/abhisek/tutor/internal/tutor"
)

// deps bundles what the tutoring commands need. Close releases the store.
type deps struct {
	store    *store.Store
	provider llm.Provider
}

func (d *deps) Close() error {
	return d.store.Close()
}

// buildDeps validates configuration, opens the audit store and builds the
// decorated provider.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	cfg := current.cfg
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, st.EventRepo(),
		logging.Component(current.logger, "llm"))
	if err != nil {
		st.Close()
		return nil, err
	}
	return &deps{store: st, provider: provider}, nil
}

// newSession creates a tutoring session seeded with p.
func newSession(provider llm.Provider, p profile.Profile) (*tutor.Session, error) {
	return tutor.New(provider, current.cfg.Tutor,
		tutor.WithProfile(p),
		tutor.WithLogger(logging.Component(current.logger, "tutor")))
}

// loadProfile reads the --profile file, if any.
func loadProfile(cmd *cobra.Command) (profile.Profile, error) {
	path, _ := cmd.Flags().GetString("profile")
	if path == "" {
		return profile.Profile{}, nil
	}
	return profile.Load(path)
}

func newRenderer(cmd *cobra.Command) (*render.Renderer, error) {
	raw, _ := cmd.Flags().GetBool("raw")
	return render.New(cmd.OutOrStdout(), render.Options{Raw: raw})
}

// startSession wires everything a one-shot tutoring command needs.
func startSession(cmd *cobra.Command) (*tutor.Session, *render.Renderer, *deps, error) {
	p, err := loadProfile(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	r, err := newRenderer(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	d, err := buildDeps(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	s, err := newSession(d.provider, p)
	if err != nil {
		d.Close()
		return nil, nil, nil, err
	}
	return s, r, d, nil
}
