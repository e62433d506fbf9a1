package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/abhisek/tutor/internal/history"
	"github.com/abhisek/tutor/internal/profile"
	"github.com/abhisek/tutor/internal/tutor"
)

const maxBodyBytes = 1 << 20

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Handler serves the session endpoints.
type Handler struct {
	registry *Registry
	logger   *log.Logger
}

// NewHandler creates a Handler over registry.
func NewHandler(registry *Registry, logger *log.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// RegisterRoutes registers the session routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.ListSessions)
		r.Post("/", h.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.PutProfile)
			r.Post("/explain", h.Explain)
			r.Post("/evaluate", h.Evaluate)
			r.Post("/exercise", h.Exercise)
			r.Get("/history", h.History)
		})
	})
}

type sessionResponse struct {
	ID           string          `json:"id"`
	Profile      profile.Profile `json:"profile"`
	Interactions int             `json:"interactions"`
}

type explainRequest struct {
	Subject         string `json:"subject"`
	Concept         string `json:"concept"`
	DifficultyLevel int    `json:"difficulty_level"`
}

type evaluateRequest struct {
	Question      string `json:"question"`
	StudentAnswer string `json:"student_answer"`
	Subject       string `json:"subject"`
}

type exerciseRequest struct {
	Subject         string `json:"subject"`
	Concept         string `json:"concept"`
	DifficultyLevel int    `json:"difficulty_level"`
	ExerciseType    string `json:"exercise_type"`
}

// ListSessions returns the IDs of all live sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string][]string{"sessions": h.registry.IDs()})
}

// CreateSession starts a session. The body, when present, is the initial
// student profile.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if err := decode(w, r, &p); err != nil && !errors.Is(err, io.EOF) {
		Error(w, http.StatusBadRequest, "invalid profile: "+err.Error())
		return
	}

	s, err := h.registry.Create(p)
	if err != nil {
		h.logger.Error("create session", "err", err)
		Error(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.logger.Info("session created", "session", s.ID)
	JSON(w, http.StatusCreated, sessionResponse{ID: s.ID, Profile: s.Profile()})
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, sessionResponse{
		ID:           s.ID,
		Profile:      s.Profile(),
		Interactions: len(s.History()),
	})
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.registry.Delete(id) {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	h.logger.Info("session deleted", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, s.Profile())
}

// PutProfile replaces the session's profile with the request body.
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var p profile.Profile
	if err := decode(w, r, &p); err != nil {
		Error(w, http.StatusBadRequest, "invalid profile: "+err.Error())
		return
	}
	s.SetProfile(p)
	JSON(w, http.StatusOK, s.Profile())
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req explainRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Subject == "" || req.Concept == "" {
		Error(w, http.StatusBadRequest, "subject and concept are required")
		return
	}

	exp, err := s.ExplainConcept(r.Context(), req.Subject, req.Concept, req.DifficultyLevel)
	if err != nil {
		h.generationFailed(w, err)
		return
	}
	JSON(w, http.StatusOK, exp)
}

func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req evaluateRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Subject == "" || req.Question == "" {
		Error(w, http.StatusBadRequest, "subject and question are required")
		return
	}

	evaluation, err := s.EvaluateAnswer(r.Context(), req.Question, req.StudentAnswer, req.Subject)
	if err != nil {
		h.generationFailed(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"evaluation": evaluation})
}

func (h *Handler) Exercise(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req exerciseRequest
	if err := decode(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Subject == "" || req.Concept == "" {
		Error(w, http.StatusBadRequest, "subject and concept are required")
		return
	}

	exercise, err := s.GeneratePersonalizedExercise(r.Context(), req.Subject, req.Concept, req.DifficultyLevel, req.ExerciseType)
	if err != nil {
		h.generationFailed(w, err)
		return
	}
	exerciseType := req.ExerciseType
	if exerciseType == "" {
		exerciseType = tutor.DefaultExerciseType
	}
	JSON(w, http.StatusOK, map[string]string{"exercise": exercise, "exercise_type": exerciseType})
}

// History returns the session's records, optionally narrowed by the
// subject and concept query parameters.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	subject := r.URL.Query().Get("subject")
	concept := r.URL.Query().Get("concept")

	var records []history.Record
	if subject == "" {
		records = s.History()
	} else {
		records = s.HistoryFor(subject, concept)
	}
	JSON(w, http.StatusOK, map[string][]history.Record{"records": records})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*tutor.Session, bool) {
	s, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		Error(w, http.StatusNotFound, "session not found")
	}
	return s, ok
}

func (h *Handler) generationFailed(w http.ResponseWriter, err error) {
	var genErr *tutor.GenerationError
	switch {
	case errors.As(err, &genErr) && genErr.Timeout():
		h.logger.Warn("generation timed out", "op", genErr.Op)
		Error(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &genErr):
		h.logger.Warn("generation failed", "op", genErr.Op, "err", genErr.Err)
		Error(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("request failed", "err", err)
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
