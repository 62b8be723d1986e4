// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	service "github.com/aakritiieee7/hrmanagementsystem/internal/app"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/scoring"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// Dependencies required by HTTP handlers. *service.Service satisfies it.
type Dependencies interface {
	ResumeDependencies
	InternDependencies
	AssignmentDependencies
	MentorDependencies
	DirectoryDependencies
	StatsProvider
}

// ResumeDependencies backs POST /resume/extract.
type ResumeDependencies interface {
	ExtractResume(ctx context.Context, u resume.Upload) (service.ResumeResult, error)
}

// InternDependencies backs the /interns routes.
type InternDependencies interface {
	OnIntakeSubmitted(ctx context.Context, f service.IntakeForm, resumeText string) (model.Intern, []scoring.MatchResult, error)
	Interns(ctx context.Context, status model.Status) ([]model.Intern, error)
	Intern(ctx context.Context, id string) (model.Intern, error)
	Suggestions(ctx context.Context, internID string) ([]scoring.MatchResult, error)
	Reassign(ctx context.Context, internID, mentorID string) (model.Intern, error)
	RefreshSkills(ctx context.Context, internID, resumeText string) (model.Intern, error)
}

// AssignmentDependencies backs POST /assignments.
type AssignmentDependencies interface {
	OnMentorChosen(ctx context.Context, internEmail, mentorID string) (model.Intern, error)
}

// MentorDependencies backs /mentors.
type MentorDependencies interface {
	Mentors(ctx context.Context) ([]model.Mentor, error)
	AddMentor(ctx context.Context, m model.Mentor) (model.Mentor, error)
}

// DirectoryDependencies backs the read-only lookup routes.
type DirectoryDependencies interface {
	Colleges(ctx context.Context) ([]string, error)
	Branches() []string
	Skills() []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	resumeHandler     *ResumeHandler
	internsHandler    *InternsHandler
	assignmentHandler *AssignmentHandler
	mentorsHandler    *MentorsHandler
	directoryHandler  *DirectoryHandler

	intakeLimiter *rate.Limiter
}

// Option configures a Server.
type Option func(*serverConfig)

type serverConfig struct {
	maxResumeBytes int64
	intakeRate     rate.Limit
	intakeBurst    int
	log            logger.Logger
}

// WithMaxResumeBytes caps multipart résumé uploads.
func WithMaxResumeBytes(n int64) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxResumeBytes = n
		}
	}
}

// WithIntakeRate limits POST /interns and POST /resume/extract to perSec
// requests per second with the given burst. perSec <= 0 disables limiting.
func WithIntakeRate(perSec float64, burst int) Option {
	return func(c *serverConfig) {
		if perSec <= 0 {
			c.intakeRate = rate.Inf
			return
		}
		c.intakeRate = rate.Limit(perSec)
		if burst < 1 {
			burst = 1
		}
		c.intakeBurst = burst
	}
}

// WithLogger sets the handler logger.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := serverConfig{
		maxResumeBytes: resume.DefaultMaxBytes,
		intakeRate:     rate.Inf,
		log:            logger.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		resumeHandler:     NewResumeHandler(deps, cfg.maxResumeBytes, cfg.log),
		internsHandler:    NewInternsHandler(deps, cfg.log),
		assignmentHandler: NewAssignmentHandler(deps, cfg.log),
		mentorsHandler:    NewMentorsHandler(deps),
		directoryHandler:  NewDirectoryHandler(deps, cfg.log),
		intakeLimiter:     rate.NewLimiter(cfg.intakeRate, cfg.intakeBurst),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/resume/extract", MetricsMiddleware(
		RateLimit(s.resumeHandler.HandleExtract, s.intakeLimiter), "resume_extract"))

	mux.HandleFunc("/interns", MetricsMiddleware(
		RateLimit(s.internsHandler.HandleInterns, s.intakeLimiter), "interns"))
	mux.HandleFunc("/interns/{id}", MetricsMiddleware(s.internsHandler.HandleGetIntern, "intern"))
	mux.HandleFunc("/interns/{id}/suggestions", MetricsMiddleware(s.internsHandler.HandleSuggestions, "suggestions"))
	mux.HandleFunc("/interns/{id}/reassign", MetricsMiddleware(s.internsHandler.HandleReassign, "reassign"))
	mux.HandleFunc("/interns/{id}/skills", MetricsMiddleware(s.internsHandler.HandleRefreshSkills, "skills_refresh"))

	mux.HandleFunc("/assignments", MetricsMiddleware(s.assignmentHandler.HandleAssign, "assignments"))

	mux.HandleFunc("/mentors", MetricsMiddleware(s.mentorsHandler.HandleMentors, "mentors"))

	mux.HandleFunc("/colleges", MetricsMiddleware(s.directoryHandler.HandleColleges, "colleges"))
	mux.HandleFunc("/branches", MetricsMiddleware(s.directoryHandler.HandleBranches, "branches"))
	mux.HandleFunc("/skills", MetricsMiddleware(s.directoryHandler.HandleSkills, "skills"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure classifies err and writes the matching error response.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// decodeJSON reads a single JSON object from r into v and rejects trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return WrapKind(op, ErrTooLarge, err)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return NewKind(op, ErrBadRequest)
	}
	return nil
}
