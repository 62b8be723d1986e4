// Package service provides the internship workflow that backs the HTTP API
// and the CLI.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/colleges"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/mq/notify"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/repository"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/extract"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/scoring"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/taxonomy"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// Service implements the intake, suggestion and assignment workflow.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	taxonomy  *taxonomy.Taxonomy
	extractor *extract.Extractor
	scorer    *scoring.Scorer

	// Collaborators
	resumes   ResumeExtractor
	colleges  CollegeFetcher
	archiver  Archiver
	publisher notify.Publisher

	// Configuration
	allowReassign  bool
	maxSuggestions int
	now            func() time.Time

	// State
	started   bool
	configErr error

	logger logger.Logger
}

// New constructs a Service. Without options it uses an in-memory store, the
// embedded taxonomy and a logging publisher.
func New(opts ...Option) *Service {
	s := &Service{
		allowReassign: true,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithLogger(s.logger))
	}
	if s.taxonomy == nil {
		s.taxonomy = taxonomy.Default()
	}
	if s.resumes == nil {
		s.resumes = resume.New(resume.WithLogger(s.logger))
	}
	if s.colleges == nil {
		s.colleges = colleges.New("", colleges.WithLogger(s.logger))
	}
	if s.publisher == nil {
		s.publisher = notify.NewLogPublisher(s.logger)
	}
	s.extractor = extract.New(s.taxonomy.AllSkills())
	s.scorer = scoring.NewScorer(scoring.WithLimit(s.maxSuggestions))
	return s
}

// Start validates the taxonomy. A ConfigurationError is reported once and
// the service keeps running; extraction then yields empty sets.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if err := s.taxonomy.Validate(); err != nil {
		s.configErr = err
		if errors.Is(err, taxonomy.ErrEmptyTaxonomy) {
			metrics.RecordConfigurationError("empty_taxonomy")
		}
		if errors.Is(err, taxonomy.ErrEmptyBranches) {
			metrics.RecordConfigurationError("empty_branches")
		}
		s.logger.Error(ctx, "configuration error", logger.Error(err))
	}

	s.started = true
	s.logger.Info(ctx, "internship service started",
		logger.String("store", s.store.Driver()),
		logger.Int("skills", s.extractor.Len()),
		logger.Int("branches", len(s.taxonomy.Branches())),
		logger.Bool("allowReassign", s.allowReassign),
	)
	return nil
}

// Stop closes the store and publisher.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	if err := s.publisher.Close(); err != nil {
		s.logger.Warn(ctx, "publisher close failed", logger.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(ctx, "store close failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(ctx, "internship service stopped")
}

// ConfigurationError returns the error reported at start, if any.
func (s *Service) ConfigurationError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configErr
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	started, configErr := s.started, s.configErr
	s.mu.RUnlock()

	stats := map[string]any{
		"started":        started,
		"store":          s.store.Driver(),
		"taxonomySkills": s.extractor.Len(),
		"branches":       len(s.taxonomy.Branches()),
		"allowReassign":  s.allowReassign,
	}
	if configErr != nil {
		stats["configurationError"] = configErr.Error()
	}

	interns, err := s.store.GetInterns(ctx)
	if err != nil {
		s.logger.Warn(ctx, "stats: list interns failed", logger.Error(err))
		return stats
	}
	assigned := 0
	for _, in := range interns {
		if in.Assignment.IsAssigned() {
			assigned++
		}
	}
	stats["interns"] = len(interns)
	stats["assigned"] = assigned
	stats["unassigned"] = len(interns) - assigned

	if mentors, err := s.store.GetMentors(ctx); err == nil {
		stats["mentors"] = len(mentors)
	}
	return stats
}

func (s *Service) notify(ctx context.Context, key string, in model.Intern) {
	mentorID, _ := in.Assignment.MentorID()
	err := s.publisher.Publish(ctx, key, notify.Event{
		Type:       key,
		InternID:   in.ID,
		Email:      in.Email,
		Name:       in.Name,
		MentorID:   mentorID,
		Skills:     in.Skills,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn(ctx, "notification failed",
			logger.String("routing_key", key),
			logger.String("intern_id", in.ID),
			logger.Error(err))
	}
}
