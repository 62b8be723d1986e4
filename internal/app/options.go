package service

import (
	"context"
	"time"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/mq/notify"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/repository"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/taxonomy"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// ResumeExtractor turns an upload into text.
type ResumeExtractor interface {
	Extract(ctx context.Context, u resume.Upload) (string, error)
}

// CollegeFetcher supplies university names for the intake form.
type CollegeFetcher interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Archiver keeps a copy of an uploaded résumé and returns its key.
type Archiver interface {
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTaxonomy sets the skill taxonomy and branch list.
func WithTaxonomy(t *taxonomy.Taxonomy) Option {
	return func(s *Service) {
		if t != nil {
			s.taxonomy = t
		}
	}
}

// WithResumeExtractor sets the résumé text collaborator.
func WithResumeExtractor(r ResumeExtractor) Option {
	return func(s *Service) {
		if r != nil {
			s.resumes = r
		}
	}
}

// WithCollegeFetcher sets the college list collaborator.
func WithCollegeFetcher(c CollegeFetcher) Option {
	return func(s *Service) {
		if c != nil {
			s.colleges = c
		}
	}
}

// WithArchiver enables résumé archiving.
func WithArchiver(a Archiver) Option {
	return func(s *Service) {
		s.archiver = a
	}
}

// WithPublisher sets the notification publisher.
func WithPublisher(p notify.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithAllowReassign enables or disables the explicit reassign operation.
func WithAllowReassign(allow bool) Option {
	return func(s *Service) {
		s.allowReassign = allow
	}
}

// WithMaxSuggestions caps ranked suggestions; 0 means unlimited.
func WithMaxSuggestions(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxSuggestions = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for notification timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
