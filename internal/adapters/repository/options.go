package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// Option applies a configuration option to a store.
type Option func(*settings)

type settings struct {
	log   logger.Logger
	now   func() time.Time
	newID func() string
}

func defaultSettings() settings {
	return settings{
		log:   logger.Nop(),
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID: uuid.NewString,
	}
}

func buildSettings(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the timestamp source. Postgres keeps microsecond
// precision, so clocks should not produce finer values.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides uuid generation for new records.
func WithIDGenerator(gen func() string) Option {
	return func(s *settings) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// observe records the latency of one store operation.
func observe(driver, op string, start time.Time) {
	metrics.RecordStoreLatency(driver, op, float64(time.Since(start).Microseconds())/1000)
}

// publishCounts refreshes the record gauges from a full intern listing.
func publishCounts(interns []model.Intern, mentors int) {
	unassigned, assigned := 0, 0
	for _, in := range interns {
		if in.Assignment.IsAssigned() {
			assigned++
		} else {
			unassigned++
		}
	}
	metrics.UpdateStoreInterns(unassigned, assigned)
	metrics.UpdateStoreMentors(mentors)
}
