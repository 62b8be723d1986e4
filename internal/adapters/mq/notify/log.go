package notify

import (
	"context"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct {
	log logger.Logger
}

var _ Publisher = (*LogPublisher)(nil)

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(l logger.Logger) *LogPublisher {
	if l == nil {
		l = logger.Nop()
	}
	return &LogPublisher{log: l.Named("notify")}
}

// Publish implements Publisher.
func (p *LogPublisher) Publish(ctx context.Context, routingKey string, e Event) error {
	p.log.Info(ctx, "notification",
		logger.String("routing_key", routingKey),
		logger.String("intern_id", e.InternID),
		logger.String("mentor_id", e.MentorID))
	metrics.RecordNotification(routingKey, "logged")
	return nil
}

// Close implements Publisher.
func (p *LogPublisher) Close() error { return nil }
