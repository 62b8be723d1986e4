package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/mq/notify"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/repository"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/scoring"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// OnMentorChosen assigns the mentor picked from the suggestions to the intern
// registered under internEmail. Choosing the current mentor again succeeds
// without change; choosing a different one fails with
// repository.ErrAlreadyAssigned.
func (s *Service) OnMentorChosen(ctx context.Context, internEmail, mentorID string) (model.Intern, error) {
	in, err := s.store.FindInternByEmail(ctx, internEmail)
	if err != nil {
		metrics.RecordAssignment(outcomeOf(err))
		return model.Intern{}, fmt.Errorf("find intern: %w", err)
	}
	if _, err := s.store.GetMentor(ctx, mentorID); err != nil {
		metrics.RecordAssignment(outcomeOf(err))
		return model.Intern{}, fmt.Errorf("find mentor: %w", err)
	}

	wasAssigned := in.Assignment.IsAssigned()
	updated, err := s.store.UpdateIntern(ctx, in.ID, repository.AssignMentor(mentorID))
	if err != nil {
		metrics.RecordAssignment(outcomeOf(err))
		s.logger.Warn(ctx, "assignment rejected",
			logger.String("intern_id", in.ID),
			logger.String("mentor_id", mentorID),
			logger.Error(err))
		return model.Intern{}, fmt.Errorf("assign mentor: %w", err)
	}

	if wasAssigned {
		metrics.RecordAssignment("unchanged")
		return updated, nil
	}
	metrics.RecordAssignment("assigned")
	s.notify(ctx, notify.KeyInternAssigned, updated)
	s.logger.Info(ctx, "mentor assigned",
		logger.String("intern_id", updated.ID),
		logger.String("mentor_id", mentorID))
	return updated, nil
}

// Reassign moves an intern to another mentor. It is the only way to change
// an existing assignment and can be disabled by configuration.
func (s *Service) Reassign(ctx context.Context, internID, mentorID string) (model.Intern, error) {
	if !s.allowReassign {
		metrics.RecordAssignment("conflict")
		return model.Intern{}, ErrReassignDisabled
	}
	if _, err := s.store.GetMentor(ctx, mentorID); err != nil {
		metrics.RecordAssignment(outcomeOf(err))
		return model.Intern{}, fmt.Errorf("find mentor: %w", err)
	}
	before, err := s.store.GetIntern(ctx, internID)
	if err != nil {
		metrics.RecordAssignment(outcomeOf(err))
		return model.Intern{}, fmt.Errorf("find intern: %w", err)
	}
	updated, err := s.store.UpdateIntern(ctx, internID, repository.ReassignMentor(mentorID))
	if err != nil {
		metrics.RecordAssignment(outcomeOf(err))
		return model.Intern{}, fmt.Errorf("reassign mentor: %w", err)
	}

	if prev, _ := before.Assignment.MentorID(); prev == mentorID {
		metrics.RecordAssignment("unchanged")
		return updated, nil
	}
	metrics.RecordAssignment("reassigned")
	s.notify(ctx, notify.KeyInternReassigned, updated)
	s.logger.Info(ctx, "mentor reassigned",
		logger.String("intern_id", updated.ID),
		logger.String("mentor_id", mentorID))
	return updated, nil
}

// Suggestions re-ranks all mentors for a stored intern.
func (s *Service) Suggestions(ctx context.Context, internID string) ([]scoring.MatchResult, error) {
	in, err := s.store.GetIntern(ctx, internID)
	if err != nil {
		return nil, fmt.Errorf("find intern: %w", err)
	}
	return s.rank(ctx, in.Skills)
}

// PendingInterns lists interns still waiting for a mentor.
func (s *Service) PendingInterns(ctx context.Context) ([]model.Intern, error) {
	return s.Interns(ctx, model.StatusUnassigned)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrAlreadyAssigned):
		return "conflict"
	default:
		return "error"
	}
}
