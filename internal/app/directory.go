package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/colleges"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/async"
)

// Colleges fetches the university list. Failures wrap colleges.ErrNetwork
// and leave the caller free to continue with free-text entry.
func (s *Service) Colleges(ctx context.Context) ([]string, error) {
	names, err := async.Run(ctx, s.colleges.Fetch)
	if err != nil {
		if !errors.Is(err, colleges.ErrNetwork) {
			err = fmt.Errorf("%w: %w", colleges.ErrNetwork, err)
		}
		return nil, err
	}
	return names, nil
}

// Branches returns the configured academic branches.
func (s *Service) Branches() []string {
	return s.taxonomy.Branches()
}

// Skills returns the flattened taxonomy.
func (s *Service) Skills() []string {
	return s.taxonomy.AllSkills()
}

// Interns lists interns in creation order, optionally filtered by status.
// An empty status returns all.
func (s *Service) Interns(ctx context.Context, status model.Status) ([]model.Intern, error) {
	all, err := s.store.GetInterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interns: %w", err)
	}
	if status == "" {
		return all, nil
	}
	out := make([]model.Intern, 0, len(all))
	for _, in := range all {
		if in.Status() == status {
			out = append(out, in)
		}
	}
	return out, nil
}

// Intern returns one intern by id.
func (s *Service) Intern(ctx context.Context, id string) (model.Intern, error) {
	return s.store.GetIntern(ctx, id)
}

// InternByEmail looks an intern up by address, case-insensitively.
func (s *Service) InternByEmail(ctx context.Context, email string) (model.Intern, error) {
	return s.store.FindInternByEmail(ctx, email)
}

// Mentors lists mentors in creation order.
func (s *Service) Mentors(ctx context.Context) ([]model.Mentor, error) {
	return s.store.GetMentors(ctx)
}

// AddMentor registers a mentor. Blank skill entries are dropped; the rest
// are kept as listed.
func (s *Service) AddMentor(ctx context.Context, m model.Mentor) (model.Mentor, error) {
	skills := make([]string, 0, len(m.Skills))
	for _, sk := range m.Skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			skills = append(skills, sk)
		}
	}
	m.Skills = skills
	return s.store.AddMentor(ctx, m)
}
