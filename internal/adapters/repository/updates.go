package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
)

// Update is one intern mutation. The set is closed: only the constructors in
// this package produce values.
type Update interface {
	apply(in model.Intern, now time.Time) (model.Intern, bool, error)
	name() string
}

type assignMentor struct{ mentorID string }

type reassignMentor struct{ mentorID string }

type replaceSkills struct{ skills []string }

// AssignMentor moves an Unassigned intern to Assigned(mentorID). Repeating
// it with the same mentor is a no-op; a different mentor yields
// ErrAlreadyAssigned.
func AssignMentor(mentorID string) Update { return assignMentor{mentorID: strings.TrimSpace(mentorID)} }

// ReassignMentor sets the mentor regardless of the current state.
func ReassignMentor(mentorID string) Update {
	return reassignMentor{mentorID: strings.TrimSpace(mentorID)}
}

// ReplaceSkills overwrites the intern's skill list.
func ReplaceSkills(skills []string) Update {
	return replaceSkills{skills: append([]string{}, skills...)}
}

func (u assignMentor) name() string   { return "assign_mentor" }
func (u reassignMentor) name() string { return "reassign_mentor" }
func (u replaceSkills) name() string  { return "replace_skills" }

func (u assignMentor) apply(in model.Intern, now time.Time) (model.Intern, bool, error) {
	if u.mentorID == "" {
		return in, false, fmt.Errorf("%w: empty mentor id", ErrInvalidUpdate)
	}
	if current, ok := in.Assignment.MentorID(); ok {
		if current == u.mentorID {
			return in, false, nil
		}
		return in, false, fmt.Errorf("%w: intern %s has mentor %s", ErrAlreadyAssigned, in.ID, current)
	}
	in.Assignment = model.AssignedTo(u.mentorID)
	in.UpdatedAt = now
	return in, true, nil
}

func (u reassignMentor) apply(in model.Intern, now time.Time) (model.Intern, bool, error) {
	if u.mentorID == "" {
		return in, false, fmt.Errorf("%w: empty mentor id", ErrInvalidUpdate)
	}
	if current, ok := in.Assignment.MentorID(); ok && current == u.mentorID {
		return in, false, nil
	}
	in.Assignment = model.AssignedTo(u.mentorID)
	in.UpdatedAt = now
	return in, true, nil
}

func (u replaceSkills) apply(in model.Intern, now time.Time) (model.Intern, bool, error) {
	in.Skills = append([]string{}, u.skills...)
	in.UpdatedAt = now
	return in, true, nil
}

// applyUpdate is shared by every Store implementation.
func applyUpdate(in model.Intern, u Update, now time.Time) (model.Intern, bool, error) {
	if u == nil {
		return in, false, fmt.Errorf("%w: nil update", ErrInvalidUpdate)
	}
	return u.apply(in, now)
}

// prepareIntern validates a new intern and stamps the store-owned fields.
func prepareIntern(in model.Intern, id string, now time.Time) (model.Intern, error) {
	in.Email = model.NormalizeEmail(in.Email)
	if in.Email == "" {
		return model.Intern{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	in.ID = id
	in.Assignment = model.Unassigned()
	in.Skills = append([]string{}, in.Skills...)
	in.SchemaVersion = model.SchemaVersion
	in.CreatedAt = now
	in.UpdatedAt = now
	return in, nil
}

func prepareMentor(m model.Mentor, id string, now time.Time) (model.Mentor, error) {
	m.ID = strings.TrimSpace(m.ID)
	if m.ID == "" {
		m.ID = id
	}
	m.Email = model.NormalizeEmail(m.Email)
	if strings.TrimSpace(m.Name) == "" {
		return model.Mentor{}, fmt.Errorf("%w: mentor name is required", ErrValidation)
	}
	m.Skills = append([]string{}, m.Skills...)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	return m, nil
}
