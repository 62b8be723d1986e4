// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SchemaVersion is stamped on every persisted record.
const SchemaVersion = 1

// DateLayout is the wire and storage format for intern dates.
const DateLayout = "2006-01-02"

// Status is the derived assignment state of an intern.
type Status string

const (
	StatusUnassigned Status = "unassigned"
	StatusAssigned   Status = "assigned"
)

// ErrInvalidAssignment is returned when decoding an inconsistent status/mentor pair.
var ErrInvalidAssignment = errors.New("invalid assignment state")

// Assignment links an intern to at most one mentor. The zero value is
// Unassigned; the status is derived from the mentor id, so an assigned
// intern without a mentor cannot be expressed.
type Assignment struct {
	mentorID string
}

// Unassigned returns the initial assignment state.
func Unassigned() Assignment { return Assignment{} }

// AssignedTo returns the assigned state for mentorID. A blank id yields Unassigned.
func AssignedTo(mentorID string) Assignment {
	return Assignment{mentorID: strings.TrimSpace(mentorID)}
}

// Status reports the derived status.
func (a Assignment) Status() Status {
	if a.mentorID == "" {
		return StatusUnassigned
	}
	return StatusAssigned
}

// MentorID returns the mentor id and whether the intern is assigned.
func (a Assignment) MentorID() (string, bool) {
	return a.mentorID, a.mentorID != ""
}

// IsAssigned reports whether a mentor is set.
func (a Assignment) IsAssigned() bool { return a.mentorID != "" }

// ParseAssignment rebuilds an Assignment from its persisted pair, rejecting
// combinations that violate the status/mentor coupling.
func ParseAssignment(status string, mentorID string) (Assignment, error) {
	mentorID = strings.TrimSpace(mentorID)
	switch Status(status) {
	case StatusUnassigned, "":
		if mentorID != "" {
			return Assignment{}, fmt.Errorf("%w: unassigned with mentor %q", ErrInvalidAssignment, mentorID)
		}
		return Unassigned(), nil
	case StatusAssigned:
		if mentorID == "" {
			return Assignment{}, fmt.Errorf("%w: assigned without mentor", ErrInvalidAssignment)
		}
		return AssignedTo(mentorID), nil
	default:
		return Assignment{}, fmt.Errorf("%w: unknown status %q", ErrInvalidAssignment, status)
	}
}

// Intern is a participant in the internship program.
type Intern struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	University  string
	Department  string
	Skills      []string
	StartDate   string
	EndDate     string
	Duration    Duration
	Assignment  Assignment

	SchemaVersion int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Status is shorthand for i.Assignment.Status().
func (i Intern) Status() Status { return i.Assignment.Status() }

// internJSON is the wire shape; status and mentorId are derived on output.
type internJSON struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phoneNumber,omitempty"`
	University    string    `json:"university"`
	Department    string    `json:"department"`
	Skills        []string  `json:"skills"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Duration      Duration  `json:"duration"`
	Status        Status    `json:"status"`
	MentorID      *string   `json:"mentorId"`
	SchemaVersion int       `json:"schemaVersion"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// MarshalJSON implements json.Marshaler.
func (i Intern) MarshalJSON() ([]byte, error) {
	skills := i.Skills
	if skills == nil {
		skills = []string{}
	}
	out := internJSON{
		ID:            i.ID,
		Name:          i.Name,
		Email:         i.Email,
		PhoneNumber:   i.PhoneNumber,
		University:    i.University,
		Department:    i.Department,
		Skills:        skills,
		StartDate:     i.StartDate,
		EndDate:       i.EndDate,
		Duration:      i.Duration,
		Status:        i.Status(),
		SchemaVersion: i.SchemaVersion,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
	if id, ok := i.Assignment.MentorID(); ok {
		out.MentorID = &id
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler and validates the assignment pair.
func (i *Intern) UnmarshalJSON(data []byte) error {
	var in internJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	mentorID := ""
	if in.MentorID != nil {
		mentorID = *in.MentorID
	}
	a, err := ParseAssignment(string(in.Status), mentorID)
	if err != nil {
		return err
	}
	*i = Intern{
		ID:            in.ID,
		Name:          in.Name,
		Email:         in.Email,
		PhoneNumber:   in.PhoneNumber,
		University:    in.University,
		Department:    in.Department,
		Skills:        in.Skills,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Duration:      in.Duration,
		Assignment:    a,
		SchemaVersion: in.SchemaVersion,
		CreatedAt:     in.CreatedAt,
		UpdatedAt:     in.UpdatedAt,
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
