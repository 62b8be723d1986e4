// Package repository defines the intern/mentor record store and its
// memory, SQLite and Postgres implementations.
package repository

import (
	"context"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
)

// Store provides read/write access to intern and mentor records.
type Store interface {
	// AddIntern persists a new intern with a fresh id in the Unassigned state.
	// Returns ErrDuplicateEmail if the email is already registered.
	AddIntern(ctx context.Context, in model.Intern) (model.Intern, error)

	// GetInterns returns all interns in creation order.
	GetInterns(ctx context.Context) ([]model.Intern, error)

	// GetIntern returns ErrNotFound if the id is unknown.
	GetIntern(ctx context.Context, id string) (model.Intern, error)

	// FindInternByEmail matches case-insensitively.
	FindInternByEmail(ctx context.Context, email string) (model.Intern, error)

	// UpdateIntern applies one operation from the closed Update set.
	UpdateIntern(ctx context.Context, id string, u Update) (model.Intern, error)

	// AddMentor seeds a mentor. An empty id is replaced by a fresh uuid.
	AddMentor(ctx context.Context, m model.Mentor) (model.Mentor, error)

	// GetMentors returns all mentors in creation order.
	GetMentors(ctx context.Context) ([]model.Mentor, error)

	// GetMentor returns ErrNotFound if the id is unknown.
	GetMentor(ctx context.Context, id string) (model.Mentor, error)

	// Driver names the backing implementation.
	Driver() string

	Close() error
}
