package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// DriverMemory is the non-durable in-process store.
const DriverMemory = "memory"

// MemoryStore keeps records in mutex-guarded maps. Contents are lost on exit.
type MemoryStore struct {
	mu sync.RWMutex

	interns     map[string]model.Intern
	internOrder []string
	byEmail     map[string]string

	mentors     map[string]model.Mentor
	mentorOrder []string

	settings
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		interns:  make(map[string]model.Intern),
		byEmail:  make(map[string]string),
		mentors:  make(map[string]model.Mentor),
		settings: buildSettings(opts),
	}
	s.log = s.log.Named("memory_store")
	return s
}

// Driver implements Store.
func (s *MemoryStore) Driver() string { return DriverMemory }

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

// AddIntern implements Store.
func (s *MemoryStore) AddIntern(ctx context.Context, in model.Intern) (model.Intern, error) {
	defer observe(DriverMemory, "add_intern", time.Now())
	rec, err := prepareIntern(in, s.newID(), s.now())
	if err != nil {
		return model.Intern{}, err
	}

	s.mu.Lock()
	if _, exists := s.byEmail[rec.Email]; exists {
		s.mu.Unlock()
		return model.Intern{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, rec.Email)
	}
	s.interns[rec.ID] = rec
	s.internOrder = append(s.internOrder, rec.ID)
	s.byEmail[rec.Email] = rec.ID
	s.mu.Unlock()

	s.log.Debug(ctx, "intern stored", logger.String("intern_id", rec.ID))
	s.refreshGauges()
	return cloneIntern(rec), nil
}

// GetInterns implements Store.
func (s *MemoryStore) GetInterns(ctx context.Context) ([]model.Intern, error) {
	defer observe(DriverMemory, "get_interns", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Intern, 0, len(s.internOrder))
	for _, id := range s.internOrder {
		out = append(out, cloneIntern(s.interns[id]))
	}
	return out, nil
}

// GetIntern implements Store.
func (s *MemoryStore) GetIntern(ctx context.Context, id string) (model.Intern, error) {
	defer observe(DriverMemory, "get_intern", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.interns[id]
	if !ok {
		return model.Intern{}, fmt.Errorf("%w: intern %s", ErrNotFound, id)
	}
	return cloneIntern(in), nil
}

// FindInternByEmail implements Store.
func (s *MemoryStore) FindInternByEmail(ctx context.Context, email string) (model.Intern, error) {
	defer observe(DriverMemory, "find_intern_by_email", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[model.NormalizeEmail(email)]
	if !ok {
		return model.Intern{}, fmt.Errorf("%w: intern with email %s", ErrNotFound, email)
	}
	return cloneIntern(s.interns[id]), nil
}

// UpdateIntern implements Store.
func (s *MemoryStore) UpdateIntern(ctx context.Context, id string, u Update) (model.Intern, error) {
	defer observe(DriverMemory, "update_intern", time.Now())
	s.mu.Lock()
	in, ok := s.interns[id]
	if !ok {
		s.mu.Unlock()
		return model.Intern{}, fmt.Errorf("%w: intern %s", ErrNotFound, id)
	}
	next, changed, err := applyUpdate(in, u, s.now())
	if err != nil {
		s.mu.Unlock()
		return model.Intern{}, err
	}
	if changed {
		s.interns[id] = next
	}
	s.mu.Unlock()

	if changed {
		s.log.Debug(ctx, "intern updated", logger.String("intern_id", id), logger.String("update", u.name()))
		s.refreshGauges()
	}
	return cloneIntern(next), nil
}

// AddMentor implements Store.
func (s *MemoryStore) AddMentor(ctx context.Context, m model.Mentor) (model.Mentor, error) {
	defer observe(DriverMemory, "add_mentor", time.Now())
	rec, err := prepareMentor(m, s.newID(), s.now())
	if err != nil {
		return model.Mentor{}, err
	}

	s.mu.Lock()
	if _, exists := s.mentors[rec.ID]; exists {
		s.mu.Unlock()
		return model.Mentor{}, fmt.Errorf("%w: mentor id %s already exists", ErrValidation, rec.ID)
	}
	if rec.Email != "" {
		for _, other := range s.mentors {
			if other.Email == rec.Email {
				s.mu.Unlock()
				return model.Mentor{}, fmt.Errorf("%w: %s", ErrDuplicateEmail, rec.Email)
			}
		}
	}
	s.mentors[rec.ID] = rec
	s.mentorOrder = append(s.mentorOrder, rec.ID)
	s.mu.Unlock()

	s.refreshGauges()
	return cloneMentor(rec), nil
}

// GetMentors implements Store.
func (s *MemoryStore) GetMentors(ctx context.Context) ([]model.Mentor, error) {
	defer observe(DriverMemory, "get_mentors", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Mentor, 0, len(s.mentorOrder))
	for _, id := range s.mentorOrder {
		out = append(out, cloneMentor(s.mentors[id]))
	}
	return out, nil
}

// GetMentor implements Store.
func (s *MemoryStore) GetMentor(ctx context.Context, id string) (model.Mentor, error) {
	defer observe(DriverMemory, "get_mentor", time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mentors[id]
	if !ok {
		return model.Mentor{}, fmt.Errorf("%w: mentor %s", ErrNotFound, id)
	}
	return cloneMentor(m), nil
}

func (s *MemoryStore) refreshGauges() {
	s.mu.RLock()
	interns := make([]model.Intern, 0, len(s.interns))
	for _, in := range s.interns {
		interns = append(interns, in)
	}
	mentors := len(s.mentors)
	s.mu.RUnlock()
	publishCounts(interns, mentors)
}

func cloneIntern(in model.Intern) model.Intern {
	in.Skills = append([]string{}, in.Skills...)
	return in
}

func cloneMentor(m model.Mentor) model.Mentor {
	m.Skills = append([]string{}, m.Skills...)
	return m
}
