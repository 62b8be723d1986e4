// Package scoring rates mentors by how many of their declared skills an
// intern has.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
)

// Default scoring configuration constants.
const (
	defaultMinScore = 1
	maxScoreValue   = 100
)

// MatchResult pairs a mentor with its score. It is derived and never persisted.
type MatchResult struct {
	Mentor model.Mentor `json:"mentor"`
	Score  int          `json:"score"`
}

// Score returns round(100 × matched / len(mentorSkills)), where a mentor
// skill is matched when the intern has it, compared case-insensitively.
// Mentor skills are counted as listed. An empty mentor list scores 0.
func Score(mentorSkills, internSkills []string) int {
	if len(mentorSkills) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(internSkills))
	for _, s := range internSkills {
		have[strings.ToLower(s)] = struct{}{}
	}
	matched := 0
	for _, s := range mentorSkills {
		if _, ok := have[strings.ToLower(s)]; ok {
			matched++
		}
	}
	score := int(math.Round(float64(matched) / float64(len(mentorSkills)) * maxScoreValue))
	return max(0, min(maxScoreValue, score))
}

// RankMentors scores every mentor, drops zero scores and sorts the rest by
// score descending. Equal scores keep input order.
func RankMentors(mentors []model.Mentor, internSkills []string) []MatchResult {
	return NewScorer().Rank(mentors, internSkills)
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithMinScore drops results scoring below n. Values below 1 are raised to
// 1 so zero scores are never suggested.
func WithMinScore(n int) Option {
	return func(s *Scorer) {
		s.minScore = max(defaultMinScore, n)
	}
}

// WithLimit caps the number of results; 0 means unlimited.
func WithLimit(n int) Option {
	return func(s *Scorer) {
		if n >= 0 {
			s.limit = n
		}
	}
}

// Scorer ranks mentors with a configurable floor and result cap.
type Scorer struct {
	minScore int
	limit    int
}

// NewScorer creates a Scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{minScore: defaultMinScore}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rank implements RankMentors with the scorer's floor and limit.
func (s *Scorer) Rank(mentors []model.Mentor, internSkills []string) []MatchResult {
	out := make([]MatchResult, 0, len(mentors))
	for _, m := range mentors {
		score := Score(m.Skills, internSkills)
		if score < s.minScore {
			continue
		}
		out = append(out, MatchResult{Mentor: m, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if s.limit > 0 && len(out) > s.limit {
		out = out[:s.limit]
	}
	return out
}
