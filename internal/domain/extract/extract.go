// Package extract detects taxonomy skills in free text by deterministic,
// case-insensitive keyword matching.
//
// An entry matches when it is delimited on both sides by a character outside
// [A-Za-z0-9] or by the start/end of the text, so "Java" is found in
// "I know Java." but not in "JavaScript".
package extract

import (
	"regexp"
	"strings"
)

// boundary is any ASCII non-alphanumeric rune.
const boundary = `[^a-zA-Z0-9]`

type rule struct {
	skill string
	re    *regexp.Regexp
}

// Extractor holds one compiled rule per distinct taxonomy entry.
// It is safe for concurrent use.
type Extractor struct {
	rules []rule
}

// New compiles rules for taxonomy. Blank entries are skipped and exact
// duplicates collapse to the first occurrence.
func New(taxonomy []string) *Extractor {
	e := &Extractor{rules: make([]rule, 0, len(taxonomy))}
	seen := make(map[string]struct{}, len(taxonomy))
	for _, skill := range taxonomy {
		if strings.TrimSpace(skill) == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		e.rules = append(e.rules, rule{skill: skill, re: compile(skill)})
	}
	return e
}

func compile(skill string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|` + boundary + `)` + regexp.QuoteMeta(skill) + `(?:` + boundary + `|$)`)
}

// Len returns the number of active rules.
func (e *Extractor) Len() int { return len(e.rules) }

// Extract returns the taxonomy entries present in text, each at most once,
// in taxonomy order and spelled as in the taxonomy. The result is never nil.
func (e *Extractor) Extract(text string) []string {
	found := []string{}
	if text == "" || e == nil {
		return found
	}
	for _, r := range e.rules {
		if r.re.MatchString(text) {
			found = append(found, r.skill)
		}
	}
	return found
}

// Skills is the one-shot form of New(taxonomy).Extract(text).
func Skills(text string, taxonomy []string) []string {
	if text == "" || len(taxonomy) == 0 {
		return []string{}
	}
	return New(taxonomy).Extract(text)
}

// Canonical maps free-form skill names onto taxonomy spelling using
// case-insensitive equality. Unknown names are dropped.
func Canonical(names []string, taxonomy []string) []string {
	byLower := make(map[string]string, len(taxonomy))
	for _, s := range taxonomy {
		k := strings.ToLower(strings.TrimSpace(s))
		if k == "" {
			continue
		}
		if _, ok := byLower[k]; !ok {
			byLower[k] = s
		}
	}
	out := []string{}
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		canon, ok := byLower[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			continue
		}
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		out = append(out, canon)
	}
	return out
}
