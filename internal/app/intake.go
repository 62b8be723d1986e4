package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/mq/notify"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/repository"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/extract"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/scoring"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/async"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// DepartmentOther selects the free-text OtherDepartment field.
const DepartmentOther = "Other"

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// IntakeForm is the administrator's intake submission.
type IntakeForm struct {
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	PhoneNumber     string         `json:"phoneNumber,omitempty"`
	University      string         `json:"university"`
	Department      string         `json:"department"`
	OtherDepartment string         `json:"otherDepartment,omitempty"`
	StartDate       string         `json:"startDate"`
	Duration        model.Duration `json:"duration"`
	// Skills are used only when no résumé text accompanies the form.
	Skills []string `json:"skills,omitempty"`
}

// Normalize validates f and returns the intern record it describes, with the
// department resolved and the end date computed. Problems are reported
// together, wrapping ErrInvalidIntake.
func (f IntakeForm) Normalize() (model.Intern, error) {
	var problems []string
	in := model.Intern{
		Name:        strings.TrimSpace(f.Name),
		Email:       model.NormalizeEmail(f.Email),
		PhoneNumber: strings.TrimSpace(f.PhoneNumber),
		University:  strings.TrimSpace(f.University),
		Department:  strings.TrimSpace(f.Department),
		StartDate:   strings.TrimSpace(f.StartDate),
		Duration:    model.Duration(strings.TrimSpace(string(f.Duration))),
	}

	if in.Name == "" {
		problems = append(problems, "name is required")
	}
	if in.Email == "" {
		problems = append(problems, "email is required")
	} else if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		problems = append(problems, "email is malformed")
	}
	if in.PhoneNumber != "" && !phonePattern.MatchString(in.PhoneNumber) {
		problems = append(problems, "phone number must be 10 digits")
	}
	if in.University == "" {
		problems = append(problems, "university is required")
	}
	if in.Department == DepartmentOther {
		in.Department = strings.TrimSpace(f.OtherDepartment)
		if in.Department == "" {
			problems = append(problems, "other department must be specified")
		}
	} else if in.Department == "" {
		problems = append(problems, "department is required")
	}
	if !in.Duration.Valid() {
		problems = append(problems, fmt.Sprintf("duration %q is not one of 4w, 6w, 8w, 6m", in.Duration))
	} else if end, err := in.Duration.EndDateString(in.StartDate); err != nil {
		problems = append(problems, "start date must be YYYY-MM-DD")
	} else {
		in.EndDate = end
	}

	if len(problems) > 0 {
		return model.Intern{}, fmt.Errorf("%w: %s", ErrInvalidIntake, strings.Join(problems, "; "))
	}
	return in, nil
}

// ExtractSkills returns the taxonomy skills found in text.
func (s *Service) ExtractSkills(ctx context.Context, text string) []string {
	skills := s.extractor.Extract(text)
	metrics.RecordSkillsExtracted(len(skills))
	s.logger.Debug(ctx, "skills extracted", logger.Int("count", len(skills)))
	return skills
}

// ResumeResult is the outcome of a résumé upload.
type ResumeResult struct {
	Skills     []string `json:"skills"`
	Count      int      `json:"count"`
	ArchiveKey string   `json:"archiveKey,omitempty"`
}

// ExtractResume reads an uploaded résumé and extracts its skills. On failure
// the error wraps resume.ErrExtraction and no skills are returned. Archiving
// is best effort.
func (s *Service) ExtractResume(ctx context.Context, u resume.Upload) (ResumeResult, error) {
	text, err := async.Run(ctx, func(ctx context.Context) (string, error) {
		return s.resumes.Extract(ctx, u)
	})
	if err != nil {
		if !errors.Is(err, resume.ErrExtraction) {
			err = fmt.Errorf("%w: %w", resume.ErrExtraction, err)
		}
		s.logger.Warn(ctx, "resume rejected", logger.String("filename", u.Filename), logger.Error(err))
		return ResumeResult{}, err
	}

	skills := s.ExtractSkills(ctx, text)
	res := ResumeResult{Skills: skills, Count: len(skills)}

	if s.archiver != nil {
		key, err := s.archiver.Put(ctx, u.Filename, u.ContentType, u.Data)
		if err != nil {
			s.logger.Warn(ctx, "resume archive skipped", logger.Error(err))
		} else {
			res.ArchiveKey = key
		}
	}
	return res, nil
}

// OnIntakeSubmitted validates the form, stores the intern and returns ranked
// mentor suggestions. Skills come from resumeText; when it is empty the
// form's skills are mapped onto the taxonomy instead.
func (s *Service) OnIntakeSubmitted(ctx context.Context, f IntakeForm, resumeText string) (model.Intern, []scoring.MatchResult, error) {
	in, err := f.Normalize()
	if err != nil {
		metrics.RecordIntakeRejected("invalid_form")
		return model.Intern{}, nil, err
	}

	if strings.TrimSpace(resumeText) != "" {
		in.Skills = s.ExtractSkills(ctx, resumeText)
	} else {
		in.Skills = extract.Canonical(f.Skills, s.taxonomy.AllSkills())
	}

	stored, err := s.store.AddIntern(ctx, in)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			metrics.RecordIntakeRejected("duplicate_email")
		} else {
			metrics.RecordIntakeRejected("store_error")
		}
		return model.Intern{}, nil, fmt.Errorf("add intern: %w", err)
	}
	metrics.RecordInternAdded()

	suggestions, err := s.rank(ctx, stored.Skills)
	if err != nil {
		// The intern is stored; suggestions can be requested again.
		s.logger.Warn(ctx, "suggestions unavailable", logger.String("intern_id", stored.ID), logger.Error(err))
		suggestions = []scoring.MatchResult{}
	}

	s.notify(ctx, notify.KeyInternAdded, stored)
	s.logger.Info(ctx, "intern added",
		logger.String("intern_id", stored.ID),
		logger.Int("skills", len(stored.Skills)),
		logger.Int("suggestions", len(suggestions)))
	return stored, suggestions, nil
}

// RefreshSkills re-extracts an intern's skills from new résumé text.
func (s *Service) RefreshSkills(ctx context.Context, internID, resumeText string) (model.Intern, error) {
	skills := s.ExtractSkills(ctx, resumeText)
	in, err := s.store.UpdateIntern(ctx, internID, repository.ReplaceSkills(skills))
	if err != nil {
		return model.Intern{}, fmt.Errorf("refresh skills: %w", err)
	}
	return in, nil
}

func (s *Service) rank(ctx context.Context, skills []string) ([]scoring.MatchResult, error) {
	mentors, err := s.store.GetMentors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}
	ranked := s.scorer.Rank(mentors, skills)
	metrics.RecordSuggestions(len(ranked))
	return ranked, nil
}
