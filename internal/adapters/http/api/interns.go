package api

import (
	"fmt"
	"net/http"
	"strings"

	service "github.com/aakritiieee7/hrmanagementsystem/internal/app"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/scoring"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// InternsHandler handles the /interns routes.
type InternsHandler struct {
	deps InternDependencies
	log  logger.Logger
}

// NewInternsHandler creates a new interns handler.
func NewInternsHandler(deps InternDependencies, l logger.Logger) *InternsHandler {
	return &InternsHandler{deps: deps, log: l}
}

// intakeRequest is the POST /interns body: the form plus optional résumé text
// returned earlier by /resume/extract or pasted by the administrator.
type intakeRequest struct {
	service.IntakeForm
	ResumeText string `json:"resumeText,omitempty"`
}

type intakeResponse struct {
	Intern      model.Intern          `json:"intern"`
	Suggestions []scoring.MatchResult `json:"suggestions"`
}

type internsResponse struct {
	Interns []model.Intern `json:"interns"`
}

type suggestionsResponse struct {
	InternID    string                `json:"internId"`
	Suggestions []scoring.MatchResult `json:"suggestions"`
}

type mentorChoice struct {
	MentorID string `json:"mentor_id"`
}

type refreshSkillsRequest struct {
	ResumeText string `json:"resumeText"`
}

// HandleInterns handles GET /interns and POST /interns.
func (h *InternsHandler) HandleInterns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *InternsHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_intern"

	var req intakeRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}

	in, suggestions, err := h.deps.OnIntakeSubmitted(r.Context(), req.IntakeForm, req.ResumeText)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if suggestions == nil {
		suggestions = []scoring.MatchResult{}
	}
	writeJSON(w, http.StatusCreated, intakeResponse{Intern: in, Suggestions: suggestions})
}

func (h *InternsHandler) list(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_interns"

	status := model.Status(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	switch status {
	case "", model.StatusUnassigned, model.StatusAssigned:
	default:
		writeFailure(w, WrapKind(op, ErrBadRequest, fmt.Errorf("unknown status %q", status)))
		return
	}

	interns, err := h.deps.Interns(r.Context(), status)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if interns == nil {
		interns = []model.Intern{}
	}
	writeJSON(w, http.StatusOK, internsResponse{Interns: interns})
}

// HandleGetIntern handles GET /interns/{id}.
func (h *InternsHandler) HandleGetIntern(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_intern"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	in, err := h.deps.Intern(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// HandleSuggestions handles GET /interns/{id}/suggestions.
func (h *InternsHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	const op = "api.suggestions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := r.PathValue("id")
	suggestions, err := h.deps.Suggestions(r.Context(), id)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	if suggestions == nil {
		suggestions = []scoring.MatchResult{}
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{InternID: id, Suggestions: suggestions})
}

// HandleReassign handles POST /interns/{id}/reassign.
func (h *InternsHandler) HandleReassign(w http.ResponseWriter, r *http.Request) {
	const op = "api.reassign"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req mentorChoice
	if err := decodeJSON(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	if strings.TrimSpace(req.MentorID) == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, fmt.Errorf("missing mentor_id")))
		return
	}

	in, err := h.deps.Reassign(r.Context(), r.PathValue("id"), req.MentorID)
	if err != nil {
		h.log.Warn(r.Context(), "reassign rejected",
			logger.String("intern_id", r.PathValue("id")), logger.Error(err))
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// HandleRefreshSkills handles PUT /interns/{id}/skills, re-extracting skills
// from new résumé text.
func (h *InternsHandler) HandleRefreshSkills(w http.ResponseWriter, r *http.Request) {
	const op = "api.refresh_skills"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}

	var req refreshSkillsRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}

	in, err := h.deps.RefreshSkills(r.Context(), r.PathValue("id"), req.ResumeText)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, in)
}
