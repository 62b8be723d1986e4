package api

import (
	"net/http"

	"github.com/aakritiieee7/hrmanagementsystem/internal/domain/model"
)

// MentorsHandler handles GET and POST /mentors.
type MentorsHandler struct {
	deps MentorDependencies
}

// NewMentorsHandler creates a new mentors handler.
func NewMentorsHandler(deps MentorDependencies) *MentorsHandler {
	return &MentorsHandler{deps: deps}
}

type mentorsResponse struct {
	Mentors []model.Mentor `json:"mentors"`
}

type mentorRequest struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Skills     []string `json:"skills"`
}

// HandleMentors lists or registers mentors.
func (h *MentorsHandler) HandleMentors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		const op = "api.list_mentors"
		mentors, err := h.deps.Mentors(r.Context())
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		if mentors == nil {
			mentors = []model.Mentor{}
		}
		writeJSON(w, http.StatusOK, mentorsResponse{Mentors: mentors})
	case http.MethodPost:
		const op = "api.post_mentor"
		var req mentorRequest
		if err := decodeJSON(w, r, op, &req); err != nil {
			writeFailure(w, err)
			return
		}
		m, err := h.deps.AddMentor(r.Context(), model.Mentor{
			ID:         req.ID,
			Name:       req.Name,
			Email:      req.Email,
			Department: req.Department,
			Skills:     req.Skills,
		})
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, m)
	default:
		http.NotFound(w, r)
	}
}
