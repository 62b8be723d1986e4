package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// AssignmentHandler handles mentor selection.
type AssignmentHandler struct {
	deps AssignmentDependencies
	log  logger.Logger
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(deps AssignmentDependencies, l logger.Logger) *AssignmentHandler {
	return &AssignmentHandler{deps: deps, log: l}
}

// assignmentRequest mirrors the OpenAPI schema for POST /assignments.
type assignmentRequest struct {
	Email    string `json:"email"`
	MentorID string `json:"mentor_id"`
}

func (a assignmentRequest) validate() error {
	switch {
	case strings.TrimSpace(a.Email) == "":
		return errors.New("missing email")
	case strings.TrimSpace(a.MentorID) == "":
		return errors.New("missing mentor_id")
	}
	return nil
}

// HandleAssign handles POST /assignments.
func (h *AssignmentHandler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	const op = "api.assign"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req assignmentRequest
	if err := decodeJSON(w, r, op, &req); err != nil {
		writeFailure(w, err)
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	in, err := h.deps.OnMentorChosen(r.Context(), req.Email, req.MentorID)
	if err != nil {
		h.log.Warn(r.Context(), "assignment failed",
			logger.String("email", req.Email),
			logger.String("mentor_id", req.MentorID),
			logger.Error(err))
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, in)
}
