package api

import (
	"net/http"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// DirectoryHandler serves the lookup lists used by the intake form.
type DirectoryHandler struct {
	deps DirectoryDependencies
	log  logger.Logger
}

// NewDirectoryHandler creates a new directory handler.
func NewDirectoryHandler(deps DirectoryDependencies, l logger.Logger) *DirectoryHandler {
	return &DirectoryHandler{deps: deps, log: l}
}

type collegesResponse struct {
	Colleges []string `json:"colleges"`
}

type branchesResponse struct {
	Branches []string `json:"branches"`
}

type skillsResponse struct {
	Skills []string `json:"skills"`
}

// HandleColleges handles GET /colleges. Upstream failures map to 502 and
// the form falls back to free-text entry.
func (h *DirectoryHandler) HandleColleges(w http.ResponseWriter, r *http.Request) {
	const op = "api.colleges"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	names, err := h.deps.Colleges(r.Context())
	if err != nil {
		h.log.Warn(r.Context(), "college list unavailable", logger.Error(err))
		writeFailure(w, Wrap(op, err))
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, collegesResponse{Colleges: names})
}

// HandleBranches handles GET /branches.
func (h *DirectoryHandler) HandleBranches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	branches := h.deps.Branches()
	if branches == nil {
		branches = []string{}
	}
	writeJSON(w, http.StatusOK, branchesResponse{Branches: branches})
}

// HandleSkills handles GET /skills.
func (h *DirectoryHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	skills := h.deps.Skills()
	if skills == nil {
		skills = []string{}
	}
	writeJSON(w, http.StatusOK, skillsResponse{Skills: skills})
}
