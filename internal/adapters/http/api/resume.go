package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// resumeField is the multipart field carrying the uploaded file.
const resumeField = "resume"

// multipartOverhead leaves room for boundaries and other form fields.
const multipartOverhead = 1 << 20

// ResumeHandler handles résumé uploads.
type ResumeHandler struct {
	deps     ResumeDependencies
	maxBytes int64
	log      logger.Logger
}

// NewResumeHandler creates a new résumé handler.
func NewResumeHandler(deps ResumeDependencies, maxBytes int64, l logger.Logger) *ResumeHandler {
	return &ResumeHandler{deps: deps, maxBytes: maxBytes, log: l}
}

// HandleExtract handles POST /resume/extract. The file is read from the
// "resume" multipart field and the extracted skills are returned.
func (h *ResumeHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	const op = "api.resume_extract"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	upload, err := readUpload(w, r, op, h.maxBytes)
	if err != nil {
		writeFailure(w, err)
		return
	}

	res, err := h.deps.ExtractResume(r.Context(), upload)
	if err != nil {
		h.log.Warn(r.Context(), "resume extraction failed",
			logger.String("filename", upload.Filename), logger.Error(err))
		writeFailure(w, Wrap(op, err))
		return
	}
	if res.Skills == nil {
		res.Skills = []string{}
	}
	writeJSON(w, http.StatusOK, res)
}

// readUpload pulls the résumé part out of a multipart request.
func readUpload(w http.ResponseWriter, r *http.Request, op string, maxBytes int64) (resume.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxBytes + multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return resume.Upload{}, WrapKind(op, ErrTooLarge, err)
		}
		return resume.Upload{}, WrapKind(op, ErrBadRequest, err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(resumeField)
	if err != nil {
		return resume.Upload{}, WrapKind(op, ErrBadRequest, fmt.Errorf("missing %q file: %w", resumeField, err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return resume.Upload{}, WrapKind(op, ErrBadRequest, err)
	}
	if int64(len(data)) > maxBytes {
		return resume.Upload{}, Wrap(op, fmt.Errorf("%w: %s exceeds %d bytes", resume.ErrTooLarge, header.Filename, maxBytes))
	}
	return resume.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
