package api

import (
	"errors"
	"net/http"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/colleges"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/repository"
	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/resume"
	service "github.com/aakritiieee7/hrmanagementsystem/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limited")
	ErrTooLarge    = errors.New("request body too large")
)

// OpError tags an error with the handler operation and a sentinel kind so
// callers can match it with errors.Is against either.
type OpError struct {
	Op   string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	switch {
	case e.Err != nil && e.Kind != nil:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause.
func (e *OpError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewKind returns an error of the given kind raised by op.
func NewKind(op string, kind error) error {
	return &OpError{Op: op, Kind: kind}
}

// WrapKind attaches op and kind to err.
func WrapKind(op string, kind, err error) error {
	return &OpError{Op: op, Kind: kind, Err: err}
}

// Wrap attaches op to err, keeping its kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

// classify maps an error to its HTTP status and response code. Order matters:
// ErrDuplicateEmail also matches ErrValidation.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrTooLarge), errors.Is(err, resume.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "too_large"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrInvalidIntake):
		return http.StatusBadRequest, "invalid_intake"
	case errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusConflict, "duplicate_email"
	case errors.Is(err, repository.ErrValidation), errors.Is(err, repository.ErrInvalidUpdate):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, repository.ErrAlreadyAssigned):
		return http.StatusConflict, "already_assigned"
	case errors.Is(err, service.ErrReassignDisabled):
		return http.StatusForbidden, "reassign_disabled"
	case errors.Is(err, resume.ErrExtraction):
		return http.StatusUnprocessableEntity, "extraction_error"
	case errors.Is(err, colleges.ErrNetwork):
		return http.StatusBadGateway, "network_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
