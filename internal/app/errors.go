package service

import "errors"

// Sentinel kinds for workflow errors. Store, extraction and network kinds
// come from repository.ErrValidation/ErrNotFound, resume.ErrExtraction and
// colleges.ErrNetwork.
var (
	ErrInvalidIntake    = errors.New("invalid intake form")
	ErrReassignDisabled = errors.New("mentor reassignment is disabled")
)
