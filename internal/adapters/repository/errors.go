package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrValidation      = errors.New("invalid record")
	ErrDuplicateEmail  = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrAlreadyAssigned = errors.New("intern already assigned to a different mentor")
	ErrInvalidUpdate   = errors.New("invalid intern update")
	ErrUnknownDriver   = errors.New("unknown store driver")
)
