package taxonomy

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrLoad          = errors.New("load taxonomy failed")

	ErrEmptyTaxonomy = fmt.Errorf("%w: skill taxonomy is empty", ErrConfiguration)
	ErrEmptyBranches = fmt.Errorf("%w: branch list is empty", ErrConfiguration)
)
