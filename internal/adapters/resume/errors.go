package resume

import (
	"errors"
	"fmt"
)

// ErrExtraction is the kind of every failure to turn an upload into text.
var ErrExtraction = errors.New("resume text extraction failed")

var (
	ErrUnsupportedType = fmt.Errorf("%w: unsupported file type", ErrExtraction)
	ErrTooLarge        = fmt.Errorf("%w: file too large", ErrExtraction)
	ErrEmpty           = fmt.Errorf("%w: empty file", ErrExtraction)
)
