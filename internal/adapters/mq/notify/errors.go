package notify

import "errors"

// Sentinel kinds for publisher errors.
var (
	ErrPublish = errors.New("notification publish failed")
	ErrClosed  = errors.New("publisher closed")
)
