package colleges

import "errors"

// ErrNetwork is the kind of every failure to obtain the college list.
var ErrNetwork = errors.New("college list unavailable")
