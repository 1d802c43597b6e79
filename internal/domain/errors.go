package domain

import "errors"

// ErrNotFound is returned by every lookup of a key the aggregate does not hold.
var ErrNotFound = errors.New("not found")
