package store

import "errors"

// ErrNotFound is returned by point lookups that match no row for the
// active tenant.
var ErrNotFound = errors.New("record not found")
