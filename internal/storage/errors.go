package storage

import "errors"

// ErrNotFound is returned when an entity id is absent from a store.
var ErrNotFound = errors.New("not found")
