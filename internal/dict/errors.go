package dict

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel the opaque NotFound error surface wraps.
// Callers should use errors.Is(err, dict.ErrNotFound).
var ErrNotFound = errors.New("dict: not found")

// ErrInvalidInput is the sentinel for rejected insertions (the empty
// pattern; the root never carries a replacement).
var ErrInvalidInput = errors.New("dict: invalid input")

func notFoundErr(key string) error {
	return fmt.Errorf("dict: key %q: %w", key, ErrNotFound)
}

func invalidInputErr(key string) error {
	return fmt.Errorf("dict: empty pattern %q: %w", key, ErrInvalidInput)
}
