package capital

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by mutations referencing an unknown entity id.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when an entity breaks its validity rules.
	ErrInvalid = errors.New("invalid")
	// ErrDuplicate is returned when adding an entity whose id is already used.
	ErrDuplicate = errors.New("duplicate id")
)

// FormatError reports an interchange document that cannot be read.
//
// When a FormatError is returned, no snapshot is produced: callers keep their
// current one.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string { return fmt.Sprintf("format error: %v", e.Err) }
func (e *FormatError) Unwrap() error { return e.Err }

// invalid wraps validation problems of an entity into an ErrInvalid error.
func invalid(what, id string, problems []error) error {
	if len(problems) == 0 {
		return nil
	}
	if id == "" {
		return fmt.Errorf("%w %s: %w", ErrInvalid, what, errors.Join(problems...))
	}
	return fmt.Errorf("%w %s %q: %w", ErrInvalid, what, id, errors.Join(problems...))
}
