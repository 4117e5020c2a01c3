package capital

import "github.com/google/uuid"

// newID returns a fresh random entity id.
func newID() string { return uuid.NewString() }
