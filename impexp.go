package capital

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// this file contains functions to handle the interchange format: a single
// JSON object with the lists 'accounts', 'orders', 'expenses', 'reports',
// 'movements' and the 'settings' object.

// Export writes s to w in the interchange format.
func Export(w io.Writer, s Snapshot) error {
	s, err := s.Normalized()
	if err != nil {
		return fmt.Errorf("cannot export snapshot: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	return nil
}

// Import reads a snapshot in the interchange format.
//
// Absent lists are empty, absent settings take their default values and
// absent statuses take their default. A document that cannot be parsed, or
// that holds values the mutations would reject (unknown enumerated values,
// non positive rates or amounts), is reported as a *FormatError.
func Import(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read snapshot: %w", err)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return Snapshot{}, &FormatError{Err: errors.New("document is not a JSON object")}
	}

	s := Snapshot{Settings: DefaultSettings()}
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, &FormatError{Err: err}
	}
	s, err = s.Normalized()
	if err != nil {
		return Snapshot{}, &FormatError{Err: err}
	}
	return s, nil
}
