// Package store persists a capital ledger in a single file.
//
// A Store holds the current snapshot. Every mutation goes through Apply: it
// runs against the current snapshot, the result is written to disk and only
// then becomes current.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/etnz/capital"
	"github.com/rs/zerolog"
)

// Store is a file backed snapshot. It is safe for concurrent use.
type Store struct {
	path  string
	codec codec
	log   zerolog.Logger

	mu   sync.Mutex
	snap capital.Snapshot
}

// Open loads the snapshot saved at path. A missing file is an empty ledger;
// it is created by the first successful Apply.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{
		path:  path,
		codec: codecFor(path),
		log:   log.With().Str("component", "store").Str("path", path).Logger(),
		snap:  capital.Empty(),
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Msg("no ledger file yet, starting empty")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	snap, err := s.codec.decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	s.snap = snap
	s.log.Debug().Stringer("snapshot", snap).Msg("ledger loaded")
	return s, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string { return s.path }

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() capital.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Apply runs the mutation f on the current snapshot and saves the result.
//
// Mutations are applied one at a time. If f or the save fails, the current
// snapshot is left unchanged and the error is returned.
func (s *Store) Apply(what string, f func(capital.Snapshot) (capital.Snapshot, error)) (capital.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := f(s.snap)
	if err != nil {
		s.log.Debug().Err(err).Str("mutation", what).Msg("mutation rejected")
		return s.snap, err
	}
	if err := s.save(next); err != nil {
		s.log.Error().Err(err).Str("mutation", what).Msg("cannot save ledger")
		return s.snap, err
	}
	s.snap = next
	s.log.Info().Str("mutation", what).Stringer("snapshot", next).Msg("ledger saved")
	return next, nil
}

// Import replaces the ledger with the interchange document read from r.
// When the document cannot be read the current snapshot is kept.
func (s *Store) Import(r io.Reader) error {
	_, err := s.Apply("import", func(capital.Snapshot) (capital.Snapshot, error) {
		return capital.Import(r)
	})
	return err
}

// save writes snap next to the ledger file then renames it over, so that a
// failed write never leaves a truncated ledger behind.
func (s *Store) save(snap capital.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for ledger %q: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create ledger file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := s.codec.encode(tmp, snap); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write ledger file %q: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("could not replace ledger file %q: %w", s.path, err)
	}
	return nil
}
