package store

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/etnz/capital"
	"github.com/vmihailenco/msgpack/v5"
)

// codec reads and writes a snapshot in one on-disk format.
type codec interface {
	decode(r io.Reader) (capital.Snapshot, error)
	encode(w io.Writer, s capital.Snapshot) error
}

// codecFor returns the codec matching the file extension: ".msgpack" files
// are binary, anything else is the JSON interchange format.
func codecFor(path string) codec {
	if strings.EqualFold(filepath.Ext(path), ".msgpack") {
		return msgpackCodec{}
	}
	return jsonCodec{}
}

type jsonCodec struct{}

func (jsonCodec) decode(r io.Reader) (capital.Snapshot, error) { return capital.Import(r) }
func (jsonCodec) encode(w io.Writer, s capital.Snapshot) error { return capital.Export(w, s) }

// msgpackCodec stores the same document as the interchange format, keyed by
// the json property names.
type msgpackCodec struct{}

func (msgpackCodec) decode(r io.Reader) (capital.Snapshot, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("json")
	s := capital.Snapshot{Settings: capital.DefaultSettings()}
	if err := dec.Decode(&s); err != nil {
		return capital.Snapshot{}, &capital.FormatError{Err: err}
	}
	s, err := s.Normalized()
	if err != nil {
		return capital.Snapshot{}, &capital.FormatError{Err: err}
	}
	return s, nil
}

func (msgpackCodec) encode(w io.Writer, s capital.Snapshot) error {
	s, err := s.Normalized()
	if err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}
