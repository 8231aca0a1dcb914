// Package storage holds uploaded files on local disk behind opaque
// references. Uploads are a two-step handshake: the client requests a
// reference, uploads the bytes against it, then saves the reference on the
// owning record.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrInvalidRef = errors.New("invalid storage reference")

const refBytes = 16

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// NewRef issues a fresh opaque reference. The reference is only valid once
// bytes have been uploaded against it.
func (s *Store) NewRef() (string, error) {
	buf := make([]byte, refBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Save writes the uploaded bytes under the reference, replacing any previous
// upload for it.
func (s *Store) Save(ref string, r io.Reader) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Open returns the stored bytes for a reference; the caller closes.
func (s *Store) Open(ref string) (io.ReadSeekCloser, error) {
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Exists reports whether bytes were uploaded against the reference.
func (s *Store) Exists(ref string) bool {
	path, err := s.path(ref)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// path validates the reference before touching the filesystem. References
// are hex strings of a fixed length, so no path traversal is possible.
func (s *Store) path(ref string) (string, error) {
	if len(ref) != refBytes*2 {
		return "", ErrInvalidRef
	}
	if _, err := hex.DecodeString(ref); err != nil {
		return "", ErrInvalidRef
	}
	return filepath.Join(s.dir, ref), nil
}
