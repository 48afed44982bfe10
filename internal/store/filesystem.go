package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Crypter encrypts collection artifacts at rest. Implementations live in
// internal/encryption; a nil Crypter stores artifacts as plain JSON.
type Crypter interface {
	Encrypt(r io.Reader, w io.Writer) error
	Decrypt(r io.Reader, w io.Writer) error
}

// FileStore persists each collection as a JSON array in its own file:
//
//	<dir>/
//	  employees.json
//	  work_logs.json
//	  ...
//
// Writes go to a temp file in the same directory followed by an atomic
// rename, so a reader never observes a partially written artifact.
type FileStore struct {
	dir     string
	crypter Crypter
	locks   map[Collection]*sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store rooted at dir. crypter may be
// nil for plaintext storage.
func NewFileStore(dir string, crypter Crypter) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	locks := make(map[Collection]*sync.Mutex, len(Collections()))
	for _, c := range Collections() {
		locks[c] = &sync.Mutex{}
	}

	return &FileStore{dir: dir, crypter: crypter, locks: locks}, nil
}

func (s *FileStore) path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

// Read returns the current snapshot of the collection. A missing file is
// an empty collection; an unreadable or malformed one is quarantined and
// also read as empty.
func (s *FileStore) Read(c Collection) []json.RawMessage {
	path := s.path(c)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.quarantine(path)
		}
		return nil
	}

	if s.crypter != nil {
		var plain bytes.Buffer
		if err := s.crypter.Decrypt(bytes.NewReader(data), &plain); err != nil {
			s.quarantine(path)
			return nil
		}
		data = plain.Bytes()
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.quarantine(path)
		return nil
	}
	return records
}

// Write serializes records to a temp file and atomically renames it over
// the live artifact. On any failure the temp file is removed and the
// live artifact is left unchanged.
func (s *FileStore) Write(c Collection, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing collection %s: %w", c, err)
	}

	if s.crypter != nil {
		var sealed bytes.Buffer
		if err := s.crypter.Encrypt(bytes.NewReader(data), &sealed); err != nil {
			return fmt.Errorf("encrypting collection %s: %w", c, err)
		}
		data = sealed.Bytes()
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(s.dir, "."+string(c)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path(c)); err != nil {
		return fmt.Errorf("replacing collection %s: %w", c, err)
	}

	success = true
	return nil
}

// Update runs fn under the collection's mutex. The lock is held across
// read, fn, and write so concurrent mutators cannot lose updates.
func (s *FileStore) Update(c Collection, fn func(records []json.RawMessage) ([]json.RawMessage, error)) error {
	mu, ok := s.locks[c]
	if !ok {
		return fmt.Errorf("unknown collection: %s", c)
	}
	mu.Lock()
	defer mu.Unlock()

	next, err := fn(s.Read(c))
	if err != nil {
		return err
	}
	return s.Write(c, next)
}

// quarantine renames an unreadable artifact aside so the collection can
// continue as empty. Rename failures are ignored; there is nothing
// better to do than fall back to the empty collection.
func (s *FileStore) quarantine(path string) {
	suffix := time.Now().UTC().Format("20060102T150405.000000000Z")
	os.Rename(path, path+".corrupt-"+suffix)
}
