// Package store persists the task collection as a single JSON document.
//
// Every operation works on the whole collection: Load reads and validates the
// complete file and Save replaces it in full. Writes go to a temporary file in
// the same directory which is then renamed over the target, so a failed Save
// never leaves a truncated document behind.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"taskcli/internal/logger"
	"taskcli/internal/service"
)

const (
	filePerm = 0o644
	dirPerm  = 0o700
)

// Store reads and writes the tasks file at a fixed path.
type Store struct {
	fs       afero.Fs
	path     string
	validate *validator.Validate
	log      logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug events.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Store for the file at path on fs.
func New(fs afero.Fs, path string, opts ...Option) *Store {
	s := &Store{
		fs:       fs,
		path:     path,
		validate: validator.New(),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the tasks file.
func (s *Store) Path() string {
	return s.path
}

// Initialize writes an empty collection if the tasks file does not exist.
// Safe to call on every startup. The existence check and the write happen
// under the store lock so a concurrent first run cannot clobber a saved task.
func (s *Store) Initialize() (err error) {
	unlock, err := s.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = &WriteError{Path: s.path, Err: fmt.Errorf("unlock: %w", uerr)}
		}
	}()

	exists, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	if exists {
		return nil
	}
	s.log.Debug("creating tasks file", "path", s.path)
	return s.Save(nil)
}

// Load reads the full task collection.
func (s *Store) Load() ([]service.Task, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}

	records, err := decodeStrict(data)
	if err != nil {
		return nil, &FormatError{Path: s.path, Err: err}
	}
	tasks, err := toTasks(s.validate, records)
	if err != nil {
		return nil, &FormatError{Path: s.path, Err: err}
	}

	s.log.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// Save replaces the tasks file with the given collection.
func (s *Store) Save(tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: fmt.Errorf("marshal tasks: %w", err)}
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	s.log.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// Lock takes an advisory lock on a sibling ".lock" file so concurrent
// invocations serialize their load-modify-save cycles. Only stores on the
// OS filesystem are locked; for other filesystems Lock is a no-op.
func (s *Store) Lock() (unlock func() error, err error) {
	if _, ok := s.fs.(*afero.OsFs); !ok {
		return func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return nil, &WriteError{Path: s.path, Err: err}
	}

	fl := flock.New(s.path + ".lock")
	if err := fl.Lock(); err != nil {
		return nil, &WriteError{Path: s.path, Err: fmt.Errorf("lock: %w", err)}
	}
	s.log.Debug("acquired lock", "path", fl.Path())
	return fl.Unlock, nil
}

func (s *Store) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = s.fs.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		return err
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		return err
	}
	committed = true
	syncDir(s.fs, dir)
	return nil
}

// syncDir is best effort; not every filesystem supports syncing directories.
func syncDir(fs afero.Fs, dir string) {
	d, err := fs.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}

// decodeStrict decodes a JSON array of records, rejecting unknown fields,
// non-array documents and trailing content.
func decodeStrict(data []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, errors.New("document is not a task list")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("trailing content after task list")
	}
	return records, nil
}
