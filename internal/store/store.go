// Package store persists a whole record collection as a JSON array on disk.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StorageError reports a failure to read, parse or write the backing file.
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// FileStore maps a []T to a JSON file. Every Save rewrites the whole file.
type FileStore[T any] struct {
	path   string
	logger *slog.Logger
}

// Option configures a FileStore.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// NewFileStore creates a FileStore backed by the file at path.
// The file is not touched until Load or Save is called.
func NewFileStore[T any](path string, opts ...Option) *FileStore[T] {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	return &FileStore[T]{path: path, logger: o.logger}
}

// Load reads the full collection. A missing file yields an empty collection
// and no error. Anything other than a JSON array of T, including an empty
// file or null, yields a *StorageError. A record that fails to decode is
// wrapped with its index so callers can match the record's own error.
func (s *FileStore[T]) Load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("store file missing, starting empty", "path", s.path)
			return []T{}, nil
		}
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}

	var raw []jsoniter.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}
	if raw == nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: errNotArray}
	}

	records := make([]T, len(raw))
	for i, elem := range raw {
		if err := decodeRecord(elem, &records[i]); err != nil {
			return nil, &StorageError{Op: "load", Path: s.path, Err: fmt.Errorf("record %d: %w", i, err)}
		}
	}
	s.logger.Debug("store loaded", "path", s.path, "records", len(records))
	return records, nil
}

var errNotArray = errors.New("content is not a JSON array")

// unmarshaler matches types that decode and validate themselves.
type unmarshaler interface {
	UnmarshalJSON([]byte) error
}

// decodeRecord calls the record's own UnmarshalJSON directly so its error
// keeps its type; the codec would otherwise flatten it to text.
func decodeRecord[T any](data []byte, rec *T) error {
	if u, ok := any(rec).(unmarshaler); ok {
		return u.UnmarshalJSON(data)
	}
	return json.Unmarshal(data, rec)
}

// Save overwrites the file with records, in order. The data is written to a
// temporary file in the same directory and renamed over the target.
func (s *FileStore[T]) Save(records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: fmt.Errorf("marshaling: %w", err)}
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: fmt.Errorf("creating directory: %w", err)}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	s.logger.Debug("store saved", "path", s.path, "records", len(records))
	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
