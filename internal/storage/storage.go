package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"

	"github.com/danpilch/trainlist/internal/train"
)

// DefaultPath is the data file used when nothing else is configured.
const DefaultPath = "trains.json"

// ErrMalformed is returned when the data file exists but cannot be decoded.
var ErrMalformed = errors.New("malformed train data")

// File persists a train collection as a JSON array on disk.
type File struct {
	path   string
	logger *logrus.Logger
}

func NewFile(path string, logger *logrus.Logger) *File {
	return &File{
		path:   path,
		logger: logger,
	}
}

func (f *File) Path() string {
	return f.path
}

// Load reads the collection. A missing file is a first run and yields an
// empty collection.
func (f *File) Load() (train.Collection, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.WithField("path", f.path).Debug("data file not found, starting empty")
		return train.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	c, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", f.path, err)
	}

	f.logger.WithFields(logrus.Fields{
		"path":    f.path,
		"records": len(c),
	}).Debug("loaded trains")

	return c, nil
}

// Save replaces the data file with the full collection. The previous file
// stays intact if the write fails.
func (f *File) Save(c train.Collection) error {
	data, err := Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding trains: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	if err := renameio.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}

	f.logger.WithFields(logrus.Fields{
		"path":    f.path,
		"records": len(c),
	}).Debug("saved trains")

	return nil
}

// Marshal returns the on-disk form of c: an indented JSON array.
func Marshal(c train.Collection) ([]byte, error) {
	if c == nil {
		c = train.Collection{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the on-disk form. Anything other than a JSON array of
// records is ErrMalformed.
func Unmarshal(data []byte) (train.Collection, error) {
	var c train.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrMalformed)
	}
	return c, nil
}
