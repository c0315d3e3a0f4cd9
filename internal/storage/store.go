package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Storer is the read/write view of a set of records keyed by id.
type Storer[T ValidatingSpec] interface {
	Save(string, T) error
	Get(string) T
	GetAll() map[string]T
}

// RawValidator checks a file's bytes before they are decoded.
type RawValidator func(path string, data []byte) error

type FileStoreOpt func(*fileStoreConfig)

type fileStoreConfig struct {
	validators []RawValidator
}

// WithRawValidator runs v against every asset file as it is loaded.
func WithRawValidator(v RawValidator) FileStoreOpt {
	return func(c *fileStoreConfig) {
		c.validators = append(c.validators, v)
	}
}

// FileStore keeps every asset below a directory in memory. Assets are read
// from .json, .yaml and .yml files at any depth; saves always write JSON
// to <dir>/<id>.json.
type FileStore[T ValidatingSpec] struct {
	dir     string
	records map[string]T
	config  fileStoreConfig

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](dir string, opts ...FileStoreOpt) (*FileStore[T], error) {
	s := &FileStore[T]{dir: dir}
	for _, opt := range opts {
		opt(&s.config)
	}

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}
	s.records = records

	return s, nil
}

func (s *FileStore[T]) readAll() (map[string]T, error) {
	records := map[string]T{}

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || assetFormat(path) == "" {
			return nil
		}

		name := filepath.Base(path)
		asset, err := s.readAsset(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
		if err := asset.Validate(); err != nil {
			return fmt.Errorf("validating %s: %w", name, err)
		}
		if _, ok := records[asset.Id()]; ok {
			return fmt.Errorf("duplicate key detected: %s", asset.Id())
		}

		records[asset.Id()] = asset.Spec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func assetFormat(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

func (s *FileStore[T]) readAsset(path string) (*Asset[T], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	for _, v := range s.config.validators {
		if err := v(path, data); err != nil {
			return nil, err
		}
	}

	return decodeAsset[T](assetFormat(path), data)
}

func decodeAsset[T ValidatingSpec](format string, data []byte) (*Asset[T], error) {
	asset := &Asset[T]{}

	var err error
	if format == "yaml" {
		err = yaml.Unmarshal(data, asset)
	} else {
		err = json.Unmarshal(data, asset)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshalling asset: %w", err)
	}

	return asset, nil
}

// Save validates o, writes it to disk and then updates the cached copy.
// The cache is left alone when either step fails.
func (s *FileStore[T]) Save(id string, o T) error {
	asset := &Asset[T]{
		Version:    1,
		Identifier: id,
		Spec:       o,
	}
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validating %s: %w", id, err)
	}

	data, err := json.MarshalIndent(asset, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := atomicWrite(s.filePath(id), data, 0o644); err != nil {
		return err
	}
	s.records[id] = o
	return nil
}

// atomicWrite writes data to a temp file then renames it over path, so
// readers never see a partial file.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// Get returns the record for id, or the zero value when there is none.
func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.records[id]
}

// GetAll returns a copy of every record keyed by id.
func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.records)
}

// Len returns the number of records.
func (s *FileStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

func (s *FileStore[T]) filePath(id string) string {
	return filepath.Join(s.dir, id+".json")
}
