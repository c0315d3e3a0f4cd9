package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const journalExt = ".snap.zst"

// Journal keeps one zstd compressed JSON document per id in a directory.
type Journal struct {
	path string
	mu   sync.Mutex
}

func NewJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}
	return &Journal{path: path}, nil
}

// Write replaces the entry for id with v.
func (j *Journal) Write(id string, v any) error {
	if !ValidId(id) {
		return fmt.Errorf("journal id %q must be alphanumeric", id)
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(v); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encoding %s: %w", id, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("compressing %s: %w", id, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	return atomicWrite(j.filePath(id), buf.Bytes(), 0o644)
}

// Read decodes the entry for id into out. It reports false when there is no
// entry.
func (j *Journal) Read(id string, out any) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.filePath(id))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("opening journal entry: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return true, fmt.Errorf("creating decoder: %w", err)
	}
	defer dec.Close()

	if err := json.NewDecoder(dec).Decode(out); err != nil {
		return true, fmt.Errorf("decoding %s: %w", id, err)
	}
	return true, nil
}

// Remove deletes the entry for id. Removing a missing entry is not an error.
func (j *Journal) Remove(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := os.Remove(j.filePath(id))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing journal entry: %w", err)
	}
	return nil
}

// Ids lists every id with an entry.
func (j *Journal) Ids() ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := os.ReadDir(j.path)
	if err != nil {
		return nil, fmt.Errorf("reading journal directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, journalExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, journalExt))
	}
	return ids, nil
}

func (j *Journal) filePath(id string) string {
	return filepath.Join(j.path, id+journalExt)
}
