package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-invgui/internal/host"
	"github.com/pixil98/go-invgui/internal/layout"
	"github.com/pixil98/go-invgui/internal/storage"
)

type StorageConfig struct {
	Layouts AssetConfig[*layout.Definition] `json:"layouts"`
	Players AssetConfig[*host.PlayerRecord] `json:"players"`
	// JournalPath keeps cached inventories on disk when set.
	JournalPath string `json:"journal_path,omitempty"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Layouts.Validate("layouts"))
	el.Add(c.Players.Validate("players"))
	return el.Err()
}

func (c *StorageConfig) buildLayouts() (*storage.FileStore[*layout.Definition], error) {
	s, err := c.Layouts.BuildFileStore(storage.WithRawValidator(layout.ValidateAsset))
	if err != nil {
		return nil, fmt.Errorf("creating layout store: %w", err)
	}
	return s, nil
}

func (c *StorageConfig) buildPlayers() (*storage.FileStore[*host.PlayerRecord], error) {
	s, err := c.Players.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating player store: %w", err)
	}
	return s, nil
}

// buildJournal returns nil when no journal is configured.
func (c *StorageConfig) buildJournal() (*host.CacheJournal, error) {
	if c.JournalPath == "" {
		return nil, nil
	}
	j, err := storage.NewJournal(c.JournalPath)
	if err != nil {
		return nil, err
	}
	return host.NewCacheJournal(j), nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore(opts ...storage.FileStoreOpt) (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path, opts...)
}
