package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudserver/internal/storage"
	"gorm.io/gorm"
)

type StorageConfig struct {
	Path string `json:"path"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()

	if c.Path == "" {
		el.Add(fmt.Errorf("path is required"))
	} else {
		_, err := os.Stat(filepath.Dir(c.Path))
		if err != nil {
			el.Add(fmt.Errorf("invalid path %q: %w", c.Path, err))
		}
	}

	return el.Err()
}

func (c *StorageConfig) OpenDatabase() (*gorm.DB, error) {
	return storage.Open(c.Path)
}
