package filesystem

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type fsStore struct {
	basePath string
}

// NewStore creates a new filesystem-based store rooted at basePath. Each key
// is kept in its own file.
func NewStore(basePath string) (*fsStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	return &fsStore{basePath: basePath}, nil
}

// itemPath maps a key to a file inside basePath. Keys are path-escaped so a
// project name containing a slash cannot leave the directory.
func (s *fsStore) itemPath(key string) (string, error) {
	name := url.PathEscape(key)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.basePath, name), nil
}

func (s *fsStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	filePath, err := s.itemPath(key)
	if err != nil {
		return "", false, err
	}
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath})

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("Item not found")
			return "", false, nil
		}
		log.WithError(err).Error("Failed to read item")
		return "", false, err
	}

	log.Debug("Item retrieved successfully")
	return string(data), true, nil
}

func (s *fsStore) SetItem(ctx context.Context, key, value string) error {
	filePath, err := s.itemPath(key)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath, "value_length": len(value)})

	// Write then rename so a reader never sees a half-written collection.
	tmp, err := os.CreateTemp(s.basePath, ".tmp-*")
	if err != nil {
		log.WithError(err).Error("Failed to create temp file")
		return err
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		log.WithError(err).Error("Failed to write item")
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		os.Remove(tmp.Name())
		log.WithError(err).Error("Failed to move item into place")
		return err
	}

	log.Debug("Item saved successfully")
	return nil
}

func (s *fsStore) RemoveItem(ctx context.Context, key string) error {
	filePath, err := s.itemPath(key)
	if err != nil {
		return err
	}
	log := logrus.WithFields(logrus.Fields{"key": key, "file_path": filePath})

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			log.Debug("Item not found for removal, considered successful.")
			return nil
		}
		log.WithError(err).Error("Failed to remove item")
		return err
	}

	log.Debug("Item removed successfully")
	return nil
}
