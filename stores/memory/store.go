package memory

import (
	"context"
	"fmt"
	"portfolio-gallery/core"
	"sync"

	"github.com/sirupsen/logrus"
)

// memStore implements core.KeyValueStore in process memory.
type memStore struct {
	mu    sync.RWMutex
	items map[string]string
	size  int64
	quota int64
}

// NewStore creates a new in-memory store. A positive quota caps the total
// number of bytes (keys plus values) the store will hold.
func NewStore(quota int64) *memStore {
	return &memStore{
		items: make(map[string]string),
		quota: quota,
	}
}

func (s *memStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	logrus.WithFields(logrus.Fields{"key": key, "found": ok}).Debug("Item read")
	return value, ok, nil
}

func (s *memStore) SetItem(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"key": key, "value_length": len(value)})

	next := s.size + int64(len(key)+len(value))
	if old, ok := s.items[key]; ok {
		next -= int64(len(key) + len(old))
	}
	if s.quota > 0 && next > s.quota {
		log.WithField("quota", s.quota).Warn("Write rejected, quota exceeded")
		return fmt.Errorf("set %s: %w", key, core.ErrQuotaExceeded)
	}

	s.items[key] = value
	s.size = next
	log.Debug("Item saved successfully")
	return nil
}

func (s *memStore) RemoveItem(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.items[key]; ok {
		s.size -= int64(len(key) + len(old))
		delete(s.items, key)
		logrus.WithField("key", key).Debug("Item removed")
	}
	return nil
}
