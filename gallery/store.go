// Package gallery holds the photo-gallery core: collection persistence,
// file ingestion, and the view models for the global gallery, per-project
// galleries and the profile photo.
package gallery

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"portfolio-gallery/core"
	"sync"

	"github.com/sirupsen/logrus"
)

// Storage keys. Project keys embed the project identifier verbatim.
const (
	GlobalKey  = "galleryPhotos"
	ProfileKey = "profilePhoto"
)

// ProjectKey returns the storage key of a project's collection.
func ProjectKey(project string) string {
	return "project_" + project + "_photos"
}

// Store persists whole collections in a key/value backend. Writes to one key
// are serialized so concurrent read-modify-write cycles do not lose photos.
type Store struct {
	kv core.KeyValueStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(kv core.KeyValueStore) *Store {
	return &Store{
		kv:    kv,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Load returns the collection saved under key. A missing key, an unreadable
// backend or a value that does not parse all yield an empty collection.
func (s *Store) Load(ctx context.Context, key string) core.Collection {
	log := logrus.WithField("key", key)

	raw, ok, err := s.kv.GetItem(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Failed to read collection, treating as empty")
		return core.Collection{}
	}
	if !ok {
		return core.Collection{}
	}

	var c core.Collection
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		log.WithError(err).Warn("Stored collection is malformed, treating as empty")
		return core.Collection{}
	}
	if c == nil {
		c = core.Collection{}
	}
	fillMissingIDs(c)
	return c
}

// fillMissingIDs gives records saved without an id one derived from their
// image data, so the same stored value always yields the same ids. Repeated
// images are told apart by position.
func fillMissingIDs(c core.Collection) {
	seen := make(map[string]int)
	for i := range c {
		if c[i].ID != "" {
			continue
		}
		sum := sha256.Sum256([]byte(c[i].Src))
		id := "legacy-" + hex.EncodeToString(sum[:8])
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}
		c[i].ID = id
	}
}

// Save replaces the value under key with the full collection. An empty
// collection removes the key, which loads back as empty.
func (s *Store) Save(ctx context.Context, key string, c core.Collection) error {
	if len(c) == 0 {
		if err := s.kv.RemoveItem(ctx, key); err != nil {
			return fmt.Errorf("failed to clear collection %s: %w", key, err)
		}
		logrus.WithField("key", key).Debug("Collection emptied")
		return nil
	}

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", key, err)
	}
	if err := s.kv.SetItem(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save collection %s: %w", key, err)
	}
	logrus.WithFields(logrus.Fields{"key": key, "photos": len(c)}).Debug("Collection saved")
	return nil
}

// Update runs one read-modify-write cycle on key. fn returns the new
// collection and whether it changed; unchanged collections are not written.
func (s *Store) Update(ctx context.Context, key string, fn func(core.Collection) (core.Collection, bool)) (core.Collection, error) {
	unlock := s.lock(key)
	defer unlock()

	current := s.Load(ctx, key)
	next, changed := fn(current)
	if !changed {
		return current, nil
	}
	if err := s.Save(ctx, key, next); err != nil {
		return current, err
	}
	return next, nil
}

// LoadProfile returns the saved profile photo data URI, if any.
func (s *Store) LoadProfile(ctx context.Context) (string, bool) {
	src, ok, err := s.kv.GetItem(ctx, ProfileKey)
	if err != nil {
		logrus.WithError(err).Warn("Failed to read profile photo")
		return "", false
	}
	if !ok || src == "" {
		return "", false
	}
	return src, true
}

// SaveProfile stores src as the profile photo. The value is the bare data
// URI, not JSON.
func (s *Store) SaveProfile(ctx context.Context, src string) error {
	unlock := s.lock(ProfileKey)
	defer unlock()

	if err := s.kv.SetItem(ctx, ProfileKey, src); err != nil {
		return fmt.Errorf("failed to save profile photo: %w", err)
	}
	return nil
}
