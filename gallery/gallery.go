package gallery

import (
	"context"
	"errors"
	"fmt"
	"portfolio-gallery/core"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrBusy is returned by Add while a previous batch is still being processed.
var ErrBusy = errors.New("an upload is already in progress")

// Gallery renders one collection and applies add/delete to it. It keeps no
// copy of the photos: every view re-reads the store.
type Gallery struct {
	key          string
	store        *Store
	ingestor     *Ingestor
	placeholders []string
	// emptyLabel, when set, replaces an empty grid with a single entry.
	emptyLabel string

	mu   sync.Mutex
	busy bool
}

// NewGlobal returns the site-wide gallery, which always shows the default
// placeholders before its photos.
func NewGlobal(store *Store, ingestor *Ingestor) *Gallery {
	return &Gallery{
		key:          GlobalKey,
		store:        store,
		ingestor:     ingestor,
		placeholders: DefaultPlaceholders,
	}
}

// NewProject returns the gallery of a single project.
func NewProject(store *Store, ingestor *Ingestor, project string) *Gallery {
	return &Gallery{
		key:        ProjectKey(project),
		store:      store,
		ingestor:   ingestor,
		emptyLabel: NoPhotosLabel,
	}
}

func (g *Gallery) Key() string { return g.key }

// Busy reports whether an upload batch is in flight.
func (g *Gallery) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

func (g *Gallery) acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

func (g *Gallery) release() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// Photos returns the current collection.
func (g *Gallery) Photos(ctx context.Context) core.Collection {
	return g.store.Load(ctx, g.key)
}

// View renders placeholders followed by the stored photos, newest first.
func (g *Gallery) View(ctx context.Context) View {
	photos := g.Photos(ctx)

	items := make([]Item, 0, len(g.placeholders)+len(photos)+1)
	for _, label := range g.placeholders {
		items = append(items, Item{Kind: KindPlaceholder, Label: label, Icon: PlaceholderIcon})
	}
	if len(photos) == 0 && g.emptyLabel != "" {
		items = append(items, Item{Kind: KindEmpty, Label: g.emptyLabel, Icon: PlaceholderIcon})
	}
	for _, p := range photos {
		items = append(items, Item{
			Kind:      KindPhoto,
			ID:        p.ID,
			Src:       p.Src,
			Alt:       p.Name,
			Deletable: true,
		})
	}

	add := AddControl{Label: AddLabel}
	if g.Busy() {
		add = AddControl{Label: UploadingLabel, Disabled: true}
	}

	return View{Key: g.key, Items: items, Add: add, Count: len(photos)}
}

// Add ingests one batch. The gallery stays busy until every file of the batch
// has been decoded and saved; a concurrent Add gets ErrBusy. Photos are
// prepended one at a time in selection order, each followed by a save, so the
// last selected file ends up first.
func (g *Gallery) Add(ctx context.Context, files []File) (int, error) {
	if !g.acquire() {
		return 0, ErrBusy
	}
	defer g.release()

	log := logrus.WithFields(logrus.Fields{"key": g.key, "files": len(files)})

	photos := g.ingestor.DecodeBatch(ctx, files)
	added := 0
	for _, p := range photos {
		_, err := g.store.Update(ctx, g.key, func(c core.Collection) (core.Collection, bool) {
			return c.Prepend(p), true
		})
		if err != nil {
			log.WithError(err).WithField("added", added).Error("Failed to persist photo")
			return added, fmt.Errorf("add %s: %w", p.Name, err)
		}
		added++
	}

	log.WithField("added", added).Info("Photos added")
	return added, nil
}

// Delete removes the photo with the given id. It reports false, without
// writing, when no such photo exists.
func (g *Gallery) Delete(ctx context.Context, id string) (bool, error) {
	found := false
	_, err := g.store.Update(ctx, g.key, func(c core.Collection) (core.Collection, bool) {
		var next core.Collection
		next, found = c.Without(id)
		return next, found
	})
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", id, err)
	}

	logrus.WithFields(logrus.Fields{"key": g.key, "photo_id": id, "found": found}).Info("Photo delete")
	return found, nil
}
