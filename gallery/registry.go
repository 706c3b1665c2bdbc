package gallery

import (
	"errors"
	"sync"
)

// ErrNoProject is returned when a project gallery is requested without a
// project identifier.
var ErrNoProject = errors.New("project identifier is required")

// Registry owns the global gallery and one Gallery per project identifier,
// so a project's busy state is shared by everyone addressing it.
type Registry struct {
	store    *Store
	ingestor *Ingestor
	global   *Gallery

	mu       sync.Mutex
	projects map[string]*Gallery
}

func NewRegistry(store *Store, ingestor *Ingestor) *Registry {
	return &Registry{
		store:    store,
		ingestor: ingestor,
		global:   NewGlobal(store, ingestor),
		projects: make(map[string]*Gallery),
	}
}

func (r *Registry) Global() *Gallery { return r.global }

// Project returns the gallery bound to project, creating it on first use.
func (r *Registry) Project(project string) (*Gallery, error) {
	if project == "" {
		return nil, ErrNoProject
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.projects[project]
	if !ok {
		g = NewProject(r.store, r.ingestor, project)
		r.projects[project] = g
	}
	return g, nil
}

// Profile returns the profile photo widget backed by the same store.
func (r *Registry) Profile() *Profile {
	return NewProfile(r.store, r.ingestor)
}
