package photos

import (
	"errors"
	"net/http"
	"net/url"
	"portfolio-gallery/core"
	"portfolio-gallery/gallery"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// FormField is the multipart field carrying the selected files.
const FormField = "photos"

const maxMemory = 32 << 20

type (
	// Resolver picks the gallery a request addresses.
	Resolver func(r *http.Request) (*gallery.Gallery, error)

	AddPhotosResponse struct {
		Added   int          `json:"added"`
		Warning string       `json:"warning,omitempty"`
		Gallery gallery.View `json:"gallery"`
	}
)

// Global resolves every request to the site-wide gallery.
func Global(registry *gallery.Registry) Resolver {
	return func(r *http.Request) (*gallery.Gallery, error) {
		return registry.Global(), nil
	}
}

// ProjectParam returns the {project} URL parameter decoded exactly once.
// chi routes on the raw path only when the URL carries one, and only then is
// the parameter still escaped.
func ProjectParam(r *http.Request) (string, error) {
	project := chi.URLParam(r, "project")
	if r.URL.RawPath == "" {
		return project, nil
	}
	return url.PathUnescape(project)
}

// Project resolves the {project} URL parameter to that project's gallery.
func Project(registry *gallery.Registry) Resolver {
	return func(r *http.Request) (*gallery.Gallery, error) {
		project, err := ProjectParam(r)
		if err != nil {
			return nil, err
		}
		return registry.Project(project)
	}
}

func resolveOrFail(w http.ResponseWriter, r *http.Request, resolve Resolver) (*gallery.Gallery, bool) {
	g, err := resolve(r)
	if err != nil {
		logrus.WithError(err).Warn("Failed to resolve gallery")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return nil, false
	}
	return g, true
}

// HandleGetGallery returns the current view of a gallery.
func HandleGetGallery(resolve Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := resolveOrFail(w, r, resolve)
		if !ok {
			return
		}
		render.JSON(w, r, g.View(r.Context()))
	}
}

// HandleAddPhotos ingests the files posted in the "photos" field and returns
// the re-rendered gallery.
func HandleAddPhotos(resolve Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := resolveOrFail(w, r, resolve)
		if !ok {
			return
		}

		if err := r.ParseMultipartForm(maxMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				logrus.WithField("limit", tooLarge.Limit).Warn("Upload exceeds request size limit")
				render.Status(r, http.StatusRequestEntityTooLarge)
				render.JSON(w, r, map[string]string{"error": "Upload too large; send fewer or smaller files"})
				return
			}
			logrus.WithField("error", err).Error("Failed to parse upload")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "Invalid multipart upload"})
			return
		}
		defer r.MultipartForm.RemoveAll()

		files := gallery.MultipartFiles(r.MultipartForm.File[FormField])
		added, err := g.Add(r.Context(), files)

		log := logrus.WithFields(logrus.Fields{"key": g.Key(), "files": len(files), "added": added})
		switch {
		case errors.Is(err, gallery.ErrBusy):
			log.Warn("Upload rejected, gallery busy")
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, map[string]string{"error": err.Error()})
			return
		case errors.Is(err, core.ErrQuotaExceeded):
			log.WithError(err).Warn("Upload stopped by storage quota")
			render.Status(r, http.StatusInsufficientStorage)
			render.JSON(w, r, AddPhotosResponse{
				Added:   added,
				Warning: "Storage is full; some photos were not saved.",
				Gallery: g.View(r.Context()),
			})
			return
		case err != nil:
			log.WithError(err).Error("Failed to add photos")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to add photos"})
			return
		}

		render.JSON(w, r, AddPhotosResponse{Added: added, Gallery: g.View(r.Context())})
	}
}

// HandleDeletePhoto removes the photo named by the {id} URL parameter.
func HandleDeletePhoto(resolve Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, ok := resolveOrFail(w, r, resolve)
		if !ok {
			return
		}

		id := chi.URLParam(r, "id")
		found, err := g.Delete(r.Context(), id)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error":    err,
				"key":      g.Key(),
				"photo_id": id,
			}).Error("Failed to delete photo")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to delete photo"})
			return
		}
		if !found {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]string{"error": "Photo not found"})
			return
		}

		render.JSON(w, r, g.View(r.Context()))
	}
}
