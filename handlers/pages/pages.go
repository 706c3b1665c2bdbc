package pages

import (
	"bytes"
	"net/http"
	"portfolio-gallery/gallery"
	"portfolio-gallery/handlers/api/photos"
	"portfolio-gallery/render"

	"github.com/sirupsen/logrus"
)

func writeHTML(w http.ResponseWriter, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// HandleGallery renders the global gallery grid.
func HandleGallery(registry *gallery.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := render.GalleryHTML(&buf, registry.Global().View(r.Context())); err != nil {
			logrus.WithError(err).Error("Failed to render gallery")
			http.Error(w, "Failed to render gallery", http.StatusInternalServerError)
			return
		}
		writeHTML(w, &buf)
	}
}

// HandleProjectGallery opens the overlay for {project} and renders it.
func HandleProjectGallery(registry *gallery.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := photos.ProjectParam(r)
		if err != nil {
			http.Error(w, "Invalid project", http.StatusBadRequest)
			return
		}

		overlay := gallery.NewOverlay(registry)
		if err := overlay.Open(project); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		view, _ := overlay.View(r.Context())

		var buf bytes.Buffer
		if err := render.OverlayHTML(&buf, view); err != nil {
			logrus.WithError(err).WithField("project", project).Error("Failed to render project gallery")
			http.Error(w, "Failed to render project gallery", http.StatusInternalServerError)
			return
		}
		writeHTML(w, &buf)
	}
}

// HandleProfile renders the profile photo slot.
func HandleProfile(p *gallery.Profile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := render.ProfileHTML(&buf, p.View(r.Context())); err != nil {
			logrus.WithError(err).Error("Failed to render profile")
			http.Error(w, "Failed to render profile", http.StatusInternalServerError)
			return
		}
		writeHTML(w, &buf)
	}
}
