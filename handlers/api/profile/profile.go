package profile

import (
	"errors"
	"net/http"
	"portfolio-gallery/gallery"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

// FormField is the multipart field carrying the profile photo.
const FormField = "photo"

type UploadResponse struct {
	Updated bool                `json:"updated"`
	Profile gallery.ProfileView `json:"profile"`
}

func HandleGetProfile(p *gallery.Profile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, p.View(r.Context()))
	}
}

// HandleUploadProfile replaces the profile photo with the first posted file.
// A non-image upload leaves the photo unchanged and reports updated=false.
func HandleUploadProfile(p *gallery.Profile) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
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

		updated, err := p.Upload(r.Context(), gallery.MultipartFiles(r.MultipartForm.File[FormField]))
		if err != nil {
			logrus.WithError(err).Error("Failed to save profile photo")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "Failed to save profile photo"})
			return
		}

		render.JSON(w, r, UploadResponse{Updated: updated, Profile: p.View(r.Context())})
	}
}
