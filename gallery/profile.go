package gallery

import (
	"context"

	"github.com/sirupsen/logrus"
)

const (
	ProfileAlt  = "Profile Photo"
	ProfileIcon = "fa-user"
)

// ProfileView is the profile slot: an image when one was saved, otherwise a
// placeholder glyph.
type ProfileView struct {
	Src      string `json:"src,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Icon     string `json:"icon,omitempty"`
	HasPhoto bool   `json:"hasPhoto"`
}

// Profile is the single, replace-only profile photo.
type Profile struct {
	store    *Store
	ingestor *Ingestor
}

func NewProfile(store *Store, ingestor *Ingestor) *Profile {
	return &Profile{store: store, ingestor: ingestor}
}

// Upload replaces the profile photo with the first selected file. It reports
// false when that file is missing, not an image, or unreadable.
func (p *Profile) Upload(ctx context.Context, files []File) (bool, error) {
	if len(files) == 0 {
		return false, nil
	}
	f := files[0]
	log := logrus.WithFields(logrus.Fields{"file": f.Name(), "media_type": f.MediaType()})

	if !IsImage(f.MediaType()) {
		log.Debug("Ignoring non-image profile upload")
		return false, nil
	}
	photo, err := p.ingestor.Decode(ctx, f)
	if err != nil {
		log.WithError(err).Warn("Failed to decode profile photo")
		return false, nil
	}
	if err := p.store.SaveProfile(ctx, photo.Src); err != nil {
		return false, err
	}

	log.Info("Profile photo replaced")
	return true, nil
}

func (p *Profile) View(ctx context.Context) ProfileView {
	src, ok := p.store.LoadProfile(ctx)
	if !ok {
		return ProfileView{Icon: ProfileIcon}
	}
	return ProfileView{Src: src, Alt: ProfileAlt, HasPhoto: true}
}
