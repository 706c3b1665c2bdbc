package gallery

// Kind tells a renderer how to draw an Item.
type Kind string

const (
	KindPlaceholder Kind = "placeholder"
	KindPhoto       Kind = "photo"
	KindEmpty       Kind = "empty"
)

const (
	AddLabel        = "Add Photos"
	UploadingLabel  = "Uploading..."
	NoPhotosLabel   = "No photos yet"
	PlaceholderIcon = "fa-image"
)

// DefaultPlaceholders are the fixed entries shown ahead of the global
// gallery's photos.
var DefaultPlaceholders = []string{
	"Project Screenshot 1",
	"Project Screenshot 2",
	"Development Process",
}

type (
	// Item is one cell of a gallery grid.
	Item struct {
		Kind      Kind   `json:"kind"`
		ID        string `json:"id,omitempty"`
		Src       string `json:"src,omitempty"`
		Alt       string `json:"alt,omitempty"`
		Label     string `json:"label,omitempty"`
		Icon      string `json:"icon,omitempty"`
		Deletable bool   `json:"deletable"`
	}

	// AddControl is the state of the "add photos" button.
	AddControl struct {
		Label    string `json:"label"`
		Disabled bool   `json:"disabled"`
	}

	// View is everything a renderer needs to draw a gallery.
	View struct {
		Key   string     `json:"key"`
		Items []Item     `json:"items"`
		Add   AddControl `json:"add"`
		// Count is the number of live photos, placeholders excluded.
		Count int `json:"count"`
	}
)

// DeleteControls counts the items that carry a delete control.
func (v View) DeleteControls() int {
	n := 0
	for _, it := range v.Items {
		if it.Deletable {
			n++
		}
	}
	return n
}
