// Package render draws gallery views as HTML fragments using the class names
// the site's stylesheet expects.
package render

import (
	"embed"
	"html/template"
	"io"
	"portfolio-gallery/gallery"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{"imgsrc": imageSource}).ParseFS(templateFS, "templates/*.html"),
)

// imageSource lets image data URIs through as trusted URLs. Anything else is
// handed back as a plain string for html/template to sanitize.
func imageSource(src string) any {
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	return src
}

func GalleryHTML(w io.Writer, v gallery.View) error {
	return templates.ExecuteTemplate(w, "gallery", v)
}

func OverlayHTML(w io.Writer, v gallery.OverlayView) error {
	return templates.ExecuteTemplate(w, "overlay", v)
}

func ProfileHTML(w io.Writer, v gallery.ProfileView) error {
	return templates.ExecuteTemplate(w, "profile", v)
}
