package pages

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"portfolio-gallery/gallery"
	"portfolio-gallery/stores/memory"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type pngFile string

func (f pngFile) Name() string      { return string(f) }
func (f pngFile) MediaType() string { return "image/png" }
func (f pngFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("png")), nil
}

func setupTestRouter() (*chi.Mux, *gallery.Registry) {
	registry := gallery.NewRegistry(gallery.NewStore(memory.NewStore(0)), gallery.NewIngestor(nil, nil, 0))

	r := chi.NewRouter()
	r.Get("/gallery", HandleGallery(registry))
	r.Get("/projects/{project}/gallery", HandleProjectGallery(registry))
	r.Get("/profile", HandleProfile(registry.Profile()))
	return r, registry
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHandleGallery(t *testing.T) {
	r, registry := setupTestRouter()
	registry.Global().Add(context.Background(), []gallery.File{pngFile("a.png")})

	rr := get(r, "/gallery")
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rr.Body.String()
	if n := strings.Count(body, `class="gallery-placeholder"`); n != len(gallery.DefaultPlaceholders) {
		t.Errorf("rendered %d placeholders", n)
	}
	if !strings.Contains(body, `alt="a.png"`) {
		t.Error("uploaded photo missing")
	}
}

func TestHandleProjectGallery(t *testing.T) {
	r, _ := setupTestRouter()

	rr := get(r, "/projects/Weather%20App/gallery")
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Weather App Gallery") {
		t.Errorf("title missing:\n%s", body)
	}
	if !strings.Contains(body, gallery.NoPhotosLabel) {
		t.Error("empty placeholder missing")
	}
}

func TestHandleProfile(t *testing.T) {
	r, _ := setupTestRouter()

	rr := get(r, "/profile")
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `id="profileImage"`) {
		t.Error("profile slot missing")
	}
}

func TestHandleProjectGallery_PercentInName(t *testing.T) {
	r, registry := setupTestRouter()
	g, _ := registry.Project("50%41")
	g.Add(context.Background(), []gallery.File{pngFile("a.png")})

	rr := get(r, "/projects/50%2541/gallery")
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "50%41 Gallery") {
		t.Errorf("title missing:\n%s", body)
	}
	if !strings.Contains(body, `alt="a.png"`) {
		t.Error("photo of project 50%41 missing")
	}
}
