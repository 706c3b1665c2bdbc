package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"portfolio-gallery/gallery"
	"portfolio-gallery/handlers/api/photos"
	"portfolio-gallery/handlers/api/profile"
	"portfolio-gallery/handlers/pages"
	"portfolio-gallery/stores"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxBatchFiles = 20
	// multipartOverhead covers the boundary and part headers of one file.
	multipartOverhead = 4 << 10
)

// bodyLimit is the request body cap for an upload of maxBatch files of at most
// maxUpload bytes each. Either value <= 0 disables the cap.
func bodyLimit(maxUpload, maxBatch int64) int64 {
	if maxUpload <= 0 || maxBatch <= 0 {
		return 0
	}
	return maxBatch * (maxUpload + multipartOverhead)
}

func setupRouter(registry *gallery.Registry, maxBodyBytes int64) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	global := photos.Global(registry)
	project := photos.Project(registry)
	profilePhoto := registry.Profile()

	r.Route("/api", func(r chi.Router) {
		if maxBodyBytes > 0 {
			r.Use(middleware.RequestSize(maxBodyBytes))
		}

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", photos.HandleGetGallery(global))
			r.Post("/photos", photos.HandleAddPhotos(global))
			r.Delete("/photos/{id}", photos.HandleDeletePhoto(global))
		})

		r.Route("/projects/{project}/gallery", func(r chi.Router) {
			r.Get("/", photos.HandleGetGallery(project))
			r.Post("/photos", photos.HandleAddPhotos(project))
			r.Delete("/photos/{id}", photos.HandleDeletePhoto(project))
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profile.HandleGetProfile(profilePhoto))
			r.Post("/", profile.HandleUploadProfile(profilePhoto))
		})
	})

	r.Get("/gallery", pages.HandleGallery(registry))
	r.Get("/projects/{project}/gallery", pages.HandleProjectGallery(registry))
	r.Get("/profile", pages.HandleProfile(profilePhoto))

	return r
}

func waitForShutdown(srv *http.Server) {
	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	s := <-signalC

	logrus.WithField("signal", s.String()).Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server shutdown failed")
	}
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	listenAddress := flag.String("listen", ":3002", "The address to listen on.")
	logLevel := flag.String("loglevel", "info", "The log level (debug, info, warn, error).")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	maxUpload := stores.EnvInt64("MAX_UPLOAD_BYTES", 0)
	kv := stores.GetStore(context.Background())
	registry := gallery.NewRegistry(
		gallery.NewStore(kv),
		gallery.NewIngestor(gallery.RealClock{}, gallery.ULIDGenerator{}, maxUpload),
	)

	maxBatch := stores.EnvInt64("MAX_BATCH_FILES", defaultMaxBatchFiles)
	maxBody := bodyLimit(maxUpload, maxBatch)
	logrus.WithFields(logrus.Fields{
		"maxUploadBytes": maxUpload,
		"maxBatchFiles":  maxBatch,
		"maxBodyBytes":   maxBody,
	}).Info("Upload limits")
	r := setupRouter(registry, maxBody)

	srv := &http.Server{Addr: *listenAddress, Handler: r}
	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	logrus.Debug("Server is running in the background")
	waitForShutdown(srv)
}
