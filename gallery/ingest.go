package gallery

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"portfolio-gallery/core"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrTooLarge is returned by Decode when a file exceeds the ingestor's
// per-file limit.
var ErrTooLarge = errors.New("file exceeds upload limit")

// File is one user-selected file.
type File interface {
	Name() string
	// MediaType is the declared type, e.g. "image/png".
	MediaType() string
	Open() (io.ReadCloser, error)
}

// IsImage reports whether a declared media type names an image.
func IsImage(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "image/")
}

// Ingestor turns selected files into photo records.
type Ingestor struct {
	clock    Clock
	ids      IDGenerator
	maxBytes int64
}

// NewIngestor creates an Ingestor. maxBytes <= 0 disables the size limit.
func NewIngestor(clock Clock, ids IDGenerator, maxBytes int64) *Ingestor {
	if clock == nil {
		clock = RealClock{}
	}
	if ids == nil {
		ids = ULIDGenerator{}
	}
	return &Ingestor{clock: clock, ids: ids, maxBytes: maxBytes}
}

// Decode reads f into a data URI and builds its Photo record.
func (in *Ingestor) Decode(ctx context.Context, f File) (core.Photo, error) {
	if err := ctx.Err(); err != nil {
		return core.Photo{}, err
	}
	mediaType, _, err := mime.ParseMediaType(f.MediaType())
	if err != nil {
		return core.Photo{}, fmt.Errorf("decode %s: %w", f.Name(), err)
	}

	rc, err := f.Open()
	if err != nil {
		return core.Photo{}, fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if in.maxBytes > 0 {
		r = io.LimitReader(rc, in.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Photo{}, fmt.Errorf("read %s: %w", f.Name(), err)
	}
	if in.maxBytes > 0 && int64(len(data)) > in.maxBytes {
		return core.Photo{}, fmt.Errorf("decode %s: %w", f.Name(), ErrTooLarge)
	}
	if err := ctx.Err(); err != nil {
		return core.Photo{}, err
	}

	return core.Photo{
		ID:         in.ids.New(),
		Src:        "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Name:       f.Name(),
		UploadDate: in.clock.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

// DecodeBatch decodes every image in files concurrently and waits for all of
// them. Non-image files are skipped and failed decodes are dropped. The
// result keeps selection order.
func (in *Ingestor) DecodeBatch(ctx context.Context, files []File) []core.Photo {
	results := make([]*core.Photo, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		log := logrus.WithFields(logrus.Fields{"file": f.Name(), "media_type": f.MediaType()})
		if !IsImage(f.MediaType()) {
			log.Debug("Skipping non-image file")
			continue
		}

		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			photo, err := in.Decode(ctx, f)
			if err != nil {
				log.WithError(err).Warn("Failed to decode file, skipping")
				return
			}
			results[i] = &photo
		}(i, f)
	}
	wg.Wait()

	photos := make([]core.Photo, 0, len(files))
	for _, p := range results {
		if p != nil {
			photos = append(photos, *p)
		}
	}
	return photos
}

type multipartFile struct {
	fh *multipart.FileHeader
}

func (m multipartFile) Name() string                 { return m.fh.Filename }
func (m multipartFile) MediaType() string            { return m.fh.Header.Get("Content-Type") }
func (m multipartFile) Open() (io.ReadCloser, error) { return m.fh.Open() }

// MultipartFiles adapts uploaded form files to File.
func MultipartFiles(headers []*multipart.FileHeader) []File {
	files := make([]File, 0, len(headers))
	for _, fh := range headers {
		files = append(files, multipartFile{fh: fh})
	}
	return files
}
