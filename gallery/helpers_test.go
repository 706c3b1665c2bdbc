package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"portfolio-gallery/stores/memory"
	"sync"
	"time"
)

type fakeFile struct {
	name      string
	mediaType string
	data      []byte
	openErr   error
	// gate, when set, blocks Open until it is closed. opened is closed as
	// soon as Open is entered.
	gate   chan struct{}
	opened chan struct{}
}

func imageFile(name string) *fakeFile {
	return &fakeFile{name: name, mediaType: "image/png", data: []byte("png:" + name)}
}

func textFile(name string) *fakeFile {
	return &fakeFile{name: name, mediaType: "text/plain", data: []byte("hello")}
}

func (f *fakeFile) Name() string      { return f.name }
func (f *fakeFile) MediaType() string { return f.mediaType }
func (f *fakeFile) Open() (io.ReadCloser, error) {
	if f.opened != nil {
		close(f.opened)
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

var errUnreadable = errors.New("unreadable")

// seqIDs hands out photo-1, photo-2, ...
type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("photo-%d", s.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func newTestIngestor() *Ingestor {
	return NewIngestor(fixedClock{testTime}, &seqIDs{}, 0)
}

func newTestStore() *Store {
	return NewStore(memory.NewStore(0))
}

func files(fs ...*fakeFile) []File {
	out := make([]File, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}
