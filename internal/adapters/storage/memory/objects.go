package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
)

type object struct {
	data        []byte
	contentType string
}

// Objects es un ObjectStore en memoria. Las URLs apuntan a Handler.
type Objects struct {
	mu      sync.RWMutex
	byPath  map[string]object
	baseURL string
}

func NewObjects(baseURL string) *Objects {
	return &Objects{
		byPath:  make(map[string]object),
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

func (s *Objects) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return "", errors.New("object path required")
	}

	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.byPath[path] = object{data: buf.Bytes(), contentType: contentType}
	s.mu.Unlock()

	return s.baseURL + "/" + path, nil
}

func (s *Objects) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if _, ok := s.byPath[path]; !ok {
		return ErrNotFound
	}
	delete(s.byPath, path)
	return nil
}

// Has es para tests.
func (s *Objects) Has(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byPath[path]
	return ok
}

// Handler sirve los objetos bajo prefix (p.ej. "/objects").
func (s *Objects) Handler(prefix string) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimLeft(strings.TrimPrefix(r.URL.Path, prefix), "/")

		s.mu.RLock()
		obj, ok := s.byPath[path]
		s.mu.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}

		ct := obj.contentType
		if ct == "" {
			ct = http.DetectContentType(obj.data)
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		_, _ = w.Write(obj.data)
	})
}
