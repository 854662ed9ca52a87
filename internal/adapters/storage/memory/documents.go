package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// Documents es un DocumentStore en memoria (dev/tests).
type Documents struct {
	mu   sync.RWMutex
	byID map[string]map[string]any // collection -> id -> doc
}

func NewDocuments() *Documents {
	return &Documents{byID: make(map[string]map[string]any)}
}

func (s *Documents) Create(ctx context.Context, collection string, doc any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return "", errors.New("collection required")
	}
	if doc == nil {
		return "", errors.New("document required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.byID[collection]
	if !ok {
		col = make(map[string]any)
		s.byID[collection] = col
	}
	id := uuid.NewString()
	col[id] = doc
	return id, nil
}

// Get devuelve un documento guardado (lo usan tests y el modo dev).
func (s *Documents) Get(collection, id string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.byID[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *Documents) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID[collection])
}
