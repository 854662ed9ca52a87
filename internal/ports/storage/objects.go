package storage

import (
	"context"
	"io"
)

// ObjectStore guarda binarios (fotos) y devuelve una URL pública durable.
type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error)

	// Delete se usa solo como compensación cuando falla la creación del documento.
	Delete(ctx context.Context, path string) error
}
