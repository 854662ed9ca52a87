package storage

import "context"

// DocumentStore es el almacén externo de documentos.
// Solo se usa Create: no hay lectura/edición/borrado de reportes en este servicio.
type DocumentStore interface {
	// Create persiste doc en collection y devuelve el id asignado por el store.
	Create(ctx context.Context, collection string, doc any) (string, error)
}
