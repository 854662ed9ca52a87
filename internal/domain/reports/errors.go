package reports

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidStatus    = errors.New("status must be Lost or Found")
	ErrInvalidGender    = errors.New("gender must be Male, Female, Unknown or empty")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")

	ErrInvalidCoordinates = errors.New("coordinates must be within 0..100")
)

// MissingFieldsError lista los campos requeridos vacíos.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// UploadError: falló la subida de la foto. No se creó ningún documento.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload photo %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistenceError: falló la creación del documento (la foto pudo haberse subido).
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("create report: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
