package reports

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"pet-lost-found/internal/platform/logger"
	"pet-lost-found/internal/ports/storage"
)

type Service struct {
	docs    storage.DocumentStore
	objects storage.ObjectStore
	log     logger.Logger
	now     func() time.Time
}

func NewService(docs storage.DocumentStore, objects storage.ObjectStore, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		docs:    docs,
		objects: objects,
		log:     log.With(map[string]any{"component": "reports"}),
		now:     time.Now,
	}
}

// Submit corre el pipeline: (foto) -> documento -> id.
// Orden garantizado: la subida termina antes de armar el documento; si falla, no se crea nada.
func (s *Service) Submit(ctx context.Context, draft Draft, photo *Upload, userID string) (Report, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Report{}, ErrNotAuthenticated
	}

	now := s.now()

	// 1) Foto
	var (
		photoURL  *string
		photoPath string
	)
	if photo != nil {
		photoPath = ObjectPath(userID, photo.Filename, now)
		url, err := s.objects.Upload(ctx, photoPath, photo.Body, photo.Size, photo.ContentType)
		if err != nil {
			return Report{}, &UploadError{Path: photoPath, Err: err}
		}
		photoURL = &url
	}

	// 2) Documento
	rec := Record{
		Attributes: draft.Attributes,
		Photo:      photoURL,
		UserID:     userID,
		CreatedAt:  now.UTC(),
	}

	// 3) Persistir
	id, err := s.docs.Create(ctx, Collection, rec)
	if err != nil {
		if photoURL != nil {
			s.compensate(ctx, photoPath)
		}
		return Report{}, &PersistenceError{Err: err}
	}
	if strings.TrimSpace(id) == "" {
		if photoURL != nil {
			s.compensate(ctx, photoPath)
		}
		return Report{}, &PersistenceError{Err: fmt.Errorf("document store returned empty id")}
	}

	s.log.Info("report created", map[string]any{
		"report_id": id,
		"user_id":   userID,
		"status":    string(draft.Status),
		"has_photo": photoURL != nil,
	})

	// 4) View-model local, sin volver a leer del store.
	p := draft.Photo
	if p.IsZero() && photoURL != nil {
		p = RemotePhoto(*photoURL)
	}
	return Report{
		Attributes: draft.Attributes,
		ID:         id,
		UserID:     userID,
		Photo:      p,
		CreatedAt:  rec.CreatedAt,
	}, nil
}

// compensate borra (best-effort) la foto huérfana de un documento que no se pudo crear.
func (s *Service) compensate(ctx context.Context, objectPath string) {
	if err := s.objects.Delete(context.WithoutCancel(ctx), objectPath); err != nil {
		s.log.Warn("orphan photo not deleted", map[string]any{
			"path":  objectPath,
			"error": err.Error(),
		})
	}
}

// ObjectPath arma pets/<user>/<unixMillis>_<archivo>.
func ObjectPath(userID, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "photo"
	}
	return fmt.Sprintf("%s/%s/%d_%s", Collection, userID, now.UnixMilli(), name)
}
