package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const documentsTable = "documents"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Documents guarda cada documento como JSONB en la tabla documents.
type Documents struct {
	db  *sql.DB
	now func() time.Time
}

func NewDocuments(db *sql.DB) *Documents {
	return &Documents{db: db, now: time.Now}
}

func (s *Documents) Create(ctx context.Context, collection string, doc any) (string, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return "", errors.New("collection required")
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := uuid.NewString()
	query, args, err := insertDocument(id, collection, body, s.now().UTC())
	if err != nil {
		return "", err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

func insertDocument(id, collection string, body []byte, createdAt time.Time) (string, []any, error) {
	return psql.Insert(documentsTable).
		Columns("id", "collection", "body", "created_at").
		Values(id, collection, string(body), createdAt).
		ToSql()
}
