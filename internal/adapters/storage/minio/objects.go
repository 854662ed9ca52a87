package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

type api interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// Objects sube las fotos a un bucket de MinIO.
type Objects struct {
	client  api
	bucket  string
	baseURL string
}

// New crea el cliente y el bucket si no existe.
func New(ctx context.Context, cfg Config) (*Objects, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return newObjects(client, cfg), nil
}

func newObjects(client api, cfg Config) *Objects {
	base := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &Objects{client: client, bucket: cfg.Bucket, baseURL: base}
}

func (o *Objects) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	if size <= 0 {
		size = -1 // tamaño desconocido: multipart
	}
	_, err := o.client.PutObject(ctx, o.bucket, path, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return o.baseURL + "/" + path, nil
}

func (o *Objects) Delete(ctx context.Context, path string) error {
	return o.client.RemoveObject(ctx, o.bucket, path, minio.RemoveObjectOptions{})
}
