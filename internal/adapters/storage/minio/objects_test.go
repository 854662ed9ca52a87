package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMinio struct {
	bucket, object, contentType string
	size                        int64
	removed                     string
	putErr                      error
}

func (f *fakeMinio) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.bucket, f.object, f.size, f.contentType = bucket, object, size, opts.ContentType
	return minio.UploadInfo{Bucket: bucket, Key: object}, f.putErr
}

func (f *fakeMinio) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	f.removed = object
	return nil
}

func TestObjects_Upload(t *testing.T) {
	api := &fakeMinio{}
	o := newObjects(api, Config{Endpoint: "localhost:9000", Bucket: "pets"})

	url, err := o.Upload(context.Background(), "pets/u/1_dog.png", strings.NewReader("x"), 0, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/pets/pets/u/1_dog.png", url)
	assert.Equal(t, int64(-1), api.size)
	assert.Equal(t, "image/png", api.contentType)

	require.NoError(t, o.Delete(context.Background(), "pets/u/1_dog.png"))
	assert.Equal(t, "pets/u/1_dog.png", api.removed)
}

func TestObjects_UploadError(t *testing.T) {
	o := newObjects(&fakeMinio{putErr: errors.New("denied")}, Config{Endpoint: "m:9000", Bucket: "b", UseSSL: true})
	_, err := o.Upload(context.Background(), "p", strings.NewReader("x"), 1, "")
	assert.EqualError(t, err, "denied")
	assert.Equal(t, "https://m:9000/b", o.baseURL)
}
