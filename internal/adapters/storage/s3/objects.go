package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type api interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Objects sube las fotos a un bucket de S3.
type Objects struct {
	client  api
	bucket  string
	baseURL string
}

// NewObjects: publicBaseURL (CDN) es opcional; sin él la URL es la virtual-hosted del bucket.
func NewObjects(client *s3.Client, bucket, region, publicBaseURL string) *Objects {
	return newObjects(client, bucket, region, publicBaseURL)
}

func newObjects(client api, bucket, region, publicBaseURL string) *Objects {
	base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &Objects{client: client, bucket: bucket, baseURL: base}
}

func (o *Objects) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(path),
		Body:   r,
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := o.client.PutObject(ctx, in); err != nil {
		return "", err
	}
	return o.baseURL + "/" + path, nil
}

func (o *Objects) Delete(ctx context.Context, path string) error {
	_, err := o.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(path),
	})
	return err
}
