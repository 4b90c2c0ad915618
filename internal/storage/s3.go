package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Options configures where cover images live and how their public
// URLs are built.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	// BaseURL is the public root under which objects are reachable, e.g.
	// https://bucket.s3.us-east-1.amazonaws.com or a custom endpoint.
	BaseURL string
}

// S3Service stores cover images in Amazon S3 (or compatible APIs).
type S3Service struct {
	client   *s3.Client
	uploader *manager.Uploader
	opts     S3Options
}

func NewS3Service(client *s3.Client, opts S3Options) *S3Service {
	opts.KeyPrefix = strings.Trim(opts.KeyPrefix, "/")
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	return &S3Service{
		client:   client,
		uploader: manager.NewUploader(client),
		opts:     opts,
	}
}

func (s *S3Service) UploadCover(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if s.opts.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	key := uuid.NewString() + strings.ToLower(path.Ext(filename))
	if s.opts.KeyPrefix != "" {
		key = s.opts.KeyPrefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}

	return s.opts.BaseURL + "/" + key, nil
}

// DeleteCover removes a previously uploaded cover. URLs that do not
// point into this service's bucket are ignored.
func (s *S3Service) DeleteCover(ctx context.Context, coverURL string) error {
	key, ok := s.keyFromURL(coverURL)
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete cover: %w", err)
	}
	return nil
}

func (s *S3Service) keyFromURL(coverURL string) (string, bool) {
	if s.opts.BaseURL == "" || !strings.HasPrefix(coverURL, s.opts.BaseURL+"/") {
		return "", false
	}
	key := strings.TrimPrefix(coverURL, s.opts.BaseURL+"/")
	if key == "" {
		return "", false
	}
	return key, true
}

var _ Service = (*S3Service)(nil)
