package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	// imageFolder prefixes every listing image key
	imageFolder = "properties"

	// MaxImageSize caps a single uploaded image at 5 MB
	MaxImageSize = 5 << 20
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// S3Storage is the media store: listing images live in an S3 bucket and are
// referenced by URL from property records.
//
// Objects are stored under extensionless keys ("properties/<uuid>") so that
// the identifier derivation contract (last URL path segment minus any
// extension) reconstructs the exact object key. Content type comes from the
// upload, not the key.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// Static credentials when provided, default credential chain otherwise
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		cfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(region),
		)
		if err != nil {
			cfg = aws.Config{Region: region}
		}
	}

	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Upload stores one multipart image and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if err := validateContentType(contentType); err != nil {
		return "", err
	}
	if file.Size > MaxImageSize {
		return "", fmt.Errorf("file size %d exceeds maximum allowed size of %d bytes", file.Size, MaxImageSize)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("%s/%s", imageFolder, uuid.New().String())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return s.objectURL(key), nil
}

// Delete removes the object with the given identifier. Callers treat delete
// failures as non-fatal; a missing object is a silent no-op on the S3 side.
func (s *S3Storage) Delete(ctx context.Context, objectID string) error {
	key := fmt.Sprintf("%s/%s", imageFolder, objectID)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) objectURL(key string) string {
	if s.baseURL != "" {
		// CloudFront or custom domain
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.baseURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
}

// ObjectIDFromURL derives a storage object identifier from a stored image
// URL: the last path segment with any trailing extension removed. This is a
// documented contract with Upload's key scheme; if a URL was stored under a
// different convention the later delete simply no-ops against a nonexistent
// id, which is acceptable for best-effort cleanup.
func ObjectIDFromURL(url string) string {
	name := path.Base(url)
	return strings.TrimSuffix(name, path.Ext(name))
}

func validateContentType(contentType string) error {
	for _, allowed := range allowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}
