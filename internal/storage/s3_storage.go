package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ren89/property-listing-app/internal/config"
)

// IBlobStorage defines the interface for property image storage.
type IBlobStorage interface {
	// Upload stores an image and returns its public URL.
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	// Delete removes previously uploaded images by their public URLs.
	// It keeps going past individual failures and reports them together.
	Delete(ctx context.Context, urls []string) error
}

// s3Storage implements IBlobStorage.
type s3Storage struct {
	cfg      *config.Config
	s3Client *s3.Client
}

// NewS3Storage creates a new S3 storage service.
func NewS3Storage(cfg *config.Config) (IBlobStorage, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		// Use static credentials from config for simplicity
		// For production, prefer IAM roles or other secure credential methods
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"", // session token
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3Storage{
		cfg:      cfg,
		s3Client: s3.NewFromConfig(awsCfg),
	}, nil
}

// Upload puts the object under properties/<timestamp>-<random>.<ext> and
// returns the public URL the listing record will reference.
func (s *s3Storage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "bin"
	}
	objectKey := fmt.Sprintf("properties/%d-%s.%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AwsS3Bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectKey, err)
	}

	return s.publicURL(objectKey), nil
}

// Delete removes each object named by the given public URLs. URLs that do
// not belong to this bucket are skipped.
func (s *s3Storage) Delete(ctx context.Context, urls []string) error {
	var failed []string
	for _, u := range urls {
		key := s.objectKey(u)
		if key == "" {
			continue
		}
		_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.cfg.AwsS3Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to delete %d object(s): %s", len(failed), strings.Join(failed, "; "))
	}
	return nil
}

func (s *s3Storage) publicURL(objectKey string) string {
	if s.cfg.ImageBaseURL != "" {
		return strings.TrimSuffix(s.cfg.ImageBaseURL, "/") + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AwsS3Bucket, s.cfg.AwsRegion, objectKey)
}

// objectKey recovers the bucket key from a public URL. Only URLs under the
// configured base (or the bucket's default S3 endpoint) are recognised.
func (s *s3Storage) objectKey(url string) string {
	prefixes := []string{
		strings.TrimSuffix(s.cfg.ImageBaseURL, "/") + "/",
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.cfg.AwsS3Bucket, s.cfg.AwsRegion),
	}
	for _, p := range prefixes {
		if p != "/" && strings.HasPrefix(url, p) {
			return strings.TrimPrefix(url, p)
		}
	}
	return ""
}
