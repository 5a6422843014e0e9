package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

// Mosaics are never rewritten under the same key.
const mosaicCacheControl = "public, max-age=31536000, immutable"

const presignTimeout = 5 * time.Second

// S3Storage keeps acquisition mosaics in a bucket, optionally under a key prefix.
type S3Storage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	prefix    string
	baseURL   string
}

func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.UsePathStyle,
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	baseURL := strings.TrimRight(cfg.PublicURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Storage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.KeyPrefix, "/"),
		baseURL:   baseURL,
	}, nil
}

func (s *S3Storage) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func (s *S3Storage) Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.objectKey(key)),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String(mosaicCacheControl),
	})
	if err != nil {
		return fmt.Errorf("putting mosaic %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("getting mosaic %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading mosaic %s: %w", key, err)
	}
	return data, nil
}

func (s *S3Storage) GetURL(key string) string {
	u, err := url.JoinPath(s.baseURL, s.objectKey(key))
	if err != nil {
		return s.baseURL + "/" + s.objectKey(key)
	}
	return u
}

func (s *S3Storage) GetSignedURL(key string, expiry time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), presignTimeout)
	defer cancel()

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presigning mosaic %s: %w", key, err)
	}
	return req.URL, nil
}

// Delete succeeds when the object is already gone.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil && !isMissingObject(err) {
		return fmt.Errorf("deleting mosaic %s: %w", key, err)
	}
	return nil
}

func isMissingObject(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}
