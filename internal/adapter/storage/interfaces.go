package storage

import (
	"context"
	"image"
	"io"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/storage_mocks.go -package=mocks

type ImageStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string, size int64) error
	Download(ctx context.Context, key string) ([]byte, error)
	GetURL(key string) string
	GetSignedURL(key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type EncodedImage struct {
	Data        []byte
	ContentType string
	Extension   string
	Width       int
	Height      int
}

type MosaicEncoder interface {
	Encode(img image.Image) (*EncodedImage, error)
}
