package storage

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	adapterstorage "github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/storage"
)

const DefaultJPEGQuality = 90

type JPEGEncoder struct {
	quality int
}

func NewJPEGEncoder(quality int) *JPEGEncoder {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &JPEGEncoder{quality: quality}
}

func (e *JPEGEncoder) Encode(img image.Image) (*adapterstorage.EncodedImage, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("encoding jpeg: empty image")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(e.quality)); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}

	return &adapterstorage.EncodedImage{
		Data:        buf.Bytes(),
		ContentType: "image/jpeg",
		Extension:   ".jpg",
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}
