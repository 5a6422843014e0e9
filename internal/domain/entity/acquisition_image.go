package entity

import (
	"time"

	"github.com/google/uuid"
)

type AcquisitionImage struct {
	ID            uuid.UUID
	AcquisitionID uuid.UUID
	Version       int
	Filename      string
	Key           string
	URL           string
	MimeType      string
	Size          int64
	Width         int
	Height        int
	CreatedAt     time.Time
}

func NewAcquisitionImage(acquisitionID uuid.UUID, version int, filename, key, url, mimeType string, size int64, width, height int) *AcquisitionImage {
	return &AcquisitionImage{
		ID:            uuid.New(),
		AcquisitionID: acquisitionID,
		Version:       version,
		Filename:      filename,
		Key:           key,
		URL:           url,
		MimeType:      mimeType,
		Size:          size,
		Width:         width,
		Height:        height,
		CreatedAt:     time.Now().UTC(),
	}
}
