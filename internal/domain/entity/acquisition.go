package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
)

type Acquisition struct {
	ID           uuid.UUID
	Center       valueobject.GeoPoint
	WidthMeters  float64
	HeightMeters float64
	Direction    valueobject.ViewDirection
	Zoom         int
	StartVersion int
	Images       []AcquisitionImage
	CreatedAt    time.Time
}

func NewAcquisition(center valueobject.GeoPoint, widthMeters, heightMeters float64, direction valueobject.ViewDirection, zoom, startVersion int) *Acquisition {
	return &Acquisition{
		ID:           uuid.New(),
		Center:       center,
		WidthMeters:  widthMeters,
		HeightMeters: heightMeters,
		Direction:    direction,
		Zoom:         zoom,
		StartVersion: startVersion,
		CreatedAt:    time.Now().UTC(),
	}
}

func (a *Acquisition) AddImage(img AcquisitionImage) {
	img.AcquisitionID = a.ID
	a.Images = append(a.Images, img)
}

// Newest returns the image with the highest version, or nil when empty.
func (a *Acquisition) Newest() *AcquisitionImage {
	var newest *AcquisitionImage
	for i := range a.Images {
		if newest == nil || a.Images[i].Version > newest.Version {
			newest = &a.Images[i]
		}
	}
	return newest
}
