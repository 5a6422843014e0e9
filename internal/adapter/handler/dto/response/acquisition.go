package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/entity"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/pagination"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/acquisition"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/analysis"
)

type ImageResponse struct {
	ID        uuid.UUID `json:"id"`
	Version   int       `json:"version"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Data      []byte    `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AcquisitionResponse struct {
	ID           uuid.UUID        `json:"image_id"`
	Center       LocationResponse `json:"center"`
	WidthMeters  float64          `json:"width_meters"`
	HeightMeters float64          `json:"height_meters"`
	Direction    string           `json:"direction"`
	Zoom         int              `json:"zoom"`
	StartVersion int              `json:"start_version"`
	Images       []ImageResponse  `json:"images"`
	CreatedAt    time.Time        `json:"created_at"`
}

type PaginationResponse struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

type AcquisitionsListResponse struct {
	Acquisitions []AcquisitionResponse `json:"acquisitions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

func ImageFromEntity(img *entity.AcquisitionImage) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		Version:   img.Version,
		Filename:  img.Filename,
		URL:       img.URL,
		MimeType:  img.MimeType,
		Size:      img.Size,
		Width:     img.Width,
		Height:    img.Height,
		CreatedAt: img.CreatedAt,
	}
}

func AcquisitionFromEntity(a *entity.Acquisition) AcquisitionResponse {
	resp := AcquisitionResponse{
		ID:           a.ID,
		Center:       LocationResponse{Latitude: a.Center.Latitude, Longitude: a.Center.Longitude},
		WidthMeters:  a.WidthMeters,
		HeightMeters: a.HeightMeters,
		Direction:    a.Direction.String(),
		Zoom:         a.Zoom,
		StartVersion: a.StartVersion,
		Images:       make([]ImageResponse, 0, len(a.Images)),
		CreatedAt:    a.CreatedAt,
	}
	for i := range a.Images {
		resp.Images = append(resp.Images, ImageFromEntity(&a.Images[i]))
	}
	return resp
}

// AcquisitionFromResult embeds the encoded images when withData is set.
func AcquisitionFromResult(r *acquisition.AcquireResult, withData bool) AcquisitionResponse {
	resp := AcquisitionFromEntity(r.Acquisition)
	if !withData {
		return resp
	}
	for i, img := range r.Images {
		if i < len(resp.Images) {
			resp.Images[i].Data = img.Data
		}
	}
	return resp
}

func AcquisitionsFromEntities(items []entity.Acquisition) []AcquisitionResponse {
	result := make([]AcquisitionResponse, 0, len(items))
	for i := range items {
		result = append(result, AcquisitionFromEntity(&items[i]))
	}
	return result
}

func PaginationFromInfo(info *pagination.Info) PaginationResponse {
	return PaginationResponse{
		Page:       info.Page,
		PerPage:    info.PerPage,
		TotalItems: info.TotalItems,
		TotalPages: info.TotalPages,
		HasNext:    info.HasNext,
		HasPrev:    info.HasPrev,
	}
}

type DetectionResponse struct {
	Filename           string       `json:"filename"`
	Version            int          `json:"version"`
	Count              int          `json:"count"`
	DetectedCount      int          `json:"detected_count"`
	Boxes              [][4]float64 `json:"boxes"`
	AnnotatedImagePath string       `json:"annotated_image_path,omitempty"`
}

type AnalysisResponse struct {
	ID           uuid.UUID           `json:"image_id"`
	AnalysisType string              `json:"analysis_type"`
	Results      []DetectionResponse `json:"results"`
	TotalCount   int                 `json:"total_count"`
}

func AnalysisFromResult(r *analysis.AnalyzeResult) AnalysisResponse {
	resp := AnalysisResponse{
		ID:           r.AcquisitionID,
		AnalysisType: r.AnalysisType,
		Results:      make([]DetectionResponse, 0, len(r.Results)),
		TotalCount:   r.TotalCount,
	}
	for _, res := range r.Results {
		boxes := res.Boxes
		if boxes == nil {
			boxes = [][4]float64{}
		}
		resp.Results = append(resp.Results, DetectionResponse{
			Filename:           res.Filename,
			Version:            res.Version,
			Count:              res.Count,
			DetectedCount:      res.DetectedCount,
			Boxes:              boxes,
			AnnotatedImagePath: res.AnnotatedImagePath,
		})
	}
	return resp
}
