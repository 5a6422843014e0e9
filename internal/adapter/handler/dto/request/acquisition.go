package request

const DefaultSizeMeters = 1000

type CreateAcquisitionRequest struct {
	Latitude          *float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude         *float64 `json:"longitude" binding:"required,min=-180,max=180"`
	SizeMeters        float64  `json:"size_meters" binding:"omitempty,gt=0,max=20000"`
	WidthMeters       float64  `json:"width_meters" binding:"omitempty,gt=0,max=20000"`
	HeightMeters      float64  `json:"height_meters" binding:"omitempty,gt=0,max=20000"`
	Direction         string   `json:"direction" binding:"omitempty,max=16"`
	ImageWidth        int      `json:"image_width" binding:"omitempty,min=1,max=8192"`
	ImageHeight       int      `json:"image_height" binding:"omitempty,min=1,max=8192"`
	MaxMetersPerPixel float64  `json:"max_meters_per_pixel" binding:"omitempty,gt=0"`
	StartVersion      *int     `json:"start_version" binding:"omitempty,min=0"`
	IncludeData       *bool    `json:"include_data"`
}

// Dimensions resolves the area size: explicit width/height win over size_meters.
func (r CreateAcquisitionRequest) Dimensions() (float64, float64) {
	size := r.SizeMeters
	if size == 0 {
		size = DefaultSizeMeters
	}
	w, h := r.WidthMeters, r.HeightMeters
	if w == 0 {
		w = size
	}
	if h == 0 {
		h = size
	}
	return w, h
}

func (r CreateAcquisitionRequest) WantsData() bool {
	return r.IncludeData == nil || *r.IncludeData
}

type ListAcquisitionsRequest struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=100"`
}

type AnalyzeRequest struct {
	AnalysisType string `json:"analysis_type" binding:"required,max=64"`
}
