package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/httputil"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/acquisition"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/usecase/analysis"
)

type AcquisitionHandler struct {
	acquisitionSvc   AcquisitionService
	analysisSvc      AnalysisService
	defaultImageSize int
}

func NewAcquisitionHandler(acquisitionSvc AcquisitionService, analysisSvc AnalysisService, defaultImageSize int) *AcquisitionHandler {
	return &AcquisitionHandler{
		acquisitionSvc:   acquisitionSvc,
		analysisSvc:      analysisSvc,
		defaultImageSize: defaultImageSize,
	}
}

func (h *AcquisitionHandler) Create(c *gin.Context) {
	var req request.CreateAcquisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	dir, err := valueobject.ParseViewDirection(req.Direction)
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_DIRECTION", "direction must be one of downward, northward, eastward, southward, westward")
		return
	}

	center, err := valueobject.NewGeoPoint(*req.Latitude, *req.Longitude)
	if err != nil || center.IsNullIsland() {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_LOCATION", "invalid coordinates")
		return
	}

	imageWidth, imageHeight := req.ImageWidth, req.ImageHeight
	if imageWidth == 0 && imageHeight == 0 && req.MaxMetersPerPixel == 0 {
		imageWidth = h.defaultImageSize
	}
	widthMeters, heightMeters := req.Dimensions()

	result, err := h.acquisitionSvc.Acquire(c.Request.Context(), acquisition.AcquireInput{
		Latitude:          center.Latitude,
		Longitude:         center.Longitude,
		WidthMeters:       widthMeters,
		HeightMeters:      heightMeters,
		Direction:         dir,
		ImageWidth:        imageWidth,
		ImageHeight:       imageHeight,
		MaxMetersPerPixel: req.MaxMetersPerPixel,
		StartVersion:      req.StartVersion,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.Created(c, response.AcquisitionFromResult(result, req.WantsData()))
}

func (h *AcquisitionHandler) List(c *gin.Context) {
	var req request.ListAcquisitionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	items, pageInfo, err := h.acquisitionSvc.List(c.Request.Context(), acquisition.ListInput{
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.AcquisitionsListResponse{
		Acquisitions: response.AcquisitionsFromEntities(items),
		Pagination:   response.PaginationFromInfo(pageInfo),
	})
}

func (h *AcquisitionHandler) Get(c *gin.Context) {
	id, ok := acquisitionID(c)
	if !ok {
		return
	}

	acq, err := h.acquisitionSvc.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.AcquisitionFromEntity(acq))
}

func (h *AcquisitionHandler) Delete(c *gin.Context) {
	id, ok := acquisitionID(c)
	if !ok {
		return
	}

	if err := h.acquisitionSvc.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.NoContent(c)
}

func (h *AcquisitionHandler) Analyze(c *gin.Context) {
	id, ok := acquisitionID(c)
	if !ok {
		return
	}

	var req request.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	result, err := h.analysisSvc.Analyze(c.Request.Context(), analysis.AnalyzeInput{
		AcquisitionID: id,
		AnalysisType:  req.AnalysisType,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.AnalysisFromResult(result))
}

func acquisitionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleError(c, apperror.BadRequest("INVALID_ID", "invalid acquisition id"))
		return uuid.Nil, false
	}
	return id, true
}
