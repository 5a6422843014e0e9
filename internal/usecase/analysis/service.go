package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/analytics"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/analyzer"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/storage"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
)

const EventAnalysisCompleted = "analysis_completed"

const (
	DefaultBoxThreshold     = 0.2
	DefaultTextThreshold    = 0.2
	DefaultOverlapThreshold = 0.5
)

type Config struct {
	BoxThreshold     float64
	TextThreshold    float64
	OverlapThreshold float64
}

func (c Config) withDefaults() Config {
	if c.BoxThreshold <= 0 {
		c.BoxThreshold = DefaultBoxThreshold
	}
	if c.TextThreshold <= 0 {
		c.TextThreshold = DefaultTextThreshold
	}
	if c.OverlapThreshold <= 0 {
		c.OverlapThreshold = DefaultOverlapThreshold
	}
	return c
}

type Service struct {
	repo     repository.AcquisitionRepository
	storage  storage.ImageStorage
	analyzer analyzer.Analyzer
	tracker  analytics.EventTracker
	logger   *zap.Logger
	cfg      Config
}

// NewService builds the analysis use case. A nil analyzer makes every call fail with
// domain.ErrAnalyzerUnavailable.
func NewService(
	repo repository.AcquisitionRepository,
	imageStorage storage.ImageStorage,
	az analyzer.Analyzer,
	tracker analytics.EventTracker,
	logger *zap.Logger,
	cfg Config,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		storage:  imageStorage,
		analyzer: az,
		tracker:  tracker,
		logger:   logger,
		cfg:      cfg.withDefaults(),
	}
}

type AnalyzeInput struct {
	AcquisitionID uuid.UUID
	AnalysisType  string
}

type ImageResult struct {
	Filename string
	Version  int
	// Count is the number of boxes left after overlap suppression.
	Count              int
	DetectedCount      int
	Boxes              []Box
	AnnotatedImagePath string
}

type AnalyzeResult struct {
	AcquisitionID uuid.UUID
	AnalysisType  string
	Results       []ImageResult
	TotalCount    int
}

func (s *Service) Analyze(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	if s.analyzer == nil {
		return nil, domain.ErrAnalyzerUnavailable
	}

	analysisType := strings.TrimSpace(input.AnalysisType)
	if analysisType == "" {
		return nil, domain.ErrInvalidAnalysisType
	}

	acq, err := s.repo.GetByID(ctx, input.AcquisitionID)
	if err != nil {
		return nil, err
	}
	if len(acq.Images) == 0 {
		return nil, domain.ErrImageNotFound
	}

	versions := make(map[string]int, len(acq.Images))
	images := make([]analyzer.NamedImage, 0, len(acq.Images))
	for _, img := range acq.Images {
		data, err := s.storage.Download(ctx, img.Key)
		if err != nil {
			return nil, fmt.Errorf("loading image %s: %w", img.Filename, err)
		}
		versions[img.Filename] = img.Version
		images = append(images, analyzer.NamedImage{
			Name:        img.Filename,
			ContentType: img.MimeType,
			Data:        data,
		})
	}

	detections, err := s.analyzer.Analyze(ctx, analyzer.Request{
		AcquisitionID: acq.ID,
		AnalysisType:  analysisType,
		BoxThreshold:  s.cfg.BoxThreshold,
		TextThreshold: s.cfg.TextThreshold,
		Images:        images,
	})
	if err != nil {
		return nil, fmt.Errorf("analyzing images: %w", err)
	}

	result := &AnalyzeResult{AcquisitionID: acq.ID, AnalysisType: analysisType}
	for _, d := range detections {
		boxes := SuppressOverlaps(d.Boxes, s.cfg.OverlapThreshold)
		result.Results = append(result.Results, ImageResult{
			Filename:           d.Name,
			Version:            versions[d.Name],
			Count:              len(boxes),
			DetectedCount:      d.Count,
			Boxes:              boxes,
			AnnotatedImagePath: d.AnnotatedImagePath,
		})
		result.TotalCount += len(boxes)
	}

	s.logger.Info("analysis completed",
		zap.String("acquisition_id", acq.ID.String()),
		zap.String("analysis_type", analysisType),
		zap.Int("images", len(images)),
		zap.Int("total_count", result.TotalCount),
	)
	if s.tracker != nil {
		s.tracker.Track(EventAnalysisCompleted, map[string]any{
			"acquisition_id": acq.ID.String(),
			"analysis_type":  analysisType,
			"images":         len(images),
			"total_count":    result.TotalCount,
		})
	}

	return result, nil
}
