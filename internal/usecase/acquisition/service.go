package acquisition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/analytics"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/repository"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/storage"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/entity"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/pagination"
)

const (
	EventAcquisitionCompleted = "acquisition_completed"
	EventAcquisitionFailed    = "acquisition_failed"
)

// Metrics observes finished acquisitions.
type Metrics interface {
	ObserveAcquisition(status string, elapsed time.Duration, images int)
}

type ServiceOption func(*Service)

func WithMetrics(m Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// WithSignedURLs makes returned image URLs presigned for ttl instead of the stored public URL.
func WithSignedURLs(ttl time.Duration) ServiceOption {
	return func(s *Service) { s.signedURLTTL = ttl }
}

type Service struct {
	scanner *Scanner
	repo    repository.AcquisitionRepository
	storage storage.ImageStorage
	encoder storage.MosaicEncoder
	tracker analytics.EventTracker
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time

	signedURLTTL time.Duration
}

func NewService(
	scanner *Scanner,
	repo repository.AcquisitionRepository,
	imageStorage storage.ImageStorage,
	encoder storage.MosaicEncoder,
	tracker analytics.EventTracker,
	logger *zap.Logger,
	opts ...ServiceOption,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		scanner: scanner,
		repo:    repo,
		storage: imageStorage,
		encoder: encoder,
		tracker: tracker,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type AcquireInput struct {
	Latitude          float64
	Longitude         float64
	WidthMeters       float64
	HeightMeters      float64
	Direction         valueobject.ViewDirection
	ImageWidth        int
	ImageHeight       int
	MaxMetersPerPixel float64
	StartVersion      *int
}

type AcquiredImage struct {
	Image *entity.AcquisitionImage
	Data  []byte
}

type AcquireResult struct {
	Acquisition *entity.Acquisition
	// Images are ordered newest version first.
	Images []AcquiredImage
}

func (s *Service) Acquire(ctx context.Context, input AcquireInput) (*AcquireResult, error) {
	center, err := valueobject.NewGeoPoint(input.Latitude, input.Longitude)
	if err != nil {
		return nil, err
	}
	if input.WidthMeters <= 0 || input.HeightMeters <= 0 {
		return nil, domain.ErrInvalidAreaSize
	}

	started := s.now()
	scan, err := s.scanner.Scan(ctx, ScanInput{
		Center:            center,
		WidthMeters:       input.WidthMeters,
		HeightMeters:      input.HeightMeters,
		Direction:         input.Direction,
		ImageWidth:        input.ImageWidth,
		ImageHeight:       input.ImageHeight,
		MaxMetersPerPixel: input.MaxMetersPerPixel,
		StartVersion:      input.StartVersion,
	})
	if err == nil && len(scan.Images) == 0 {
		err = domain.ErrNoImageryAvailable
	}
	if err != nil {
		s.track(EventAcquisitionFailed, map[string]any{
			"direction": input.Direction.String(),
			"error":     err.Error(),
		})
		s.observe("failed", started, 0)
		return nil, fmt.Errorf("scanning imagery: %w", err)
	}

	acq := entity.NewAcquisition(center, input.WidthMeters, input.HeightMeters, input.Direction, scan.Zoom, scan.StartVersion)
	payloads := make([][]byte, 0, len(scan.Images))

	for _, mosaic := range scan.Images {
		encoded, err := s.encoder.Encode(mosaic.Raster())
		if err != nil {
			s.cleanup(acq)
			return nil, fmt.Errorf("encoding version %d: %w", mosaic.Version, err)
		}

		filename := Filename(FilenameParams{
			CapturedAt:   started,
			Direction:    input.Direction,
			Version:      mosaic.Version,
			Bounds:       mosaic.Bounds,
			Zoom:         scan.Zoom,
			Center:       center,
			WidthMeters:  input.WidthMeters,
			HeightMeters: input.HeightMeters,
			Extension:    encoded.Extension,
		})
		key := path.Join(acq.ID.String(), filename)
		size := int64(len(encoded.Data))

		if err := s.storage.Upload(ctx, key, bytes.NewReader(encoded.Data), encoded.ContentType, size); err != nil {
			s.cleanup(acq)
			return nil, fmt.Errorf("uploading version %d: %w", mosaic.Version, err)
		}

		img := entity.NewAcquisitionImage(acq.ID, mosaic.Version, filename, key, s.storage.GetURL(key),
			encoded.ContentType, size, encoded.Width, encoded.Height)
		acq.AddImage(*img)
		payloads = append(payloads, encoded.Data)
	}

	if err := s.repo.Create(ctx, acq); err != nil {
		s.cleanup(acq)
		return nil, fmt.Errorf("creating acquisition record: %w", err)
	}

	s.logger.Info("acquisition stored",
		zap.String("acquisition_id", acq.ID.String()),
		zap.Int("images", len(acq.Images)),
		zap.Duration("elapsed", s.now().Sub(started)),
	)
	s.observe("completed", started, len(acq.Images))
	s.track(EventAcquisitionCompleted, map[string]any{
		"acquisition_id": acq.ID.String(),
		"direction":      input.Direction.String(),
		"zoom":           scan.Zoom,
		"images":         len(acq.Images),
		"start_version":  scan.StartVersion,
	})

	if err := s.sign(acq); err != nil {
		return nil, err
	}

	result := &AcquireResult{Acquisition: acq}
	for i := range acq.Images {
		result.Images = append(result.Images, AcquiredImage{Image: &acq.Images[i], Data: payloads[i]})
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Acquisition, error) {
	acq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.sign(acq); err != nil {
		return nil, err
	}
	return acq, nil
}

type ListInput struct {
	Page    int
	PerPage int
}

func (s *Service) List(ctx context.Context, input ListInput) ([]entity.Acquisition, *pagination.Info, error) {
	acquisitions, info, err := s.repo.List(ctx, pagination.NewParams(input.Page, input.PerPage))
	if err != nil {
		return nil, nil, fmt.Errorf("listing acquisitions: %w", err)
	}
	for i := range acquisitions {
		if err := s.sign(&acquisitions[i]); err != nil {
			return nil, nil, err
		}
	}
	return acquisitions, info, nil
}

func (s *Service) sign(acq *entity.Acquisition) error {
	if s.signedURLTTL <= 0 {
		return nil
	}
	for i := range acq.Images {
		url, err := s.storage.GetSignedURL(acq.Images[i].Key, s.signedURLTTL)
		if err != nil {
			return fmt.Errorf("signing image url: %w", err)
		}
		acq.Images[i].URL = url
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	acq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting acquisition record: %w", err)
	}

	var errs []error
	for _, img := range acq.Images {
		if err := s.storage.Delete(ctx, img.Key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return nil
}

// cleanup removes already uploaded images; it runs detached from the request context.
func (s *Service) cleanup(acq *entity.Acquisition) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, img := range acq.Images {
		if err := s.storage.Delete(ctx, img.Key); err != nil {
			s.logger.Warn("failed to remove orphaned image", zap.String("key", img.Key), zap.Error(err))
		}
	}
}

func (s *Service) observe(status string, started time.Time, images int) {
	if s.metrics != nil {
		s.metrics.ObserveAcquisition(status, s.now().Sub(started), images)
	}
}

func (s *Service) track(event string, properties map[string]any) {
	if s.tracker != nil {
		s.tracker.Track(event, properties)
	}
}
