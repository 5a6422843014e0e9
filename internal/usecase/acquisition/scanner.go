package acquisition

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/provider"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
)

const (
	DefaultVersion         = 908
	DefaultObliqueVersion  = 131
	DefaultStreakThreshold = 3
)

type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeMissing   Outcome = "missing"
)

// VersionOutcome records what the scan decided for one version.
type VersionOutcome struct {
	Version int
	Outcome Outcome
	Missing int
	Total   int
}

type VersionRecorder interface {
	RecordVersion(outcome string)
}

type ScanOptions struct {
	// IdenticalThreshold is the number of consecutive versions with identical corners
	// after which versions are skipped instead of downloaded.
	IdenticalThreshold int
	// MissingThreshold is the number of consecutive unreachable versions tolerated
	// before the scan assumes the end of the provider's history.
	MissingThreshold int
	StopAfterFirst   bool
	MinVersion       int

	FallbackVersion        int
	FallbackObliqueVersion int
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.IdenticalThreshold <= 0 {
		o.IdenticalThreshold = DefaultStreakThreshold
	}
	if o.MissingThreshold <= 0 {
		o.MissingThreshold = DefaultStreakThreshold
	}
	if o.MinVersion < 0 {
		o.MinVersion = 0
	}
	if o.FallbackVersion <= 0 {
		o.FallbackVersion = DefaultVersion
	}
	if o.FallbackObliqueVersion <= 0 {
		o.FallbackObliqueVersion = DefaultObliqueVersion
	}
	return o
}

type ScannerConfig struct {
	Fetcher  imagery.TileFetcher
	Versions provider.LatestVersionProvider
	Observer imagery.Observer
	Recorder VersionRecorder
	Logger   *zap.Logger
	Options  ScanOptions
}

// Scanner walks imagery versions from the newest backwards and collects every
// distinct mosaic it can reach.
type Scanner struct {
	fetcher  imagery.TileFetcher
	versions provider.LatestVersionProvider
	observer imagery.Observer
	recorder VersionRecorder
	logger   *zap.Logger
	opts     ScanOptions
}

func NewScanner(cfg ScannerConfig) *Scanner {
	s := &Scanner{
		fetcher:  cfg.Fetcher,
		versions: cfg.Versions,
		observer: cfg.Observer,
		recorder: cfg.Recorder,
		logger:   cfg.Logger,
		opts:     cfg.Options.withDefaults(),
	}
	if s.observer == nil {
		s.observer = imagery.NopObserver
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

type ScanInput struct {
	Center       valueobject.GeoPoint
	WidthMeters  float64
	HeightMeters float64
	Direction    valueobject.ViewDirection
	// ImageWidth and ImageHeight are the output size in pixels. When only one is set
	// the other follows the area's aspect ratio; when neither is set the mosaic keeps
	// its native resolution.
	ImageWidth        int
	ImageHeight       int
	MaxMetersPerPixel float64
	StartVersion      *int
}

type ScanResult struct {
	Zoom         int
	Rect         valueobject.GeoRect
	StartVersion int
	// Images are ordered newest version first.
	Images   []*imagery.MosaicImage
	Versions []VersionOutcome
}

func (s *Scanner) Scan(ctx context.Context, in ScanInput) (*ScanResult, error) {
	if !in.Direction.IsValid() {
		return nil, domain.ErrInvalidDirection
	}
	if !in.Center.IsValid() || math.Abs(in.Center.Latitude) > imagery.MaxLatitude {
		return nil, fmt.Errorf("%w: latitude %v is outside tile coverage", domain.ErrInvalidLocation, in.Center.Latitude)
	}

	geoWidth, geoHeight := in.WidthMeters, in.HeightMeters
	if in.Direction.SwapsAxes() {
		geoWidth, geoHeight = geoHeight, geoWidth
	}
	rect, err := valueobject.AroundPoint(in.Center, geoWidth, geoHeight)
	if err != nil {
		return nil, err
	}

	maxMPP := in.MaxMetersPerPixel
	if maxMPP <= 0 {
		maxMPP = imagery.MaxMetersPerPixel(in.WidthMeters, in.HeightMeters, in.ImageWidth, in.ImageHeight, in.Direction)
	}
	zoom, err := imagery.ComputeZoomLevel(in.Center.Latitude, maxMPP)
	if err != nil {
		return nil, err
	}

	start := s.startVersion(ctx, in)
	result := &ScanResult{Zoom: zoom, Rect: rect, StartVersion: start}
	outW, outH := outputSize(in)

	logger := s.logger.With(
		zap.Stringer("center", in.Center),
		zap.Stringer("direction", in.Direction),
		zap.Int("zoom", zoom),
	)
	logger.Info("scanning imagery versions", zap.Int("start_version", start), zap.Float64("max_meters_per_pixel", maxMPP))

	var previous *imagery.TileGrid
	skipped, identical := 0, 0

	for version := start; version >= s.opts.MinVersion; version-- {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("scanning versions: %w", err)
		}

		grid := imagery.NewGrid(rect, zoom, in.Direction, version, imagery.WithObserver(s.observer))
		mosaic, err := s.acquireVersion(ctx, grid, previous, &identical, rect, outW, outH)

		var missing *imagery.MissingTilesError
		switch {
		case err == nil && mosaic == nil:
			s.record(result, VersionOutcome{Version: version, Outcome: OutcomeDuplicate})
			logger.Info("imagery identical to newer version, skipping", zap.Int("version", version), zap.Int("identical_streak", identical))

		case err == nil:
			result.Images = append(result.Images, mosaic)
			previous = grid
			skipped = 0
			s.record(result, VersionOutcome{Version: version, Outcome: OutcomeAccepted})
			logger.Info("version acquired", zap.Int("version", version), zap.Int("width", mosaic.Width()), zap.Int("height", mosaic.Height()))
			if s.opts.StopAfterFirst {
				return result, nil
			}

		case errors.As(err, &missing):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, fmt.Errorf("scanning versions: %w", ctxErr)
			}
			s.record(result, VersionOutcome{Version: version, Outcome: OutcomeMissing, Missing: missing.Missing, Total: missing.Total})
			logger.Warn("version unreachable", zap.Int("version", version), zap.Int("missing", missing.Missing), zap.Int("total", missing.Total))

			if version == start {
				return result, fmt.Errorf("%w: version %d: %w", domain.ErrNoImageryAvailable, version, err)
			}
			if skipped < s.opts.MissingThreshold {
				skipped++
				continue
			}
			logger.Info("end of version history reached", zap.Int("last_version", version), zap.Int("images", len(result.Images)))
			return result, nil

		default:
			return result, fmt.Errorf("acquiring version %d: %w", version, err)
		}
	}

	return result, nil
}

// acquireVersion returns a nil mosaic and nil error when the version is skipped as a duplicate.
func (s *Scanner) acquireVersion(
	ctx context.Context,
	grid, previous *imagery.TileGrid,
	identical *int,
	rect valueobject.GeoRect,
	outW, outH int,
) (*imagery.MosaicImage, error) {
	if previous != nil {
		same, err := grid.CornersIdenticalTo(ctx, s.fetcher, previous)
		if err != nil {
			return nil, err
		}
		if same {
			*identical++
			if *identical >= s.opts.IdenticalThreshold {
				return nil, nil
			}
		} else {
			*identical = 0
		}
	}

	if err := grid.Download(ctx, s.fetcher); err != nil {
		return nil, err
	}

	mosaic, err := grid.Stitch()
	if err != nil {
		return nil, fmt.Errorf("stitching: %w", err)
	}
	if err := mosaic.Crop(grid.Zoom(), grid.Direction(), rect); err != nil {
		return nil, fmt.Errorf("cropping: %w", err)
	}
	if outW > 0 && outH > 0 {
		if err := mosaic.Scale(outW, outH); err != nil {
			return nil, fmt.Errorf("scaling: %w", err)
		}
	}

	return mosaic, nil
}

func (s *Scanner) startVersion(ctx context.Context, in ScanInput) int {
	if in.StartVersion != nil {
		return *in.StartVersion
	}

	fallback := s.opts.FallbackVersion
	if in.Direction.IsOblique() {
		fallback = s.opts.FallbackObliqueVersion
	}
	if s.versions == nil {
		return fallback
	}

	version, err := s.versions.LatestVersion(ctx, in.Direction)
	if err != nil {
		s.logger.Warn("version discovery failed, using fallback",
			zap.Error(err),
			zap.Stringer("direction", in.Direction),
			zap.Int("fallback_version", fallback),
		)
		return fallback
	}
	return version
}

func (s *Scanner) record(result *ScanResult, outcome VersionOutcome) {
	result.Versions = append(result.Versions, outcome)
	if s.recorder != nil {
		s.recorder.RecordVersion(string(outcome.Outcome))
	}
}

func outputSize(in ScanInput) (int, int) {
	w, h := in.ImageWidth, in.ImageHeight
	f := in.Direction.Foreshortening()

	switch {
	case w > 0 && h > 0:
		return w, h
	case w > 0 && in.WidthMeters > 0:
		return w, int(math.Round(in.HeightMeters * float64(w) / in.WidthMeters / f))
	case h > 0 && in.HeightMeters > 0:
		return int(math.Round(in.WidthMeters * float64(h) / in.HeightMeters * f)), h
	default:
		return 0, 0
	}
}
