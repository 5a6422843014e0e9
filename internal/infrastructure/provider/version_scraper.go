package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/karlseguin/ccache/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/valueobject"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

var ErrVersionNotFound = errors.New("version not found in client bundle")

const (
	maxBundleBytes       = 16 << 20
	defaultLookupTimeout = 10 * time.Second
)

var (
	downwardVersionPattern = regexp.MustCompile(`null,\[\["https:\/\/khms0\.googleapis\.com\/kh\?v=([0-9]+)`)
	obliqueVersionPattern  = regexp.MustCompile(`\],\[\["https:\/\/khms0\.googleapis\.com\/kh\?v=([0-9]+)`)
)

// ParseVersion extracts the current imagery version for dir from the provider's client bundle.
func ParseVersion(bundle []byte, dir valueobject.ViewDirection) (int, error) {
	pattern := downwardVersionPattern
	if dir.IsOblique() {
		pattern = obliqueVersionPattern
	}

	m := pattern.FindSubmatch(bundle)
	if m == nil {
		return 0, ErrVersionNotFound
	}
	v, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", m[1], err)
	}
	return v, nil
}

// VersionScraper discovers the latest imagery version by scraping the provider's JS client.
// Results are cached per view kind and concurrent lookups share one request.
type VersionScraper struct {
	httpClient *http.Client
	url        string
	userAgent  string
	ttl        time.Duration
	timeout    time.Duration
	cache      *ccache.Cache[int]
	inflight   singleflight.Group
	logger     *zap.Logger
}

func NewVersionScraper(cfg config.ProviderConfig, logger *zap.Logger) *VersionScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.VersionCacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &VersionScraper{
		httpClient: newHTTPClient(cfg),
		url:        cfg.DiscoveryURL,
		userAgent:  cfg.UserAgent,
		ttl:        ttl,
		timeout:    timeout,
		cache:      ccache.New(ccache.Configure[int]().MaxSize(8)),
		logger:     logger,
	}
}

func cacheKey(dir valueobject.ViewDirection) string {
	if dir.IsOblique() {
		return "oblique"
	}
	return "downward"
}

func (s *VersionScraper) LatestVersion(ctx context.Context, dir valueobject.ViewDirection) (int, error) {
	key := cacheKey(dir)

	if item := s.cache.Get(key); item != nil && !item.Expired() {
		return item.Value(), nil
	}

	// The lookup is detached from ctx; a caller giving up does not fail the others waiting on it.
	ch := s.inflight.DoChan(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		bundle, err := s.fetchBundle(lookupCtx)
		if err != nil {
			return 0, err
		}
		version, err := ParseVersion(bundle, dir)
		if err != nil {
			return 0, err
		}
		s.cache.Set(key, version, s.ttl)
		s.logger.Info("discovered imagery version", zap.String("kind", key), zap.Int("version", version))
		return version, nil
	})

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("discovering %s version: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return 0, fmt.Errorf("discovering %s version: %w", key, res.Err)
		}
		return res.Val.(int), nil
	}
}

func (s *VersionScraper) fetchBundle(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating discovery request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching client bundle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("client bundle request failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleBytes))
	if err != nil {
		return nil, fmt.Errorf("reading client bundle: %w", err)
	}
	return data, nil
}

func (s *VersionScraper) Stop() {
	s.cache.Stop()
}

// Fixed always reports the same versions, skipping discovery entirely.
type Fixed struct {
	Downward int
	Oblique  int
}

func (f Fixed) LatestVersion(_ context.Context, dir valueobject.ViewDirection) (int, error) {
	if dir.IsOblique() {
		return f.Oblique, nil
	}
	return f.Downward, nil
}
