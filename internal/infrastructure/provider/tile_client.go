package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/imagery"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

// maxTileBytes bounds a single tile response; real tiles are a few tens of KB.
const maxTileBytes = 4 << 20

// StatusError is returned when the provider answers a tile request with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tile request %s: unexpected status %d", e.URL, e.StatusCode)
}

// TileClient downloads raw tile payloads from the imagery provider.
type TileClient struct {
	httpClient      *http.Client
	downwardBaseURL string
	obliqueBaseURL  string
	userAgent       string
}

func NewTileClient(cfg config.ProviderConfig) *TileClient {
	return &TileClient{
		httpClient:      newHTTPClient(cfg),
		downwardBaseURL: strings.TrimSuffix(cfg.DownwardBaseURL, "/"),
		obliqueBaseURL:  strings.TrimSuffix(cfg.ObliqueBaseURL, "/"),
		userAgent:       cfg.UserAgent,
	}
}

func newHTTPClient(cfg config.ProviderConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 32,
		},
	}
}

func (c *TileClient) TileURL(addr imagery.TileAddress) string {
	if angle, ok := addr.Direction.Angle(); ok {
		return fmt.Sprintf("%s/kh?v=%d&deg=%d&x=%d&y=%d&z=%d",
			c.obliqueBaseURL, addr.Version, angle, addr.X, addr.Y, addr.Zoom)
	}
	return fmt.Sprintf("%s/kh/v=%d?x=%d&y=%d&z=%d",
		c.downwardBaseURL, addr.Version, addr.X, addr.Y, addr.Zoom)
}

func (c *TileClient) FetchTile(ctx context.Context, addr imagery.TileAddress) ([]byte, error) {
	url := c.TileURL(addr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating tile request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tile %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTileBytes))
	if err != nil {
		return nil, fmt.Errorf("reading tile %s: %w", addr, err)
	}
	return data, nil
}
