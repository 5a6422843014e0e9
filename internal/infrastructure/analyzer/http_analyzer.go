package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	adapteranalyzer "github.com/marcos-nsantos/satellite-imagery-backend/internal/adapter/analyzer"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
)

type analyzeImage struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

type analyzeRequest struct {
	ImageID       string         `json:"image_id"`
	AnalysisType  string         `json:"analysis_type"`
	BoxThreshold  float64        `json:"box_threshold"`
	TextThreshold float64        `json:"text_threshold"`
	Images        []analyzeImage `json:"images"`
}

type analyzeResult struct {
	Name               string       `json:"name"`
	Count              int          `json:"count"`
	Boxes              [][4]float64 `json:"boxes"`
	AnnotatedImagePath string       `json:"annotated_image_path"`
}

type analyzeResponse struct {
	Results []analyzeResult `json:"results"`
}

// HTTPAnalyzer talks to the object detection service over JSON.
type HTTPAnalyzer struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

func NewHTTPAnalyzer(cfg config.AnalyzerConfig) *HTTPAnalyzer {
	return &HTTPAnalyzer{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
		},
		endpoint: strings.TrimSuffix(cfg.URL, "/") + "/analyze",
		token:    cfg.APIToken,
	}
}

func (a *HTTPAnalyzer) Analyze(ctx context.Context, req adapteranalyzer.Request) ([]adapteranalyzer.Detection, error) {
	payload := analyzeRequest{
		ImageID:       req.AcquisitionID.String(),
		AnalysisType:  req.AnalysisType,
		BoxThreshold:  req.BoxThreshold,
		TextThreshold: req.TextThreshold,
		Images:        make([]analyzeImage, 0, len(req.Images)),
	}
	for _, img := range req.Images {
		payload.Images = append(payload.Images, analyzeImage{Name: img.Name, Data: img.Data})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding analyze request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating analyze request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalyzerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", domain.ErrAnalyzerUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("analyzer rejected request with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding analyze response: %w", err)
	}

	detections := make([]adapteranalyzer.Detection, 0, len(out.Results))
	for _, r := range out.Results {
		detections = append(detections, adapteranalyzer.Detection{
			Name:               r.Name,
			Count:              r.Count,
			Boxes:              r.Boxes,
			AnnotatedImagePath: r.AnnotatedImagePath,
		})
	}
	return detections, nil
}
