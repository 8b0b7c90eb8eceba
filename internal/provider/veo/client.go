// Package veo is an HTTP client for the Veo long-running video generation
// API: submission via predictLongRunning, operation status polling, and
// authenticated download of the finished video.
package veo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mediaforge/mediaforge"
	"github.com/mediaforge/mediaforge/fetch"
	"github.com/mediaforge/mediaforge/poll"
)

// DefaultBaseURL is the Gemini API endpoint serving the Veo models.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const apiKeyHeader = "x-goog-api-key"

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("veo: api key is required")

// Options configures the Veo client.
type Options struct {
	APIKey          string
	BaseURL         string
	HTTPClient      *http.Client
	Logger          zerolog.Logger
	PollInterval    time.Duration // zero means poll.DefaultInterval
	PollTimeout     time.Duration // zero means poll.DefaultTimeout
	DownloadTimeout time.Duration // zero means fetch.DefaultReadTimeout
}

// Client performs HTTP calls against the Veo API.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	fetcher      *fetch.Client
	logger       zerolog.Logger
	pollInterval time.Duration
	pollTimeout  time.Duration
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	downloadTimeout := opts.DownloadTimeout
	if downloadTimeout <= 0 {
		downloadTimeout = fetch.DefaultReadTimeout
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		fetcher: fetch.New(
			fetch.WithHeader(apiKeyHeader, opts.APIKey),
			fetch.WithTimeouts(fetch.DefaultConnectTimeout, downloadTimeout),
		),
		logger:       opts.Logger,
		pollInterval: opts.PollInterval,
		pollTimeout:  opts.PollTimeout,
	}, nil
}

type imagePayload struct {
	ImageBytes string `json:"imageBytes"`
	MimeType   string `json:"mimeType"`
}

type instance struct {
	Prompt string        `json:"prompt"`
	Image  *imagePayload `json:"image,omitempty"`
}

type parameters struct {
	AspectRatio    string `json:"aspectRatio"`
	Resolution     string `json:"resolution"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
}

type predictRequest struct {
	Instances  []instance `json:"instances"`
	Parameters parameters `json:"parameters"`
}

type operationFailure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// The result locator has appeared under two field paths historically, each in
// both camelCase and snake_case. All four spellings decode.
type operationStatus struct {
	Name     string             `json:"name"`
	Done     bool               `json:"done"`
	Error    *operationFailure  `json:"error"`
	Response *operationResponse `json:"response"`
}

type operationResponse struct {
	GenerateVideoResponse      *videoResponse   `json:"generateVideoResponse"`
	GenerateVideoResponseSnake *videoResponse   `json:"generate_video_response"`
	GeneratedVideos            []generatedVideo `json:"generatedVideos"`
	GeneratedVideosSnake       []generatedVideo `json:"generated_videos"`
}

type videoResponse struct {
	GeneratedSamples      []generatedVideo `json:"generatedSamples"`
	GeneratedSamplesSnake []generatedVideo `json:"generated_samples"`
}

type generatedVideo struct {
	Video *videoRef `json:"video"`
}

type videoRef struct {
	URI string `json:"uri"`
}

func buildPredictRequest(req *mediaforge.VideoRequest) predictRequest {
	inst := instance{Prompt: req.Prompt}
	if req.Image != nil {
		mimeType := req.Image.MIMEType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		inst.Image = &imagePayload{
			ImageBytes: req.Image.Base64,
			MimeType:   mimeType,
		}
	}
	return predictRequest{
		Instances: []instance{inst},
		Parameters: parameters{
			AspectRatio:    string(req.AspectRatio),
			Resolution:     string(req.Resolution),
			NegativePrompt: req.NegativePrompt,
		},
	}
}

// Submit starts a long-running generation and returns the operation handle.
func (c *Client) Submit(ctx context.Context, model string, req *mediaforge.VideoRequest) (string, error) {
	body, err := json.Marshal(buildPredictRequest(req))
	if err != nil {
		return "", fmt.Errorf("veo: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:predictLongRunning", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("veo: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", mediaforge.NewTransientError("veo: submit", 0, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", mediaforge.NewTransientError("veo: read submit response", 0, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyStatus(resp.StatusCode, fmt.Sprintf("veo: submit %s: %s", model, snippet(payload)))
	}

	var status operationStatus
	if err := json.Unmarshal(payload, &status); err != nil || strings.TrimSpace(status.Name) == "" {
		return "", &mediaforge.MalformedResponseError{What: "submit response missing operation name"}
	}

	c.logger.Debug().Str("model", model).Str("operation", status.Name).Msg("veo operation submitted")
	return status.Name, nil
}

// checkOperation issues one status request for the given operation handle.
func (c *Client) checkOperation(ctx context.Context, operationName string) (*operationStatus, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(operationName, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("veo: build status request: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("veo: status %s: http %d", operationName, resp.StatusCode)
	}

	var status operationStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil, fmt.Errorf("veo: decode status: %w", err)
	}
	return &status, nil
}

// Generate runs one candidate end to end: submit, poll to completion under
// the configured deadline, and download the finished video bytes.
func (c *Client) Generate(ctx context.Context, model string, req *mediaforge.VideoRequest) ([]byte, error) {
	operationName, err := c.Submit(ctx, model, req)
	if err != nil {
		return nil, err
	}

	cfg := poll.Config{Interval: c.pollInterval, Timeout: c.pollTimeout}
	uri, err := poll.Wait(ctx, cfg, func(ctx context.Context) (string, bool, error) {
		status, err := c.checkOperation(ctx, operationName)
		if err != nil {
			// Transport failure on this tick; the poller re-checks until the
			// deadline elapses.
			c.logger.Debug().Err(err).Str("operation", operationName).Msg("status check failed")
			return "", false, err
		}
		if !status.Done {
			return "", false, nil
		}
		if status.Error != nil {
			return "", true, &mediaforge.OperationError{Name: operationName, Reason: status.Error.Message}
		}
		uri, err := videoURI(status.Response)
		if err != nil {
			return "", true, err
		}
		return uri, true, nil
	})
	if err != nil {
		return nil, err
	}

	data, _, err := c.fetcher.Download(ctx, uri)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// videoURI extracts the result locator, tolerating both historical response
// shapes.
func videoURI(resp *operationResponse) (string, error) {
	if resp != nil {
		if gvr := firstNonNil(resp.GenerateVideoResponse, resp.GenerateVideoResponseSnake); gvr != nil {
			samples := gvr.GeneratedSamples
			if len(samples) == 0 {
				samples = gvr.GeneratedSamplesSnake
			}
			if uri := firstURI(samples); uri != "" {
				return uri, nil
			}
		}

		videos := resp.GeneratedVideos
		if len(videos) == 0 {
			videos = resp.GeneratedVideosSnake
		}
		if uri := firstURI(videos); uri != "" {
			return uri, nil
		}
	}
	return "", &mediaforge.MalformedResponseError{What: "operation response missing video uri"}
}

func firstNonNil(a, b *videoResponse) *videoResponse {
	if a != nil {
		return a
	}
	return b
}

func firstURI(videos []generatedVideo) string {
	for _, v := range videos {
		if v.Video != nil && strings.TrimSpace(v.Video.URI) != "" {
			return v.Video.URI
		}
	}
	return ""
}

func classifyStatus(code int, msg string) error {
	if code == 429 || (code >= 500 && code < 600) {
		return mediaforge.NewTransientError(msg, code, nil)
	}
	if code == 400 {
		return mediaforge.NewUserInputError(msg, code, nil)
	}
	return mediaforge.NewPermanentError(msg, code, nil)
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
