package replicate

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

	"github.com/komolbek/expostandai/internal/infra"
)

// ErrMissingAPIToken indicates that the client was configured without credentials.
var ErrMissingAPIToken = errors.New("replicate: api token is required")

const pollInterval = 2 * time.Second

// Options configures the Replicate client.
type Options struct {
	APIToken       string
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the Replicate predictions API.
type Client struct {
	apiToken   string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

type predictionRequest struct {
	Input predictionInput `json:"input"`
}

type predictionInput struct {
	Prompt           string `json:"prompt"`
	AspectRatio      string `json:"aspect_ratio"`
	OutputFormat     string `json:"output_format"`
	OutputQuality    int    `json:"output_quality"`
	SafetyTolerance  int    `json:"safety_tolerance"`
	PromptUpsampling bool   `json:"prompt_upsampling"`
}

type predictionResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 90 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.replicate.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "black-forest-labs/flux-1.1-pro"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiToken:   strings.TrimSpace(opts.APIToken),
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiToken != ""
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateImage runs one prediction at 16:9 with prompt upsampling and returns
// the resulting image URL once the prediction completes.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIToken
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("replicate: prompt is required")
	}
	payload := predictionRequest{
		Input: predictionInput{
			Prompt:           prompt,
			AspectRatio:      "16:9",
			OutputFormat:     "webp",
			OutputQuality:    90,
			SafetyTolerance:  2,
			PromptUpsampling: true,
		},
	}
	endpoint := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, c.model)
	pred, err := c.createPrediction(ctx, endpoint, payload)
	if err != nil {
		return "", err
	}

	// The Prefer: wait header usually returns a terminal prediction, but the
	// API may still hand back an in-flight one under load.
	for !isTerminal(pred.Status) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(pollInterval):
		}
		pred, err = c.getPrediction(ctx, pred.ID)
		if err != nil {
			return "", err
		}
	}

	if pred.Status != "succeeded" {
		if pred.Error != "" {
			return "", fmt.Errorf("replicate: prediction %s: %s", pred.Status, pred.Error)
		}
		return "", fmt.Errorf("replicate: prediction %s", pred.Status)
	}
	imageURL := normalizeOutput(pred.Output)
	if imageURL == "" {
		return "", errors.New("replicate: empty image url")
	}
	c.logger.Debug().
		Str("model", c.model).
		Str("prediction_id", pred.ID).
		Str("url", imageURL).
		Msg("replicate: generated image")
	return imageURL, nil
}

func (c *Client) createPrediction(ctx context.Context, endpoint string, payload predictionRequest) (*predictionResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("replicate: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("replicate: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	httpReq.Header.Set("Prefer", "wait=60")
	return c.do(httpReq)
}

func (c *Client) getPrediction(ctx context.Context, id string) (*predictionResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/predictions/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("replicate: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiToken)
	return c.do(httpReq)
}

func (c *Client) do(httpReq *http.Request) (*predictionResponse, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("replicate: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("replicate: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Detail != "" {
			return nil, fmt.Errorf("replicate: %s", detail.Detail)
		}
		return nil, fmt.Errorf("replicate: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	var decoded predictionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("replicate: decode response: %w", err)
	}
	return &decoded, nil
}

func isTerminal(status string) bool {
	switch status {
	case "succeeded", "failed", "canceled":
		return true
	default:
		return false
	}
}

// normalizeOutput collapses the model-dependent output shape (a bare string or
// an array of strings) into a single URL, or "" when neither is present.
func normalizeOutput(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.TrimSpace(many[0])
	}
	return ""
}
