package openai

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

// ErrMissingAPIKey indicates that the client was configured without credentials.
var ErrMissingAPIKey = errors.New("openai: api key is required")

// Options configures the OpenAI client.
type Options struct {
	APIKey         string
	BaseURL        string
	ImageModel     string
	VisionModel    string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the OpenAI image generation and vision APIs.
type Client struct {
	apiKey      string
	baseURL     string
	imageModel  string
	visionModel string
	httpClient  *http.Client
	logger      *infra.Logger
}

type imageGenerationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

type imageGenerationResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *imageURLPart `json:"image_url,omitempty"`
}

type imageURLPart struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
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
		baseURL = "https://api.openai.com/v1"
	}
	imageModel := strings.TrimSpace(opts.ImageModel)
	if imageModel == "" {
		imageModel = "dall-e-3"
	}
	visionModel := strings.TrimSpace(opts.VisionModel)
	if visionModel == "" {
		visionModel = "gpt-4o-mini"
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
		apiKey:      strings.TrimSpace(opts.APIKey),
		baseURL:     baseURL,
		imageModel:  imageModel,
		visionModel: visionModel,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// Model returns the configured image model identifier.
func (c *Client) Model() string {
	return c.imageModel
}

// GenerateImage requests exactly one wide-format render and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("openai: prompt is required")
	}
	payload := imageGenerationRequest{
		Model:   c.imageModel,
		Prompt:  prompt,
		N:       1,
		Size:    "1792x1024",
		Quality: "hd",
		Style:   "natural",
	}
	raw, err := c.post(ctx, "/images/generations", payload)
	if err != nil {
		return "", err
	}
	var decoded imageGenerationResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(decoded.Data) == 0 || strings.TrimSpace(decoded.Data[0].URL) == "" {
		return "", errors.New("openai: empty image url")
	}
	imageURL := strings.TrimSpace(decoded.Data[0].URL)
	c.logger.Debug().
		Str("model", c.imageModel).
		Str("url", imageURL).
		Msg("openai: generated image")
	return imageURL, nil
}

// DescribeImage sends one vision request for the image at imageURL and returns
// the raw textual reply. Callers are responsible for parsing the reply.
func (c *Client) DescribeImage(ctx context.Context, imageURL, instruction string) (string, error) {
	if !c.HasCredentials() {
		return "", ErrMissingAPIKey
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return "", errors.New("openai: image url is required")
	}
	payload := chatRequest{
		Model:     c.visionModel,
		MaxTokens: 500,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: instruction},
				{Type: "image_url", ImageURL: &imageURLPart{URL: imageURL}},
			},
		}},
	}
	raw, err := c.post(ctx, "/chat/completions", payload)
	if err != nil {
		return "", err
	}
	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
		return "", errors.New("openai: empty vision reply")
	}
	return decoded.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var detail errorResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error.Message != "" {
			return nil, fmt.Errorf("openai: %s (%s)", detail.Error.Message, detail.Error.Type)
		}
		return nil, fmt.Errorf("openai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
