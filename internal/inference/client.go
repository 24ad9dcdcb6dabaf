package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrInference marks a failed model call (transport, quota, or model error)
var ErrInference = errors.New("inference request failed")

// Config holds the vision model endpoint settings
type Config struct {
	BaseURL    string
	Model      string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
}

// Client talks to an OpenAI-compatible chat-completions endpoint with
// multimodal (text + image) messages
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// message is a chat message with multimodal content parts
type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient creates an inference client
func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Infer sends the prompt followed by the page images, in order, and
// returns the model's raw text output
func (c *Client) Infer(ctx context.Context, prompt string, imagePaths []string) (string, error) {
	body, err := c.buildBody(prompt, imagePaths)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInference, err)
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"

	start := time.Now()
	raw, err := c.postWithRetry(ctx, endpoint, body)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInference, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrInference)
	}

	c.logger.Debug("Inference call completed",
		slog.String("model", c.config.Model),
		slog.Int("images", len(imagePaths)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return resp.Choices[0].Message.Content, nil
}

// buildBody marshals the chat request: one text part, then every page
// image as a base64 data URL, in page order
func (c *Client) buildBody(prompt string, imagePaths []string) ([]byte, error) {
	parts := make([]contentPart, 0, len(imagePaths)+1)
	parts = append(parts, contentPart{Type: "text", Text: prompt})

	for _, path := range imagePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read page image %s: %v", path, err)
		}

		parts = append(parts, contentPart{
			Type: "image_url",
			ImageURL: &imageURL{
				URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
			},
		})
	}

	req := chatRequest{
		Model:    c.config.Model,
		Messages: []message{{Role: "user", Content: parts}},
	}

	return json.Marshal(req)
}

// postWithRetry sends the request, retrying retryable statuses with
// exponential backoff
func (c *Client) postWithRetry(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	maxRetries := c.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(uint(1)<<uint(attempt-1)) * time.Second
			c.logger.Warn("Retrying inference request",
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
				slog.Any("error", lastErr),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrInference, ctx.Err())
			}
		}

		raw, retryable, err := c.post(ctx, endpoint, body)
		if err == nil {
			return raw, nil
		}

		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (raw []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInference, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %v", ErrInference, err)
	}
	defer resp.Body.Close()

	raw, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: failed to read response: %v", ErrInference, err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("%w: status %d: %s", ErrInference, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	return raw, false, nil
}
