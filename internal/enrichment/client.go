// filepath: internal/enrichment/client.go
// Package enrichment talks to an OpenAI-compatible transcription and chat API.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"voicejournal/internal/config"
	"voicejournal/internal/logging"
	"voicejournal/internal/media"

	"github.com/sethvargo/go-retry"
)

const (
	DefaultBaseURL            = "https://api.openai.com/v1"
	DefaultTranscriptionModel = "whisper-1"
	DefaultSummaryModel       = "gpt-3.5-turbo"

	// PlaceholderAPIKey is the value shipped in sample configs.
	PlaceholderAPIKey = "YOUR_OPENAI_API_KEY_HERE"

	summaryPrompt = "Please provide a concise summary of the following voice journal entry. Focus on the main topics, key insights, and important details. Keep it brief but comprehensive:"

	keyPrefix    = "sk-"
	minKeyLength = 20

	retryBase = 500 * time.Millisecond
)

// Client is the enrichment API client.
type Client struct {
	apiKey             string
	baseURL            string
	transcriptionModel string
	summaryModel       string
	language           string
	maxRetries         uint64
	timeout            time.Duration
	httpClient         *http.Client
}

// NewClient builds a client from the enrichment config section.
func NewClient(cfg config.EnrichmentConfig, timeout time.Duration) *Client {
	c := &Client{
		apiKey:             strings.TrimSpace(cfg.APIKey),
		baseURL:            strings.TrimRight(cfg.BaseURL, "/"),
		transcriptionModel: cfg.TranscriptionModel,
		summaryModel:       cfg.SummaryModel,
		language:           cfg.Language,
		maxRetries:         uint64(max(cfg.MaxRetries, 0)),
		timeout:            timeout,
		httpClient:         &http.Client{},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.transcriptionModel == "" {
		c.transcriptionModel = DefaultTranscriptionModel
	}
	if c.summaryModel == "" {
		c.summaryModel = DefaultSummaryModel
	}
	if c.timeout <= 0 {
		c.timeout = 60 * time.Second
	}
	return c
}

// IsConfigured reports whether a usable API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != "" && c.apiKey != PlaceholderAPIKey
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Transcribe uploads audio and returns the recognized text.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNoAPIKey
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("no audio data to transcribe")
	}
	contentType := media.ContentType(audio, filename)

	var out transcriptionResponse
	err := c.do(ctx, "/audio/transcriptions", func() (io.Reader, string, error) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		if err := w.WriteField("model", c.transcriptionModel); err != nil {
			return nil, "", err
		}
		if c.language != "" {
			if err := w.WriteField("language", c.language); err != nil {
				return nil, "", err
			}
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(audio); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &body, w.FormDataContentType(), nil
	}, &out)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return "", ErrNoResponse
	}
	return text, nil
}

// Summarize returns a short summary of a transcript.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.chat(ctx, summaryPrompt+"\n\n"+text, 150, 0.3)
}

// ValidKeyFormat reports whether key looks like an OpenAI secret key.
func ValidKeyFormat(key string) bool {
	return strings.HasPrefix(key, keyPrefix) && len(key) >= minKeyLength
}

// Validate checks the key format, then makes a minimal call to check the key.
func (c *Client) Validate(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrNoAPIKey
	}
	if !ValidKeyFormat(c.apiKey) {
		return ErrInvalidKeyFormat
	}
	_, err := c.chat(ctx, "Hello", 5, 0.1)
	return err
}

func (c *Client) chat(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNoAPIKey
	}
	payload, err := json.Marshal(chatRequest{
		Model:       c.summaryModel,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var out chatResponse
	err = c.do(ctx, "/chat/completions", func() (io.Reader, string, error) {
		return bytes.NewReader(payload), "application/json", nil
	}, &out)
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", ErrNoResponse
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", ErrNoResponse
	}
	return content, nil
}

// do posts a body built by newBody, retrying transient failures, and decodes
// the JSON answer into out.
func (c *Client) do(ctx context.Context, path string, newBody func() (io.Reader, string, error), out any) error {
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(retryBase))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := c.post(ctx, path, newBody, out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.Is(err, ErrNetwork) || (errors.As(err, &apiErr) && apiErr.transient()) {
			logging.Log.Warnf("Enrichment request %s failed (attempt %d): %v", path, attempt, err)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) post(ctx context.Context, path string, newBody func() (io.Reader, string, error), out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, contentType, err := newBody()
	if err != nil {
		return fmt.Errorf("build request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrInvalidAPIKey
	case resp.StatusCode != http.StatusOK:
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var er errorResponse
		if json.Unmarshal(data, &er) == nil && er.Error.Message != "" {
			msg = er.Error.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return ErrNoResponse
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: unmarshal response: %v", ErrNoResponse, err)
	}
	return nil
}
