package generator

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

	"github.com/gurukulhq/gurukul/internal/logging"
	"github.com/gurukulhq/gurukul/pkg/interfaces"
)

var (
	// ErrGenerationFailed wraps every upstream failure. Callers surface it
	// to the wizard without retrying.
	ErrGenerationFailed = errors.New("generator: generation failed")
	ErrAPIKeyRequired   = errors.New("generator: api key is required")
	ErrEmptyPrompt      = errors.New("generator: prompt is required")
)

// Request describes one structured generation call.
type Request struct {
	Instructions string
	Prompt       string
	SchemaName   string
	Schema       map[string]any
}

// Content is the parsed JSON object returned by the model.
type Content struct {
	Raw    json.RawMessage
	Fields map[string]any
}

// Client produces structured content from a prompt.
type Client interface {
	Generate(ctx context.Context, req Request) (*Content, error)
}

// Config drives the HTTP client. Zero values fall back to the OpenAI
// public endpoint and a conservative timeout.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 90 * time.Second
)

// HTTPClient calls a chat-completions style endpoint with a JSON schema
// response format. Each Generate is a single attempt.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	logger  interfaces.Logger
}

// HTTPOption configures the HTTP client.
type HTTPOption func(*HTTPClient)

// WithHTTPClient overrides the underlying transport.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger injects the module logger.
func WithLogger(logger interfaces.Logger) HTTPOption {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient constructs the client from config.
func NewHTTPClient(cfg Config, opts ...HTTPOption) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrAPIKeyRequired
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat any           `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *HTTPClient) Generate(ctx context.Context, req Request) (*Content, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	messages := make([]chatMessage, 0, 2)
	if req.Instructions != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.Instructions})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	payload := chatRequest{
		Model:    c.model,
		Messages: messages,
	}
	if req.Schema != nil {
		name := req.SchemaName
		if name == "" {
			name = "content"
		}
		payload.ResponseFormat = map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"name":   name,
				"strict": true,
				"schema": req.Schema,
			},
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrGenerationFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrGenerationFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrGenerationFailed, err)
	}

	var decoded chatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decoded.Error != nil && decoded.Error.Message != "" {
			msg = decoded.Error.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, msg)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", ErrGenerationFailed)
	}

	content := strings.TrimSpace(decoded.Choices[0].Message.Content)
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("%w: non-JSON model output: %v", ErrGenerationFailed, err)
	}

	c.logger.Info("content generated", "model", c.model, "elapsed", time.Since(start).String())
	return &Content{
		Raw:    json.RawMessage(content),
		Fields: fields,
	}, nil
}

// StubClient serves canned content, for tests and offline development.
type StubClient struct {
	Fn func(ctx context.Context, req Request) (*Content, error)
}

func (s *StubClient) Generate(ctx context.Context, req Request) (*Content, error) {
	if s.Fn != nil {
		return s.Fn(ctx, req)
	}
	fields := map[string]any{"headline": "Generated headline"}
	raw, _ := json.Marshal(fields)
	return &Content{Raw: raw, Fields: fields}, nil
}
