package llm

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
)

// CompletionRequest holds the parameters for one chat-completion call.
type CompletionRequest struct {
	APIKey       string
	SystemPrompt string
	UserPrompt   string
	// RequestID is only used to correlate log lines.
	RequestID string
}

// CompletionResponse holds the extracted reply of a chat-completion call.
type CompletionResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client sends a two-message chat exchange and returns the reply text.
type Client interface {
	// Complete issues exactly one request. It never retries.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// openRouterClient implements Client against an OpenAI-compatible
// chat-completions endpoint such as OpenRouter.
type openRouterClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewOpenRouterClient creates a Client for the configured endpoint.
func NewOpenRouterClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &openRouterClient{
		cfg:      cfg,
		http:     &http.Client{},
		observer: observer,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the JSON body sent to the chat-completions endpoint.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatResponse is the subset of the endpoint's reply that is consumed.
type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openRouterClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
	}

	resp, status, err := c.doRequest(ctx, req.APIKey, body)
	latency := time.Since(start).Milliseconds()

	event := CallEvent{
		RequestID:  req.RequestID,
		Model:      c.cfg.Model,
		LatencyMs:  latency,
		StatusCode: status,
		Success:    err == nil,
		ErrorCode:  errorCode(err),
	}
	c.observer.OnCallComplete(event)
	if err != nil {
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &CompletionResponse{
		Text:      strings.TrimSpace(*resp.Choices[0].Message.Content),
		Model:     model,
		LatencyMs: latency,
	}, nil
}

func (c *openRouterClient) doRequest(ctx context.Context, apiKey string, body chatRequest) (*chatResponse, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, 0, fmt.Errorf("%w after %s", ErrTimeout, c.cfg.Timeout)
		}
		return nil, 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, httpResp.StatusCode, &HTTPError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: decoding response: %v", ErrInvalidResponse, err)
	}
	if len(resp.Choices) == 0 {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: no choices returned", ErrInvalidResponse)
	}
	if resp.Choices[0].Message.Content == nil {
		return nil, httpResp.StatusCode, fmt.Errorf("%w: choices[0].message.content missing", ErrInvalidResponse)
	}

	return &resp, httpResp.StatusCode, nil
}

func errorCode(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &httpErr):
		return "HTTP_STATUS"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrTransport):
		return "TRANSPORT"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}
