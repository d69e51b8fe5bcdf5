// Package inference talks to an OpenRouter-compatible chat-completions API.
// It carries both call shapes the application needs: a streaming call whose
// token deltas are forwarded to the caller as they arrive, and a buffered
// call that returns the full completion text.
package inference

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/apollohq/wireframe-to-code-backend/internal/config"
)

// Part is one element of a multimodal user message: either plain text or an
// image reference (a public URL or a base64 data URL).
type Part struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageRef `json:"image_url,omitempty"`
}

// ImageRef points at the image content of an image_url part.
type ImageRef struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// TextPart builds a text content part.
func TextPart(s string) Part {
	return Part{Type: "text", Text: s}
}

// ImagePart builds an image_url content part with automatic detail.
func ImagePart(url string) Part {
	return Part{Type: "image_url", ImageURL: &ImageRef{URL: url, Detail: "auto"}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string for system, []Part for user
}

type chatRequest struct {
	Model     string        `json:"model"`
	Stream    bool          `json:"stream"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a thin OpenRouter chat-completions client. The zero value is not
// usable; construct it with NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	referer    string
	title      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a client from the inference section of the configuration.
func NewClient(cfg config.InferenceConfig) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		referer:    cfg.Referer,
		title:      cfg.Title,
		maxTokens:  cfg.VisionMaxTokens,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, body chatRequest) (*http.Request, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}
	return req, nil
}

func upstreamError(status int, body []byte) error {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("upstream error (%d): %s", status, apiErr.Error.Message)
	}
	return fmt.Errorf("upstream error (%d): %s", status, strings.TrimSpace(string(body)))
}

// StreamChat runs a streaming chat completion and invokes emit for every
// non-empty content delta, in arrival order. It returns the first error from
// the transport, the upstream API, or emit itself; a nil return means the
// stream finished normally.
func (c *Client) StreamChat(ctx context.Context, model, system string, parts []Part, emit func(delta string) error) error {
	req, err := c.newRequest(ctx, chatRequest{
		Model:     model,
		Stream:    true,
		MaxTokens: c.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: parts},
		},
	})
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return upstreamError(resp.StatusCode, body)
	}

	// SSE framing: lines of "data: <json>", blank line separated, terminated
	// by the "[DONE]" sentinel. OpenRouter also interleaves ": ..." comment
	// lines as keepalives.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		payload, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		payload = strings.TrimSpace(payload)
		if payload == "[DONE]" {
			return nil
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue // tolerate malformed keepalive frames
		}
		for _, ch := range chunk.Choices {
			if ch.Delta.Content == "" {
				continue
			}
			if err := emit(ch.Delta.Content); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}

// Complete runs a buffered chat completion and returns the concatenated
// content of all choices (in practice, the single first choice).
func (c *Client) Complete(ctx context.Context, model, system string, parts []Part) (string, error) {
	req, err := c.newRequest(ctx, chatRequest{
		Model:     model,
		MaxTokens: c.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: parts},
		},
	})
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", upstreamError(resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	var sb strings.Builder
	for _, ch := range parsed.Choices {
		sb.WriteString(ch.Message.Content)
	}
	return sb.String(), nil
}
