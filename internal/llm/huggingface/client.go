package huggingface

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

	"cv-analyzer-backend/internal/llm"
)

const defaultAPIURL = "https://router.huggingface.co/v1/chat/completions"

// Generation parameters carried over from the original deployment.
const (
	maxNewTokens = 300
	temperature  = float32(0.7)
	topP         = float32(0.9)
)

// Client implements llm.Client using the Hugging Face inference router.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a Hugging Face client. The provider, when set, is
// appended to the model identifier the way the router expects
// (e.g. "org/model:novita"). baseURL overrides the router endpoint; empty
// selects the default.
func NewClient(apiKey, model, provider, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("HUGGINGFACE_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for Hugging Face")
	}
	if strings.TrimSpace(provider) != "" && !strings.Contains(model, ":") {
		model = model + ":" + strings.TrimSpace(provider)
	}
	apiURL := strings.TrimSpace(baseURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
	TopP        float32       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// tokenFragment is one element of the incremental response shape some
// providers return instead of a chat completion object.
type tokenFragment struct {
	Token struct {
		Text string `json:"text"`
	} `json:"token"`
	GeneratedText string `json:"generated_text"`
}

// Generate performs a single generation call. No retries: any failure is
// terminal for the request and the caller falls back to local analysis.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxNewTokens,
		Temperature: temperature,
		TopP:        topP,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("huggingface request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		if msg := errorMessageFromBody(body); msg != "" {
			return "", fmt.Errorf("huggingface http status %d: %s", resp.StatusCode, msg)
		}
		return "", fmt.Errorf("huggingface http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decodeGeneratedText(body)
}

// decodeGeneratedText normalizes the two successful response shapes into one
// plain string: a chat completion object with a direct content field, or an
// array of incremental fragments concatenated in order.
func decodeGeneratedText(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeFragments(trimmed)
	}

	var parsed chatResponse
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return "", fmt.Errorf("huggingface response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("huggingface error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("huggingface response missing choices")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("huggingface response empty content")
	}
	return content, nil
}

func decodeFragments(raw []byte) (string, error) {
	var fragments []tokenFragment
	if err := json.Unmarshal(raw, &fragments); err != nil {
		return "", fmt.Errorf("huggingface fragment parse: %w", err)
	}
	var b strings.Builder
	for _, f := range fragments {
		if f.Token.Text != "" {
			b.WriteString(f.Token.Text)
			continue
		}
		b.WriteString(f.GeneratedText)
	}
	content := strings.TrimSpace(b.String())
	if content == "" {
		return "", fmt.Errorf("huggingface response empty content")
	}
	return content, nil
}

func errorMessageFromBody(body []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", parsed.Error.Message, parsed.Error.Type)
}

var _ llm.Client = (*Client)(nil)
