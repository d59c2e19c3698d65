package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Dan9191/budget-advisor/internal/config"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrEmptyResponse is returned when the model answers without content
var ErrEmptyResponse = errors.New("no response from language model")

// Client talks to an OpenAI-compatible chat completions endpoint
type Client struct {
	url       string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
	log       *logrus.Logger
}

// NewClient initializes a new advisor client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:       cfg.AIURL,
		apiKey:    cfg.AIKey,
		model:     cfg.AIModel,
		maxTokens: cfg.AIMaxTokens,
		client: &http.Client{
			Timeout: cfg.AITimeout,
		},
		log: log,
	}
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

// Advise sends the conversation so far plus the new message and returns the
// model's reply. budget may be nil when the user has not entered one.
func (c *Client) Advise(ctx context.Context, budget *models.BudgetSnapshot, history []models.Message, message string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: "system", Content: SystemPrompt(budget)})
	for _, m := range history {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: models.RoleUser, Content: message})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	raw, err := c.sendRequest(ctx, body)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *Client) sendRequest(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("Advisor response: %s", string(raw))

	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("Advisor API error %d: %s", resp.StatusCode, string(raw))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return raw, nil
}
