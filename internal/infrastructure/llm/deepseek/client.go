package deepseek

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dkrasnov/docvault/internal/core/domain"
	"github.com/dkrasnov/docvault/internal/infrastructure/resilience"
)

const (
	defaultTemperature = 0.1
	// The classifier favors deterministic, factual output; anything hotter
	// than this is clamped back to the default.
	maxTemperature = 0.3

	defaultTimeout = 8 * time.Second
)

// Config is injected explicitly so pipelines can run against fakes; nothing
// here is read from ambient process state.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Client talks to an OpenAI-compatible chat-completions endpoint
// (api.deepseek.com in production).
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

func New(cfg Config) *Client {
	temperature := cfg.Temperature
	if temperature <= 0 || temperature > maxTemperature {
		temperature = defaultTemperature
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion and returns the raw assistant content.
// The structured-output hint is always requested; the upstream may still
// answer in the legacy free-text shape, which Normalize handles.
func (c *Client) Complete(ctx context.Context, messages []message) (string, error) {
	reqBody := completionRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    c.temperature,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	var response completionResponse
	if err := c.postJSON(ctx, "/chat/completions", reqBody, &response, "classify"); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("classify response has no choices")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// Classifier runs the classification exchange: prompt build, a single guarded
// completion call, response normalization.
type Classifier struct {
	client   *Client
	executor *resilience.Executor
}

func NewClassifier(client *Client, executor *resilience.Executor) *Classifier {
	return &Classifier{client: client, executor: executor}
}

// Classify never returns a malformed result: responses that cannot be parsed
// are repaired by Normalize. An error means the upstream call itself failed,
// after bounded retry, and is always of the ErrClassifierUnavailable kind.
func (c *Classifier) Classify(ctx context.Context, url string, content domain.ExtractedContent) (domain.ClassificationResult, error) {
	messages := buildClassificationMessages(url, content)

	var raw string
	call := func(callCtx context.Context) error {
		var err error
		raw, err = c.client.Complete(callCtx, messages)
		return err
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "deepseek.classify", call, classifyTransportError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.ClassificationResult{}, wrapUnavailable("classify document", err)
	}
	return Normalize(raw), nil
}
