package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

// GroqLLM talks to any OpenAI-compatible chat completions endpoint; Groq is
// the default deployment.
type GroqLLM struct {
	client openai.Client
	model  string
}

// GroqOptions configures NewGroqLLM. BaseURL and HTTPClient are optional.
type GroqOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// NewGroqLLM creates a chat completion client. The SDK's own retries are
// disabled; a failed completion is terminal for the request.
func NewGroqLLM(opts GroqOptions) *GroqLLM {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
		option.WithMiddleware(traceMiddleware),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &GroqLLM{
		client: openai.NewClient(reqOpts...),
		model:  opts.Model,
	}
}

// Complete sends prompt as a single user message and returns the first
// choice's content.
func (l *GroqLLM) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: l.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func traceMiddleware(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	start := time.Now()
	resp, err := next(req)

	ev := zerolog.Ctx(req.Context()).Debug().
		Str("component", "completion_http").
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Dur("duration", time.Since(start))
	if resp != nil {
		ev = ev.Int("status", resp.StatusCode)
	}
	ev.Err(err).Msg("completion request")

	return resp, err
}
