package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Requester sends one composed prompt to the Gemini API and returns the raw
// text output. One outbound call per invocation, no caching, and no retries:
// rate-limited callers are told to try again later instead.
type Requester struct {
	APIKey string
	Model  string
}

// NewRequester builds a Requester. An empty model falls back to the default.
func NewRequester(apiKey, model string) *Requester {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Requester{APIKey: apiKey, Model: model}
}

// Configured reports whether an API key is available.
func (r *Requester) Configured() bool {
	return r != nil && r.APIKey != ""
}

// Generate issues a single generation call and returns the concatenated text
// parts of the first candidate. Returns ErrNotConfigured without touching the
// network when no key is set, and ErrRateLimited on upstream 429/quota errors.
func (r *Requester) Generate(ctx context.Context, prompt string) (string, error) {
	if !r.Configured() {
		return "", ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(r.APIKey))
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(r.Model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if isRateLimited(err) {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("gemini returned empty text")
	}
	return out, nil
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource has been exhausted")
}
