package analysis

import "errors"

var (
	// ErrNotConfigured means no API key is set. Callers must not treat this
	// as retryable; the call was never attempted.
	ErrNotConfigured = errors.New("gemini api key not configured")

	// ErrRateLimited means the upstream reported a 429 or quota exhaustion.
	// Safe to retry later; never retried automatically.
	ErrRateLimited = errors.New("gemini rate limited")

	// ErrUnparseable means the model output contained no JSON object at all.
	ErrUnparseable = errors.New("model output is not json")
)
