package analysis

import (
	"errors"
	"testing"

	"impulseguard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCanonicalShapeIsIdentity(t *testing.T) {
	payload := map[string]any{
		"items": []any{
			map[string]any{"name": "Headphones", "price": 49.99, "quantity": 1.0, "currency": "CAD"},
		},
		"aiVerdict":       "considered",
		"suggestedStatus": "DRAFT",
		"impulseScore":    22.0,
		"regretRisk":      "low",
		"summary":         "A replacement for a broken pair.",
		"keyReasons":      []any{"stated need", "within budget"},
		"coolOff":         map[string]any{"recommended": false, "delay": ""},
		"suggestedAlternatives": []any{
			map[string]any{"name": "Refurbished model", "note": "half the price"},
		},
		"confidence": 0.85,
	}

	result := Normalize(payload)

	assert.Equal(t, models.VerdictConsidered, result.Verdict)
	assert.Equal(t, models.StatusDraft, result.SuggestedStatus)
	assert.Equal(t, 22, result.ImpulseScore)
	assert.Equal(t, "low", result.RegretRisk)
	assert.Equal(t, "A replacement for a broken pair.", result.Summary)
	assert.Equal(t, []string{"stated need", "within budget"}, result.KeyReasons)
	require.Len(t, result.Items, 1)
	assert.Equal(t, models.AnalysisItem{Name: "Headphones", Price: 49.99, Quantity: 1, Currency: "CAD"}, result.Items[0])
	assert.Nil(t, result.CoolOff)
	require.Len(t, result.Alternatives, 1)
	assert.Equal(t, models.Alternative{Name: "Refurbished model", Note: "half the price"}, result.Alternatives[0])
	require.NotNil(t, result.Confidence)
	assert.InDelta(t, 0.85, *result.Confidence, 1e-9)
}

func TestNormalizeLegacyCoolOffDelay(t *testing.T) {
	payload := map[string]any{
		"verdict":      "likely_impulsive",
		"impulseScore": 78.0,
		"coolOffSuggestion": map[string]any{
			"recommendedDelay": "24h",
			"reason":           "sleep on it",
		},
	}

	result := Normalize(payload)

	require.NotNil(t, result.CoolOff)
	assert.True(t, result.CoolOff.Recommended)
	assert.Equal(t, "24h", result.CoolOff.Delay)
	assert.Equal(t, "sleep on it", result.CoolOff.Reason)
	assert.Equal(t, models.StatusInCoolOff, result.SuggestedStatus)
}

func TestNormalizeLegacyCoolOffNone(t *testing.T) {
	payload := map[string]any{
		"verdict": "likely_impulsive",
		"coolOffSuggestion": map[string]any{
			"recommendedDelay": "none",
		},
	}

	result := Normalize(payload)

	assert.Nil(t, result.CoolOff)
	// No delay and an impulsive verdict means the purchase should be avoided.
	assert.Equal(t, models.StatusAvoided, result.SuggestedStatus)
}

func TestNormalizeDegradesUnknownValues(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"unknown verdict", map[string]any{"verdict": "maybe?"}},
		{"missing verdict", map[string]any{}},
		{"verdict wrong type", map[string]any{"verdict": 3.0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Normalize(tc.payload)
			assert.Equal(t, models.VerdictBorderline, result.Verdict)
			assert.Equal(t, 0, result.ImpulseScore)
			assert.Equal(t, "medium", result.RegretRisk)
			assert.Equal(t, models.StatusDraft, result.SuggestedStatus)
		})
	}
}

func TestNormalizeMalformedSubstructures(t *testing.T) {
	payload := map[string]any{
		"verdict":           "considered",
		"items":             "not an array",
		"keyReasons":        []any{"ok", 42.0, nil},
		"coolOffSuggestion": "24h",
		"alternatives":      []any{map[string]any{"note": "nameless"}, "Library copy"},
		"impulseScore":      "87",
	}

	result := Normalize(payload)

	assert.Nil(t, result.Items)
	assert.Equal(t, []string{"ok"}, result.KeyReasons)
	assert.Nil(t, result.CoolOff)
	require.Len(t, result.Alternatives, 1)
	assert.Equal(t, "Library copy", result.Alternatives[0].Name)
	assert.Equal(t, 87, result.ImpulseScore)
}

func TestNormalizeClampsScore(t *testing.T) {
	assert.Equal(t, 100, Normalize(map[string]any{"impulseScore": 150.0}).ImpulseScore)
	assert.Equal(t, 0, Normalize(map[string]any{"impulseScore": -5.0}).ImpulseScore)
}

func TestParseStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"verdict\": \"considered\", \"impulseScore\": 10}\n```"

	result, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, models.VerdictConsidered, result.Verdict)
	assert.Equal(t, 10, result.ImpulseScore)
}

func TestParseSurroundingProse(t *testing.T) {
	raw := "Here is my analysis:\n{\"verdict\": \"borderline\"}\nHope that helps!"

	result, err := Parse(raw)

	require.NoError(t, err)
	assert.Equal(t, models.VerdictBorderline, result.Verdict)
}

func TestParseNonJSONFails(t *testing.T) {
	_, err := Parse("I could not produce a structured answer, sorry.")
	assert.True(t, errors.Is(err, ErrUnparseable))
}
