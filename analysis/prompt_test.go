package analysis

import (
	"strings"
	"testing"

	"impulseguard/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptMinimalInput(t *testing.T) {
	prompt := BuildPrompt(models.UnifiedAnalysisInput{})

	assert.True(t, strings.HasPrefix(prompt, promptPreamble))
	assert.True(t, strings.HasSuffix(prompt, promptSchema))

	// No empty section headers for absent data.
	assert.NotContains(t, prompt, "User profile:")
	assert.NotContains(t, prompt, "Purchase under consideration:")
	assert.NotContains(t, prompt, "reason for buying")
	assert.NotContains(t, prompt, "Items detected in the cart:")
	assert.NotContains(t, prompt, "Raw text scraped")
	assert.NotContains(t, prompt, "Survey answers:")
}

func TestBuildPromptTruncatesPageContext(t *testing.T) {
	input := models.UnifiedAnalysisInput{
		PageContext: strings.Repeat("¤", MaxPageContextLen+1500),
	}
	prompt := BuildPrompt(input)

	// The marker rune appears nowhere else in the prompt templates.
	assert.Equal(t, MaxPageContextLen, strings.Count(prompt, "¤"))
}

func TestBuildPromptShortPageContextNotTruncated(t *testing.T) {
	input := models.UnifiedAnalysisInput{PageContext: "Checkout - Total $49.99"}
	prompt := BuildPrompt(input)

	assert.Contains(t, prompt, "Raw text scraped from the checkout page:")
	assert.Contains(t, prompt, "Checkout - Total $49.99")
}

func TestBuildPromptWebFlowSections(t *testing.T) {
	budget := 500.0
	input := models.UnifiedAnalysisInput{
		Item:   "Headphones",
		Price:  "CAD 49.99",
		Reason: "My old pair broke",
		Profile: &models.Profile{
			MonthlyBudget: &budget,
			Currency:      "CAD",
			Interests:     []string{"music", "cycling"},
		},
		Survey: &models.SurveyAnswers{
			Necessity:     "somewhat",
			HowLongWanted: "two weeks",
		},
	}
	prompt := BuildPrompt(input)

	assert.Contains(t, prompt, "User profile:")
	assert.Contains(t, prompt, "Monthly budget: 500.00 CAD")
	assert.Contains(t, prompt, "music, cycling")
	assert.Contains(t, prompt, "- Item: Headphones")
	assert.Contains(t, prompt, "- Price: CAD 49.99")
	assert.Contains(t, prompt, "My old pair broke")
	assert.Contains(t, prompt, "Survey answers:")
	assert.Contains(t, prompt, "How long have you wanted it? two weeks")
	// Unanswered survey questions are skipped.
	assert.NotContains(t, prompt, "How are you feeling right now?")
}

func TestBuildPromptDetectedItems(t *testing.T) {
	input := models.UnifiedAnalysisInput{
		DetectedItems: []models.AnalysisItem{
			{Name: "USB cable", Price: 9.99, Quantity: 2, Currency: "USD"},
			{Name: "Desk lamp", Price: 34.5, Currency: "USD"},
		},
	}
	prompt := BuildPrompt(input)

	assert.Contains(t, prompt, "Items detected in the cart:")
	assert.Contains(t, prompt, "- USB cable x2 at 9.99 USD")
	// Zero quantity defaults to one in the serialized line.
	assert.Contains(t, prompt, "- Desk lamp x1 at 34.50 USD")
}
