package handlers

import (
	"log"

	"impulseguard/analysis"
	"impulseguard/config"
	"impulseguard/models"

	"github.com/gofiber/fiber/v2"
)

// AnalyzeRequest is the manual web-survey flow body.
type AnalyzeRequest struct {
	Item        string                `json:"item"`
	Price       string                `json:"price"`
	Description string                `json:"description,omitempty"`
	Reason      string                `json:"reason,omitempty"`
	Survey      *models.SurveyAnswers `json:"surveyAnswers,omitempty"`
}

// PageAnalyzeRequest is the extension flow body (OPEN_ANALYSIS message).
type PageAnalyzeRequest struct {
	PageTxt       string                `json:"pageTxt"`
	DetectedItems []models.AnalysisItem `json:"detectedItems,omitempty"`
}

// DetectRequest asks whether a URL looks like a shopping page.
type DetectRequest struct {
	URL string `json:"url"`
}

// HandleAnalyze runs the purchase analysis pipeline for the web flow.
// POST /api/v1/analysis/analyze
func HandleAnalyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.Item == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required field: item")
	}

	input := models.UnifiedAnalysisInput{
		Item:        req.Item,
		Price:       req.Price,
		Description: req.Description,
		Reason:      req.Reason,
		Survey:      req.Survey,
	}
	return runAnalysis(c, input)
}

// HandleAnalyzePage runs the same pipeline over scraped page context.
// POST /api/v1/analysis/page
func HandleAnalyzePage(c *fiber.Ctx) error {
	var req PageAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.PageTxt == "" && len(req.DetectedItems) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required field: pageTxt or detectedItems")
	}

	input := models.UnifiedAnalysisInput{
		PageContext:   req.PageTxt,
		DetectedItems: req.DetectedItems,
	}
	return runAnalysis(c, input)
}

// HandleDetect applies the shopping-page URL heuristic for the content script.
// POST /api/v1/analysis/detect
func HandleDetect(c *fiber.Ctx) error {
	var req DetectRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if req.URL == "" {
		return errorJSON(c, fiber.StatusBadRequest, "Missing required field: url")
	}

	shopping, keyword := analysis.DetectShopping(req.URL)
	return c.JSON(fiber.Map{"shopping": shopping, "matchedKeyword": keyword})
}

// runAnalysis attaches the stored profile snapshot, composes the prompt,
// calls the model once and normalizes whatever comes back. The request
// context flows into the upstream call, so a dropped connection cancels it.
func runAnalysis(c *fiber.Ctx, input models.UnifiedAnalysisInput) error {
	if userID, ok := currentUserID(c); ok {
		profile, err := fetchProfile(c.Context(), userID)
		if err == nil {
			input.Profile = profile
		}
	}

	prompt := analysis.BuildPrompt(input)
	requester := analysis.NewRequester(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)

	raw, err := requester.Generate(c.Context(), prompt)
	if err != nil {
		log.Printf("Analysis generation failed: %v", err)
		return aiFailureResponse(c, err)
	}

	result, err := analysis.Parse(raw)
	if err != nil {
		// The model answered but not in JSON; hand back the raw text instead
		// of failing the whole request.
		return c.JSON(fiber.Map{"source": "gemini-raw", "raw": raw})
	}

	return c.JSON(result)
}
