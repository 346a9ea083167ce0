package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"impulseguard/analysis"
	"impulseguard/config"
	"impulseguard/database"
	"impulseguard/models"

	"github.com/gofiber/fiber/v2"
)

// InsightRequest selects the reporting window ending at call time.
type InsightRequest struct {
	Period string `json:"period"`
}

type insightNarrative struct {
	Narrative  string   `json:"narrative"`
	Highlights []string `json:"highlights,omitempty"`
}

// HandleInsights summarizes the caller's recent spending. When the model is
// configured it produces a narrative (source "gemini", or "gemini-raw" when
// the output is not JSON); otherwise, and on any model failure, the local
// aggregator answers deterministically (source "local") without any network
// call.
// POST /api/v1/insights
func HandleInsights(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req InsightRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	now := time.Now()
	from, err := periodStart(now, req.Period)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid period (expected day, week, month or year)")
	}

	transactions, err := fetchTransactionsSince(c, userID, from)
	if err != nil {
		log.Printf("Error loading transactions for insights: %v", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Database error")
	}

	base := fiber.Map{
		"period":       req.Period,
		"from":         from,
		"to":           now,
		"transactions": transactions,
	}

	requester := analysis.NewRequester(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	if requester.Configured() {
		raw, err := requester.Generate(c.Context(), insightPrompt(req.Period, transactions))
		if err == nil {
			var narrative insightNarrative
			if jsonErr := json.Unmarshal([]byte(analysis.ExtractJSON(raw)), &narrative); jsonErr == nil && narrative.Narrative != "" {
				base["source"] = "gemini"
				base["narrative"] = narrative.Narrative
				if len(narrative.Highlights) > 0 {
					base["highlights"] = narrative.Highlights
				}
				return c.JSON(base)
			}
			base["source"] = "gemini-raw"
			base["raw"] = raw
			return c.JSON(base)
		}
		log.Printf("Insight generation failed, falling back to local aggregation: %v", err)
	}

	base["source"] = "local"
	base["local"] = analysis.Aggregate(recordsFromTransactions(transactions))
	return c.JSON(base)
}

func periodStart(now time.Time, period string) (time.Time, error) {
	switch period {
	case "day":
		return now.AddDate(0, 0, -1), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

func fetchTransactionsSince(c *fiber.Ctx, userID string, from time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, description, analysis, verdict, created_at
		FROM transactions
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`

	rows, err := database.GetDB().Query(c.Context(), query, userID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var analysisText, verdict sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Description, &analysisText, &verdict, &t.CreatedAt); err != nil {
			log.Printf("Error scanning transaction row: %v", err)
			continue
		}
		if analysisText.Valid {
			t.Analysis = &analysisText.String
		}
		if verdict.Valid {
			t.Verdict = &verdict.String
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func recordsFromTransactions(transactions []models.Transaction) []analysis.Record {
	records := make([]analysis.Record, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, analysis.Record{
			Amount:      t.Amount,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}
	return records
}

func insightPrompt(period string, transactions []models.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a personal finance coach. Summarize this user's spending over the last %s.\n", period)
	b.WriteString("Transactions (newest first):\n")
	for _, t := range transactions {
		fmt.Fprintf(&b, "- %s: %.2f on %s\n", t.CreatedAt.Format("2006-01-02"), t.Amount, t.Description)
	}
	b.WriteString("\nReply with a single JSON object: {\"narrative\": string, \"highlights\": [string]}.\n")
	b.WriteString("The narrative should be 2-4 sentences, concrete, and mention the biggest spending pattern.\n")
	return b.String()
}
