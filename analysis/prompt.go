package analysis

import (
	"fmt"
	"strings"

	"impulseguard/models"
)

// MaxPageContextLen bounds how much scraped page text is forwarded to the
// model. Matches the historical 6000-character budget.
const MaxPageContextLen = 6000

const promptPreamble = `You are a mindful-spending assistant. A user is about to make a purchase and wants an honest impulse check.
Rules:
- Judge impulsiveness from the evidence given, not from the price alone.
- Be direct but kind; never shame the user.
- If the evidence is thin, say so and lean toward "borderline".
- Reply with a single JSON object and nothing else.`

const promptSchema = `Return EXACTLY this JSON shape:
{
  "items": [{"name": string, "price": number, "quantity": number, "currency": string}],
  "verdict": "likely_impulsive" | "borderline" | "considered",
  "suggestedStatus": "DRAFT" | "IN_COOL_OFF" | "AVOIDED" | "PURCHASED",
  "impulseScore": integer 0-100,
  "regretRisk": "low" | "medium" | "high",
  "summary": string,
  "keyReasons": [string],
  "usageRealityCheck": string (optional),
  "opportunityCost": string (optional),
  "coolOffSuggestion": {"recommendedDelay": "none" | "24h" | "48h" | "1w", "reason": string} (optional),
  "alternatives": [{"name": string, "note": string}] (optional)
}
Derive suggestedStatus in this order: IN_COOL_OFF if you suggest a delay other than "none", else AVOIDED if the verdict is likely_impulsive, else DRAFT.`

// BuildPrompt assembles one prompt string from whatever parts of the input
// are present. Sections with no data are omitted entirely. Pure function.
func BuildPrompt(input models.UnifiedAnalysisInput) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n")

	if p := input.Profile; p != nil {
		b.WriteString("\nUser profile:\n")
		if p.MonthlyBudget != nil {
			fmt.Fprintf(&b, "- Monthly budget: %.2f %s\n", *p.MonthlyBudget, p.Currency)
		} else if p.Currency != "" {
			fmt.Fprintf(&b, "- Preferred currency: %s\n", p.Currency)
		}
		if len(p.Interests) > 0 {
			fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(p.Interests, ", "))
		}
		if p.SavingsGoalID != nil {
			b.WriteString("- The user has an active savings goal.\n")
		}
	}

	if input.Item != "" || input.Price != "" || input.Description != "" {
		b.WriteString("\nPurchase under consideration:\n")
		if input.Item != "" {
			fmt.Fprintf(&b, "- Item: %s\n", input.Item)
		}
		if input.Price != "" {
			fmt.Fprintf(&b, "- Price: %s\n", input.Price)
		}
		if input.Description != "" {
			fmt.Fprintf(&b, "- Description: %s\n", input.Description)
		}
	}

	if input.Reason != "" {
		fmt.Fprintf(&b, "\nUser's stated reason for buying:\n%s\n", input.Reason)
	}

	if len(input.DetectedItems) > 0 {
		b.WriteString("\nItems detected in the cart:\n")
		for _, item := range input.DetectedItems {
			qty := item.Quantity
			if qty <= 0 {
				qty = 1
			}
			fmt.Fprintf(&b, "- %s x%d at %.2f %s\n", item.Name, qty, item.Price, item.Currency)
		}
	}

	if input.PageContext != "" {
		b.WriteString("\nRaw text scraped from the checkout page:\n")
		b.WriteString(truncateRunes(input.PageContext, MaxPageContextLen))
		b.WriteString("\n")
	}

	if s := input.Survey; s != nil {
		b.WriteString("\nSurvey answers:\n")
		writeSurveyLine(&b, "How necessary is this?", s.Necessity)
		writeSurveyLine(&b, "How long have you wanted it?", s.HowLongWanted)
		writeSurveyLine(&b, "How often will you use it?", s.UsageFrequency)
		writeSurveyLine(&b, "How are you feeling right now?", s.Feeling)
		writeSurveyLine(&b, "Does it fit your budget?", s.FitsBudget)
	}

	b.WriteString("\n")
	b.WriteString(promptSchema)
	return b.String()
}

func writeSurveyLine(b *strings.Builder, question, answer string) {
	if answer == "" {
		return
	}
	fmt.Fprintf(b, "- %s %s\n", question, answer)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
