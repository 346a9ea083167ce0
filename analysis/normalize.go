package analysis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"impulseguard/models"
)

// Parse extracts the JSON object from raw model output and normalizes it.
// It fails only when no JSON object can be decoded at all; every shape
// problem inside a decodable object degrades field-by-field instead.
func Parse(raw string) (models.AnalysisResult, error) {
	block := ExtractJSON(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(block), &payload); err != nil {
		return models.AnalysisResult{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return Normalize(payload), nil
}

// ExtractJSON strips markdown fences and returns the outermost JSON object
// in the input, or the trimmed input when no braces are found.
func ExtractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.IndexRune(trimmed, '\n'); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return trimmed
}

// Normalize maps an arbitrary decoded analysis payload to the canonical
// result shape. The model historically answered in two layouts: the current
// one ("verdict", "coolOffSuggestion", "alternatives") and a canonical one
// ("aiVerdict", "coolOff", "suggestedAlternatives", "confidence"). The
// hallmark "aiVerdict" field decides which mapping applies. Pure, total and
// deterministic: unknown verdicts degrade to borderline, missing scores to 0,
// malformed substructures are skipped.
func Normalize(payload map[string]any) models.AnalysisResult {
	canonical := false
	verdictRaw, ok := stringField(payload, "aiVerdict")
	if ok {
		canonical = true
	} else {
		verdictRaw, _ = stringField(payload, "verdict")
	}

	result := models.AnalysisResult{
		Items:      itemsField(payload, "items"),
		Verdict:    normalizeVerdict(verdictRaw),
		Summary:    stringOr(payload, "summary", ""),
		KeyReasons: stringSliceField(payload, "keyReasons"),
		RegretRisk: normalizeRegretRisk(stringOr(payload, "regretRisk", "")),
	}

	result.ImpulseScore = clampScore(numberField(payload, "impulseScore"))
	result.UsageRealityCheck = stringOr(payload, "usageRealityCheck", "")
	result.OpportunityCost = stringOr(payload, "opportunityCost", "")

	if canonical {
		result.CoolOff = coolOffFromCanonical(payload["coolOff"])
		result.Alternatives = alternativesField(payload, "suggestedAlternatives")
		if conf, ok := payload["confidence"].(float64); ok {
			c := clampFloat(conf, 0, 1)
			result.Confidence = &c
		}
	} else {
		result.CoolOff = coolOffFromLegacy(payload["coolOffSuggestion"])
		result.Alternatives = alternativesField(payload, "alternatives")
	}

	result.SuggestedStatus = normalizeStatus(stringOr(payload, "suggestedStatus", ""), result)
	return result
}

func normalizeVerdict(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case models.VerdictLikelyImpulsive:
		return models.VerdictLikelyImpulsive
	case models.VerdictConsidered:
		return models.VerdictConsidered
	default:
		return models.VerdictBorderline
	}
}

func normalizeRegretRisk(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "low":
		return "low"
	case "high":
		return "high"
	default:
		return "medium"
	}
}

// normalizeStatus keeps a valid status from the payload and otherwise derives
// one: IN_COOL_OFF when a delay is suggested, AVOIDED for likely_impulsive,
// DRAFT for everything else.
func normalizeStatus(v string, result models.AnalysisResult) string {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case models.StatusDraft, models.StatusInCoolOff, models.StatusAvoided, models.StatusPurchased:
		return strings.ToUpper(strings.TrimSpace(v))
	}
	if result.CoolOff != nil {
		return models.StatusInCoolOff
	}
	if result.Verdict == models.VerdictLikelyImpulsive {
		return models.StatusAvoided
	}
	return models.StatusDraft
}

func coolOffFromLegacy(v any) *models.CoolOff {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	delay := stringOr(obj, "recommendedDelay", "")
	if delay == "" || strings.EqualFold(delay, "none") {
		return nil
	}
	return &models.CoolOff{
		Recommended: true,
		Delay:       delay,
		Reason:      stringOr(obj, "reason", ""),
	}
}

func coolOffFromCanonical(v any) *models.CoolOff {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	delay := stringOr(obj, "delay", "")
	recommended, _ := obj["recommended"].(bool)
	if strings.EqualFold(delay, "none") || (!recommended && delay == "") {
		return nil
	}
	return &models.CoolOff{
		Recommended: true,
		Delay:       delay,
		Reason:      stringOr(obj, "reason", ""),
	}
}

func itemsField(payload map[string]any, key string) []models.AnalysisItem {
	arr, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	items := make([]models.AnalysisItem, 0, len(arr))
	for _, entry := range arr {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item := models.AnalysisItem{
			Name:     stringOr(obj, "name", ""),
			Price:    numberOf(obj["price"]),
			Currency: stringOr(obj, "currency", ""),
		}
		if item.Name == "" {
			continue
		}
		item.Quantity = int(numberOf(obj["quantity"]))
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		items = append(items, item)
	}
	return items
}

func alternativesField(payload map[string]any, key string) []models.Alternative {
	arr, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	alts := make([]models.Alternative, 0, len(arr))
	for _, entry := range arr {
		switch v := entry.(type) {
		case string:
			if v != "" {
				alts = append(alts, models.Alternative{Name: v})
			}
		case map[string]any:
			name := stringOr(v, "name", "")
			if name == "" {
				continue
			}
			alts = append(alts, models.Alternative{Name: name, Note: stringOr(v, "note", "")})
		}
	}
	if len(alts) == 0 {
		return nil
	}
	return alts
}

func stringField(payload map[string]any, key string) (string, bool) {
	v, ok := payload[key].(string)
	return v, ok
}

func stringOr(payload map[string]any, key, fallback string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return fallback
}

func stringSliceField(payload map[string]any, key string) []string {
	arr, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, entry := range arr {
		if s, ok := entry.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func numberField(payload map[string]any, key string) float64 {
	return numberOf(payload[key])
}

// numberOf tolerates JSON numbers and numeric strings; anything else is 0.
func numberOf(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}
	return 0
}

func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
