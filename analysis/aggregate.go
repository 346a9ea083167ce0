package analysis

import (
	"sort"
	"time"
)

// Thresholds preserved from the original product. Exported so deployments
// can tune them without re-deriving values.
const (
	// ImpulseAmountThreshold marks a transaction as an impulse candidate.
	// Same currency units as stored; no conversion.
	ImpulseAmountThreshold = 100.0
	// MaxImpulseCandidates bounds the candidate shortlist.
	MaxImpulseCandidates = 10
	// TopMerchantLimit bounds the per-merchant spend ranking.
	TopMerchantLimit = 5
)

// Record is one transaction as seen by the aggregator.
type Record struct {
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary holds totals over a set of records.
type Summary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
}

// MerchantTotal is aggregated spend for one merchant.
type MerchantTotal struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// LocalInsight is the deterministic fallback computed when the AI path is
// unavailable.
type LocalInsight struct {
	Summary           Summary         `json:"summary"`
	TopMerchants      []MerchantTotal `json:"topMerchants"`
	ImpulseCandidates []Record        `json:"impulseCandidates"`
}

// Aggregate reduces a transaction list to summary statistics without any
// external call: totals, top merchants by spend (ties broken by first
// occurrence), and an impulse-candidate shortlist ordered most recent first.
func Aggregate(records []Record) LocalInsight {
	insight := LocalInsight{
		TopMerchants:      []MerchantTotal{},
		ImpulseCandidates: []Record{},
	}

	merchantIndex := make(map[string]int)
	for _, rec := range records {
		insight.Summary.Total += rec.Amount
		insight.Summary.Count++

		idx, seen := merchantIndex[rec.Description]
		if !seen {
			merchantIndex[rec.Description] = len(insight.TopMerchants)
			insight.TopMerchants = append(insight.TopMerchants, MerchantTotal{Merchant: rec.Description})
			idx = merchantIndex[rec.Description]
		}
		insight.TopMerchants[idx].Total += rec.Amount
		insight.TopMerchants[idx].Count++

		if rec.Amount <= ImpulseAmountThreshold {
			insight.ImpulseCandidates = append(insight.ImpulseCandidates, rec)
		}
	}

	if insight.Summary.Count > 0 {
		insight.Summary.Avg = insight.Summary.Total / float64(insight.Summary.Count)
	}

	// Stable sorts keep insertion order for ties.
	sort.SliceStable(insight.TopMerchants, func(i, j int) bool {
		return insight.TopMerchants[i].Total > insight.TopMerchants[j].Total
	})
	if len(insight.TopMerchants) > TopMerchantLimit {
		insight.TopMerchants = insight.TopMerchants[:TopMerchantLimit]
	}

	sort.SliceStable(insight.ImpulseCandidates, func(i, j int) bool {
		return insight.ImpulseCandidates[i].CreatedAt.After(insight.ImpulseCandidates[j].CreatedAt)
	})
	if len(insight.ImpulseCandidates) > MaxImpulseCandidates {
		insight.ImpulseCandidates = insight.ImpulseCandidates[:MaxImpulseCandidates]
	}

	return insight
}

// RecordFromMap converts a loosely-shaped transaction record. Stored rows use
// "amount"/"description"; extension-captured records may use "price" and
// "merchant" or "payee" instead.
func RecordFromMap(m map[string]any) Record {
	rec := Record{Amount: numberOf(m["amount"])}
	if rec.Amount == 0 {
		if _, ok := m["amount"]; !ok {
			rec.Amount = numberOf(m["price"])
		}
	}
	for _, key := range []string{"description", "merchant", "payee"} {
		if s, ok := m[key].(string); ok && s != "" {
			rec.Description = s
			break
		}
	}
	if s, ok := m["created_at"].(string); ok {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			rec.CreatedAt = ts
		}
	}
	return rec
}

// RecordsFromMaps converts a batch of loose records.
func RecordsFromMaps(maps []map[string]any) []Record {
	records := make([]Record, 0, len(maps))
	for _, m := range maps {
		records = append(records, RecordFromMap(m))
	}
	return records
}
