package analysis

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSummary(t *testing.T) {
	records := []Record{{Amount: 10}, {Amount: 20}, {Amount: 30}}

	insight := Aggregate(records)

	assert.Equal(t, Summary{Total: 60, Count: 3, Avg: 20}, insight.Summary)
}

func TestAggregateEmpty(t *testing.T) {
	insight := Aggregate(nil)

	assert.Equal(t, Summary{}, insight.Summary)
	assert.Empty(t, insight.TopMerchants)
	assert.Empty(t, insight.ImpulseCandidates)
}

func TestAggregateTopMerchants(t *testing.T) {
	records := []Record{
		{Amount: 30, Description: "A"},
		{Amount: 10, Description: "B"},
		{Amount: 20, Description: "A"},
	}

	insight := Aggregate(records)

	require.Len(t, insight.TopMerchants, 2)
	assert.Equal(t, MerchantTotal{Merchant: "A", Total: 50, Count: 2}, insight.TopMerchants[0])
	assert.Equal(t, MerchantTotal{Merchant: "B", Total: 10, Count: 1}, insight.TopMerchants[1])
}

func TestAggregateTopMerchantsTieBreak(t *testing.T) {
	records := []Record{
		{Amount: 25, Description: "First"},
		{Amount: 25, Description: "Second"},
	}

	insight := Aggregate(records)

	require.Len(t, insight.TopMerchants, 2)
	assert.Equal(t, "First", insight.TopMerchants[0].Merchant)
	assert.Equal(t, "Second", insight.TopMerchants[1].Merchant)
}

func TestAggregateTopMerchantsCapped(t *testing.T) {
	var records []Record
	for i := 0; i < 8; i++ {
		records = append(records, Record{Amount: float64(i + 1), Description: fmt.Sprintf("M%d", i)})
	}

	insight := Aggregate(records)

	assert.Len(t, insight.TopMerchants, TopMerchantLimit)
	assert.Equal(t, "M7", insight.TopMerchants[0].Merchant)
}

func TestAggregateImpulseCandidates(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	records := []Record{
		{Amount: 150, Description: "TV", CreatedAt: base.Add(3 * time.Hour)},
		{Amount: 40, Description: "Snacks", CreatedAt: base.Add(1 * time.Hour)},
		{Amount: 99.99, Description: "Shoes", CreatedAt: base.Add(2 * time.Hour)},
		{Amount: 100, Description: "Exactly at threshold", CreatedAt: base},
	}

	insight := Aggregate(records)

	require.Len(t, insight.ImpulseCandidates, 3)
	// Most recent first, anything above the threshold excluded.
	assert.Equal(t, "Shoes", insight.ImpulseCandidates[0].Description)
	assert.Equal(t, "Snacks", insight.ImpulseCandidates[1].Description)
	assert.Equal(t, "Exactly at threshold", insight.ImpulseCandidates[2].Description)
}

func TestAggregateImpulseCandidatesCapped(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	var records []Record
	for i := 0; i < 15; i++ {
		records = append(records, Record{
			Amount:      10,
			Description: fmt.Sprintf("T%d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	insight := Aggregate(records)

	require.Len(t, insight.ImpulseCandidates, MaxImpulseCandidates)
	assert.Equal(t, "T14", insight.ImpulseCandidates[0].Description)
	assert.Equal(t, "T5", insight.ImpulseCandidates[MaxImpulseCandidates-1].Description)
}

func TestRecordFromMapAmountKey(t *testing.T) {
	rec := RecordFromMap(map[string]any{"amount": 10.0, "description": "Coffee"})
	assert.Equal(t, 10.0, rec.Amount)
	assert.Equal(t, "Coffee", rec.Description)
}

func TestRecordFromMapPriceKey(t *testing.T) {
	rec := RecordFromMap(map[string]any{"price": 42.5, "merchant": "Cafe", "created_at": "2026-08-01T12:00:00Z"})
	assert.Equal(t, 42.5, rec.Amount)
	assert.Equal(t, "Cafe", rec.Description)
	assert.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), rec.CreatedAt)
}

func TestRecordsFromMaps(t *testing.T) {
	records := RecordsFromMaps([]map[string]any{
		{"amount": 1.0},
		{"price": "2.50", "payee": "Kiosk"},
	})
	require.Len(t, records, 2)
	assert.Equal(t, 1.0, records[0].Amount)
	assert.Equal(t, 2.5, records[1].Amount)
	assert.Equal(t, "Kiosk", records[1].Description)
}
