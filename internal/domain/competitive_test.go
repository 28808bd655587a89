package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultParams() CompetitiveParams {
	return CompetitiveParams{
		MeanDeviationPct:      25,
		NearestCount:          10,
		TierBoundaryMargin:    10,
		DefaultCommissionRate: 20,
	}
}

func listingsAt(prices ...float64) []CompetitorListing {
	out := make([]CompetitorListing, 0, len(prices))
	for _, p := range prices {
		out = append(out, CompetitorListing{Title: "listing", SalePrice: p, ListPrice: p})
	}
	return out
}

func TestAnalyzeCompetitors_ReferenceSet(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 150, CategoryName: "Mutfak"}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 120, 140, 160, 180), defaultParams())
	require.True(t, out.HasData)

	assert.Equal(t, 5, out.Stats.Count)
	assert.InDelta(t, 140, out.Stats.Avg, 0.001)
	assert.InDelta(t, 140, out.Stats.Median, 0.001)
	assert.Equal(t, 100.0, out.Stats.Min)
	assert.Equal(t, 180.0, out.Stats.Max)
	assert.InDelta(t, 28.28, out.Stats.StdDev, 0.01)

	assert.Equal(t, 60, out.Position.Percentile)
	assert.Equal(t, 3, out.Position.CheaperCount)
	assert.Equal(t, 2, out.Position.ExpensiveCount)
	assert.Equal(t, out.Stats.Count, out.Position.CheaperCount+out.Position.ExpensiveCount)
}

func TestAnalyzeCompetitors_EmptySet(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 150, CategoryName: "Mutfak", CostPrice: CostOf(50)}

	out := calc.AnalyzeCompetitors(subject, nil, defaultParams())
	assert.False(t, out.HasData)
	assert.NotEmpty(t, out.Message)
	// El başabaş no depende de los competidores (comisión default 20).
	assert.InDelta(t, 199.13, out.BreakEvenPrice, 0.01)
}

func TestAnalyzeCompetitors_IgnoresNonPositivePrices(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 150}

	listings := append(listingsAt(100, 200), CompetitorListing{SalePrice: 0}, CompetitorListing{SalePrice: -5})
	out := calc.AnalyzeCompetitors(subject, listings, defaultParams())
	assert.Equal(t, 2, out.Stats.Count)
}

func TestRecommendation_High(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 200}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 120, 140, 160, 180), defaultParams())
	require.NotNil(t, out.Recommendation)
	assert.Equal(t, "high", out.Recommendation.Type)
	assert.InDelta(t, 154, out.Recommendation.SuggestedPrice, 0.001) // avg × 1.10
}

func TestRecommendation_Low(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 90}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 120, 140, 160, 180), defaultParams())
	require.NotNil(t, out.Recommendation)
	assert.Equal(t, "low", out.Recommendation.Type)
	assert.InDelta(t, 133, out.Recommendation.SuggestedPrice, 0.001) // avg × 0.95
}

func TestRecommendation_WellPositioned(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 145}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 120, 140, 160, 180), defaultParams())
	require.NotNil(t, out.Recommendation)
	assert.Equal(t, "good", out.Recommendation.Type)
	assert.Equal(t, 145.0, out.Recommendation.SuggestedPrice)
}

func TestDiscountStats(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 100}

	listings := []CompetitorListing{
		{SalePrice: 80, ListPrice: 100},  // 20% off
		{SalePrice: 90, ListPrice: 100},  // 10% off
		{SalePrice: 100, ListPrice: 100}, // sin descuento
		{SalePrice: 110, ListPrice: 100}, // list < sale: no cuenta
	}
	out := calc.AnalyzeCompetitors(subject, listings, defaultParams())

	assert.Equal(t, 2, out.Discounts.DiscountedCount)
	assert.InDelta(t, 0.5, out.Discounts.DiscountedShare, 0.001)
	assert.InDelta(t, 15.0, out.Discounts.AvgDiscountPercent, 0.001)
}

func TestNearestCompetitors_OrderAndLimit(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 150}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 120, 140, 160, 180), CompetitiveParams{
		MeanDeviationPct: 25, NearestCount: 3, TierBoundaryMargin: 10, DefaultCommissionRate: 20,
	})

	require.Len(t, out.Nearest, 3)
	// 140 y 160 están a 10; 120 a 30.
	assert.InDelta(t, 10, absFloat(out.Nearest[0].PriceDiff), 0.001)
	assert.InDelta(t, 10, absFloat(out.Nearest[1].PriceDiff), 0.001)
	assert.InDelta(t, -30, out.Nearest[2].PriceDiff, 0.001)
}

func TestSegments_QuartilesAndSubjectFlag(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 150}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 120, 140, 160, 180), defaultParams())
	require.Len(t, out.Segments, 4)

	assert.Equal(t, "cheap", out.Segments[0].Label)
	assert.Equal(t, 100.0, out.Segments[0].From)
	assert.Equal(t, "expensive", out.Segments[3].Label)
	assert.Equal(t, 180.0, out.Segments[3].To)

	total := 0
	marked := 0
	for _, seg := range out.Segments {
		total += seg.Count
		if seg.ContainsSubject {
			marked++
		}
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, 1, marked)
	assert.True(t, out.Segments[2].ContainsSubject) // 150 cae en mid-high [140,160)
}

func TestTierOpportunity_JustAboveBreakpoint(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 155}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 200), defaultParams())
	require.NotNil(t, out.Tier)
	assert.InDelta(t, 149.99, out.Tier.BreakpointPrice, 0.001)
	assert.Equal(t, 95.50, out.Tier.CurrentShipping)
	assert.Equal(t, 58.50, out.Tier.TargetShipping)
	assert.InDelta(t, 37.0, out.Tier.Saving, 0.001)
}

func TestTierOpportunity_FarFromBreakpoint(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 250}

	out := calc.AnalyzeCompetitors(subject, listingsAt(100, 200), defaultParams())
	assert.Nil(t, out.Tier)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
