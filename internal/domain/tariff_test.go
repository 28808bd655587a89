package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeTariff_RequiresCostAndPrice(t *testing.T) {
	calc := defaultCalculator()
	usages := []RateUsage{{Rate: 15, SalesCount: 3}}

	assert.Nil(t, calc.AnalyzeTariff(Product{SalePrice: 100, CommissionRate: 20}, usages, nil))
	assert.Nil(t, calc.AnalyzeTariff(Product{CostPrice: CostOf(50), CommissionRate: 20}, usages, nil))
}

func TestAnalyzeTariff_OnlyLowerRates(t *testing.T) {
	calc := defaultCalculator()
	subject := Product{SalePrice: 200, CostPrice: CostOf(50), CommissionRate: 20}

	usages := []RateUsage{
		{Rate: 15, SalesCount: 4, ProductCount: 2},
		{Rate: 20, SalesCount: 9},
		{Rate: 25, SalesCount: 1},
	}
	out := calc.AnalyzeTariff(subject, usages, []float64{15})
	require.NotNil(t, out)

	require.Len(t, out.Scenarios, 1)
	s := out.Scenarios[0]
	assert.Equal(t, 15.0, s.Rate)
	assert.Equal(t, 5.0, s.RateSaving)
	assert.True(t, s.WasUsedBefore)
	// 5 puntos menos sobre 200 = 10 de comisión ahorrada.
	assert.InDelta(t, 10.0, s.CommissionSaving, 0.001)
	assert.InDelta(t, 10.0, s.ProfitGainSamePrice, 0.001)
	assert.True(t, out.HasOpportunity)
	require.NotNil(t, out.Best)
	assert.Equal(t, 15.0, out.Best.Rate)
}

func TestAnalyzeTariff_DropsSkipPricesBelowCost(t *testing.T) {
	calc := defaultCalculator()
	// 25% de bajada dejaría 150 justo al coste; nada por debajo.
	subject := Product{SalePrice: 200, CostPrice: CostOf(160), CommissionRate: 20}

	out := calc.AnalyzeTariff(subject, []RateUsage{{Rate: 10, SalesCount: 2}}, nil)
	require.NotNil(t, out)
	require.Len(t, out.Scenarios, 1)

	for _, drop := range out.Scenarios[0].Drops {
		assert.GreaterOrEqual(t, drop.NewPrice, 160.0)
	}
}

func TestPickBestDrop_PrefersBetterThenProfitable(t *testing.T) {
	better := PriceDropScenario{DropPercent: 10, IsProfitable: true, IsBetter: true}
	profitable := PriceDropScenario{DropPercent: 5, IsProfitable: true}
	losing := PriceDropScenario{DropPercent: 25}

	got := pickBestDrop([]PriceDropScenario{losing, profitable, better})
	require.NotNil(t, got)
	assert.Equal(t, 10.0, got.DropPercent)

	got = pickBestDrop([]PriceDropScenario{losing, profitable})
	require.NotNil(t, got)
	assert.Equal(t, 5.0, got.DropPercent)

	got = pickBestDrop([]PriceDropScenario{losing})
	require.NotNil(t, got)
	assert.Equal(t, 25.0, got.DropPercent)

	assert.Nil(t, pickBestDrop(nil))
}
