package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStrategy_RequiresCost(t *testing.T) {
	calc := defaultCalculator()

	assert.Nil(t, calc.GenerateStrategy(Product{SalePrice: 100, CommissionRate: 20}))
	assert.Nil(t, calc.GenerateStrategy(Product{SalePrice: 100, CostPrice: CostOf(0), CommissionRate: 20}))
}

func TestGenerateStrategy_TierGrids(t *testing.T) {
	calc := defaultCalculator()

	strategy := calc.GenerateStrategy(Product{
		SalePrice:      160,
		CostPrice:      CostOf(30),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)
	require.Len(t, strategy.TierGrids, 4)

	// El primer tier no tiene punto "just below"; el último no tiene "end".
	first := strategy.TierGrids[0]
	assert.Equal(t, 58.50, first.ShippingCost)
	assert.Equal(t, "tier start", first.PricePoints[0].Label)

	last := strategy.TierGrids[3]
	assert.Equal(t, "400+", last.Range)
	for _, pt := range last.PricePoints {
		assert.NotEqual(t, "tier end", pt.Label)
	}

	// Cada punto lleva el envío del tier del propio precio evaluado.
	for _, grid := range strategy.TierGrids {
		for _, pt := range grid.PricePoints {
			assert.Equal(t, calc.Fees().ShippingCost(pt.Price), pt.Shipping)
			assert.InDelta(t, calc.Fees().ProfitAt(pt.Price, 30, 20), pt.Profit, 0.001)
		}
	}
}

func TestGenerateStrategy_SweetSpotsOnlyProfitable(t *testing.T) {
	calc := defaultCalculator()

	strategy := calc.GenerateStrategy(Product{
		SalePrice:      160,
		CostPrice:      CostOf(30),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)
	require.NotEmpty(t, strategy.SweetSpots)

	for _, spot := range strategy.SweetSpots {
		assert.Greater(t, spot.Profit, 0.0)
	}
}

func TestGenerateStrategy_CouponLandsBelowCheapestBoundary(t *testing.T) {
	calc := defaultCalculator()

	strategy := calc.GenerateStrategy(Product{
		SalePrice:      160,
		CostPrice:      CostOf(30),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)
	require.NotNil(t, strategy.Coupon)

	coupon := strategy.Coupon
	assert.InDelta(t, 149.99, coupon.FinalPrice, 0.001)
	assert.Equal(t, 184.0, coupon.ShowPrice) // ceil(160 × 1.15)
	assert.Equal(t, 35.0, coupon.CouponAmount)
	assert.Greater(t, coupon.ProfitAtFinal, 0.0)
	assert.InDelta(t, 37.0, coupon.ShippingSaved, 0.001)
}

func TestGenerateStrategy_NoCouponBelowFirstBoundary(t *testing.T) {
	calc := defaultCalculator()

	strategy := calc.GenerateStrategy(Product{
		SalePrice:      120,
		CostPrice:      CostOf(30),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)
	assert.Nil(t, strategy.Coupon)
}

func TestGenerateStrategy_CampaignsHighMargin(t *testing.T) {
	calc := defaultCalculator()

	// 140/20/20 → kâr actual 19.70, sobre ambos umbrales (coste×0.3 y ×0.2):
	// salen las tres campañas.
	strategy := calc.GenerateStrategy(Product{
		SalePrice:      140,
		CostPrice:      CostOf(20),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)
	require.Len(t, strategy.Campaigns, 3)

	// 2x1: kâr por par = 19.70×2 − 20.
	assert.Equal(t, "2 Al 1 Öde", strategy.Campaigns[0].Title)
	assert.Equal(t, "19.40 per pair", strategy.Campaigns[0].Value)

	// %10: precio con descuento redondeado hacia arriba, sigue en kâr.
	assert.Equal(t, "%10 İndirim", strategy.Campaigns[1].Title)
	assert.Equal(t, "126.00", strategy.Campaigns[1].Value)
	assert.Contains(t, strategy.Campaigns[1].Desc, "profit")

	// 3 al 2: ingreso de 2 unidades contra coste de 3 en un envío.
	assert.Equal(t, "3 Al 2 Öde", strategy.Campaigns[2].Title)
	assert.Equal(t, "54.70 net", strategy.Campaigns[2].Value)
}

func TestGenerateStrategy_CampaignsThinMargin(t *testing.T) {
	calc := defaultCalculator()

	// 290/110/20 → kâr actual 12.70, bajo coste×0.2: solo queda el %10, y el
	// descuento llevaría a pérdida.
	strategy := calc.GenerateStrategy(Product{
		SalePrice:      290,
		CostPrice:      CostOf(110),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)
	require.Len(t, strategy.Campaigns, 1)
	assert.Equal(t, "%10 İndirim", strategy.Campaigns[0].Title)
	assert.Contains(t, strategy.Campaigns[0].Desc, "loss")
}

func TestGenerateStrategy_NoCampaignsAtALoss(t *testing.T) {
	calc := defaultCalculator()

	// 160/30/20 pierde dinero al precio actual (tier de envío de 95.50):
	// ninguna campaña tiene sentido.
	strategy := calc.GenerateStrategy(Product{
		SalePrice:      160,
		CostPrice:      CostOf(30),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)
	assert.Empty(t, strategy.Campaigns)
}

func TestGenerateStrategy_Recommendations(t *testing.T) {
	calc := defaultCalculator()

	strategy := calc.GenerateStrategy(Product{
		SalePrice:      155,
		CostPrice:      CostOf(50),
		CommissionRate: 20,
	})
	require.NotNil(t, strategy)

	// Mínimo y recomendado siempre; 155 está justo sobre el breakpoint de
	// 150 pero bajar a 149.99 con coste 50 pierde dinero, así que no se
	// recomienda.
	require.Len(t, strategy.Recommendations, 2)
	assert.Equal(t, "minimum price (break-even)", strategy.Recommendations[0].Title)
	assert.Equal(t, "recommended price", strategy.Recommendations[1].Title)
}
