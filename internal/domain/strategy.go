package domain

import (
	"fmt"
	"math"
)

// StrategyPricePoint es un punto de precio notable dentro de un tier.
type StrategyPricePoint struct {
	Price    float64
	Label    string
	Profit   float64
	Shipping float64
}

// TierProfitGrid es el análisis de kâr de un tier de envío en sus puntos
// notables: justo bajo el breakpoint, inicio, medio y final del tier.
type TierProfitGrid struct {
	Range        string
	ShippingCost float64
	PricePoints  []StrategyPricePoint
}

// SweetSpot es un punto de transición de barem con kâr positivo.
type SweetSpot struct {
	Price    float64
	Profit   float64
	Shipping float64
	Note     string
}

// CouponStrategy propone mostrar un precio inflado con cupón que aterrice el
// precio final justo en el barem de envío más barato.
type CouponStrategy struct {
	ShowPrice     float64
	CouponAmount  float64
	FinalPrice    float64
	ProfitAtFinal float64
	ShippingSaved float64
}

// StrategyRecommendation es una recomendación puntual de la estrategia.
type StrategyRecommendation struct {
	Title string
	Value string
	Desc  string
}

// PricingStrategy es el informe de estrategia de precios de un producto.
type PricingStrategy struct {
	Current         ProductAnalysis
	TierGrids       []TierProfitGrid
	SweetSpots      []SweetSpot
	Coupon          *CouponStrategy
	Campaigns       []StrategyRecommendation
	Recommendations []StrategyRecommendation
}

// GenerateStrategy construye el informe de estrategia de precios.
// Devuelve nil sin coste conocido: toda la estrategia pivota sobre el kâr.
func (c *Calculator) GenerateStrategy(p Product) *PricingStrategy {
	if !p.HasCost() || p.Cost() <= 0 {
		return nil
	}

	cost := p.Cost()
	rate := p.CommissionRate

	out := &PricingStrategy{Current: c.AnalyzeProduct(p)}

	out.TierGrids = c.buildTierGrids(cost, rate)
	out.SweetSpots = c.findSweetSpots(cost, rate)
	out.Coupon = c.buildCouponStrategy(p.SalePrice, cost, rate)
	out.Campaigns = c.buildCampaigns(p.SalePrice, cost, rate, out.Current.Profit.NetProfit)

	minimum := c.MinPrice(cost, rate)
	recommended := c.RecommendedPrice(cost, rate)
	out.Recommendations = append(out.Recommendations,
		StrategyRecommendation{
			Title: "minimum price (break-even)",
			Value: fmt.Sprintf("%.2f", minimum.Price),
			Desc:  "selling below this price loses money",
		},
		StrategyRecommendation{
			Title: "recommended price",
			Value: fmt.Sprintf("%.2f", recommended.Price),
			Desc: fmt.Sprintf("%.2f profit (%.0f%% target margin)",
				c.fees.ProfitAt(recommended.Price, cost, rate),
				c.margins.IdealMargin(cost)*100),
		},
	)

	if opp := c.tierOpportunity(p.SalePrice, 10); opp != nil {
		if profit := c.fees.ProfitAt(opp.BreakpointPrice, cost, rate); profit > 0 {
			out.Recommendations = append(out.Recommendations, StrategyRecommendation{
				Title: "shipping tier opportunity",
				Value: fmt.Sprintf("%.2f", opp.BreakpointPrice),
				Desc: fmt.Sprintf("dropping to %.2f cuts shipping to %.2f (saves %.2f); net profit %.2f",
					opp.BreakpointPrice, opp.TargetShipping, opp.Saving, profit),
			})
		}
	}

	return out
}

// buildCampaigns propone campañas del marketplace según el margen actual.
// Los nombres son los de las campañas estándar de la plataforma.
func (c *Calculator) buildCampaigns(price, cost, rate, currentProfit float64) []StrategyRecommendation {
	var out []StrategyRecommendation

	// 2x1 solo con margen alto: se regala el coste de una unidad.
	if currentProfit > cost*0.3 {
		pairProfit := currentProfit*2 - cost
		out = append(out, StrategyRecommendation{
			Title: "2 Al 1 Öde",
			Value: fmt.Sprintf("%.2f per pair", pairProfit),
			Desc:  "high margin: a buy-2-pay-1 campaign can boost volume while staying profitable",
		})
	}

	if currentProfit > 0 {
		discountedPrice := math.Ceil(price * 0.9)
		discountedProfit := c.fees.ProfitAt(discountedPrice, cost, rate)
		desc := fmt.Sprintf("at %.2f you still make %.2f profit; sales velocity may improve", discountedPrice, discountedProfit)
		if discountedProfit <= 0 {
			desc = fmt.Sprintf("at %.2f you would sell at a loss (%.2f)", discountedPrice, discountedProfit)
		}
		out = append(out, StrategyRecommendation{
			Title: "%10 İndirim",
			Value: fmt.Sprintf("%.2f", discountedPrice),
			Desc:  desc,
		})
	}

	// 3 al 2 öde: ingreso de 2 unidades contra el coste de 3, en un solo envío.
	if currentProfit > cost*0.2 {
		net := c.fees.ProfitAt(price*2, cost*3, rate)
		out = append(out, StrategyRecommendation{
			Title: "3 Al 2 Öde",
			Value: fmt.Sprintf("%.2f net", net),
			Desc: fmt.Sprintf("revenue %.2f against the cost of 3 units (%.2f), one shipment",
				price*2, cost*3),
		})
	}

	return out
}

// buildTierGrids evalúa el kâr en los puntos notables de cada tier.
func (c *Calculator) buildTierGrids(cost, rate float64) []TierProfitGrid {
	var out []TierProfitGrid
	for _, tier := range c.fees.tiers {
		grid := TierProfitGrid{ShippingCost: tier.Cost}

		unbounded := math.IsInf(tier.MaxPrice, 1)
		if unbounded {
			grid.Range = fmt.Sprintf("%.0f+", tier.MinPrice)
		} else {
			grid.Range = fmt.Sprintf("%.0f - %.2f", tier.MinPrice, tier.MaxPrice)
		}

		var points []StrategyPricePoint
		if tier.MinPrice > 0 {
			below := tier.MinPrice - 0.01
			points = append(points, StrategyPricePoint{Price: below, Label: "just below tier"})
		}
		start := tier.MinPrice
		if start == 0 {
			start = 50 // un precio representativo dentro del primer tier
		}
		points = append(points, StrategyPricePoint{Price: start, Label: "tier start"})

		mid := tier.MinPrice + 100
		if !unbounded {
			mid = (tier.MinPrice + tier.MaxPrice) / 2
		}
		points = append(points, StrategyPricePoint{Price: mid, Label: "tier middle"})

		if !unbounded {
			points = append(points, StrategyPricePoint{Price: tier.MaxPrice, Label: "tier end"})
		}

		for i := range points {
			points[i].Profit = c.fees.ProfitAt(points[i].Price, cost, rate)
			points[i].Shipping = c.fees.ShippingCost(points[i].Price)
		}
		grid.PricePoints = points
		out = append(out, grid)
	}
	return out
}

// findSweetSpots evalúa los puntos de transición de barem y devuelve los que
// dejan kâr positivo.
func (c *Calculator) findSweetSpots(cost, rate float64) []SweetSpot {
	var out []SweetSpot
	for _, boundary := range c.fees.Boundaries() {
		for _, price := range []float64{boundary - 0.01, boundary} {
			profit := c.fees.ProfitAt(price, cost, rate)
			if profit <= 0 {
				continue
			}
			shipping := c.fees.ShippingCost(price)
			out = append(out, SweetSpot{
				Price:    math.Round(price*100) / 100,
				Profit:   profit,
				Shipping: shipping,
				Note:     fmt.Sprintf("shipping %.2f at this price", shipping),
			})
		}
	}
	return out
}

// buildCouponStrategy solo aplica cuando el barem inmediatamente inferior es
// el más barato: mostrar el precio ~15% más alto y aterrizar con cupón justo
// bajo el breakpoint.
func (c *Calculator) buildCouponStrategy(price, cost, rate float64) *CouponStrategy {
	boundaries := c.fees.Boundaries()
	if len(boundaries) == 0 || price <= boundaries[0] {
		return nil
	}

	target := boundaries[0] - 0.01
	profitAtTarget := c.fees.ProfitAt(target, cost, rate)
	if profitAtTarget <= 0 {
		return nil
	}

	showPrice := math.Ceil(price * 1.15)
	coupon := math.Ceil(showPrice - target)
	return &CouponStrategy{
		ShowPrice:     showPrice,
		CouponAmount:  coupon,
		FinalPrice:    target,
		ProfitAtFinal: profitAtTarget,
		ShippingSaved: c.fees.ShippingCost(price) - c.fees.ShippingCost(target),
	}
}
