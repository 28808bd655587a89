package domain

import "math"

// RateUsage resume el uso real de una tasa de comisión en el historial de
// pedidos de la tienda: cuántas ventas y productos la tienen aplicada.
// Solo datos reales, sin tarifas inventadas.
type RateUsage struct {
	Rate         float64
	SalesCount   int
	ProductCount int
	MinPrice     float64
	MaxPrice     float64
}

// PriceDropScenario evalúa el kâr al bajar el precio un % con otra comisión.
type PriceDropScenario struct {
	DropPercent   float64
	NewPrice      float64
	NewShipping   float64
	NewCommission float64
	NewProfit     float64
	ProfitDiff    float64 // vs el kâr actual
	IsProfitable  bool
	IsBetter      bool
}

// TariffScenario compara la situación actual con una tasa de comisión real
// más baja observada en la tienda.
type TariffScenario struct {
	Rate                float64
	RateSaving          float64 // puntos de comisión ahorrados
	ProfitAtSamePrice   float64
	CommissionSaving    float64
	ProfitGainSamePrice float64
	WasUsedBefore       bool // esta tasa aparece en el historial del propio producto
	Drops               []PriceDropScenario
	Best                *PriceDropScenario
	SalesCount          int
	ProductCount        int
}

// TariffAnalysis es el análisis de tarifas de comisión de un producto.
type TariffAnalysis struct {
	CurrentRate       float64
	CurrentProfit     float64
	CurrentCommission float64
	CurrentShipping   float64
	Scenarios         []TariffScenario
	HasOpportunity    bool
	Best              *TariffScenario
}

var tariffDropPercents = []float64{5, 10, 15, 20, 25}

// AnalyzeTariff compara el kâr actual contra cada tasa de comisión real más
// baja vista en la tienda, incluyendo escenarios de bajada de precio.
// Devuelve nil si falta coste o precio: sin esos datos no hay comparación.
func (c *Calculator) AnalyzeTariff(subject Product, usages []RateUsage, productRates []float64) *TariffAnalysis {
	if !subject.HasCost() || subject.Cost() <= 0 || subject.SalePrice <= 0 {
		return nil
	}

	cost := subject.Cost()
	price := subject.SalePrice
	rate := subject.CommissionRate

	currentProfit := c.fees.ProfitAt(price, cost, rate)
	currentCommission := c.fees.CommissionAmount(price, rate)

	out := &TariffAnalysis{
		CurrentRate:       rate,
		CurrentProfit:     currentProfit,
		CurrentCommission: currentCommission,
		CurrentShipping:   c.fees.ShippingCost(price),
	}

	seen := make(map[float64]bool, len(productRates))
	for _, r := range productRates {
		seen[r] = true
	}

	for _, usage := range usages {
		if usage.Rate >= rate {
			continue // solo tasas más bajas que la actual
		}

		scenario := TariffScenario{
			Rate:              usage.Rate,
			RateSaving:        rate - usage.Rate,
			ProfitAtSamePrice: c.fees.ProfitAt(price, cost, usage.Rate),
			CommissionSaving:  currentCommission - c.fees.CommissionAmount(price, usage.Rate),
			WasUsedBefore:     seen[usage.Rate],
			SalesCount:        usage.SalesCount,
			ProductCount:      usage.ProductCount,
		}
		scenario.ProfitGainSamePrice = scenario.ProfitAtSamePrice - currentProfit

		for _, dropPct := range tariffDropPercents {
			newPrice := math.Round(price*(1-dropPct/100)*100) / 100
			if newPrice < cost {
				continue
			}
			newProfit := c.fees.ProfitAt(newPrice, cost, usage.Rate)
			scenario.Drops = append(scenario.Drops, PriceDropScenario{
				DropPercent:   dropPct,
				NewPrice:      newPrice,
				NewShipping:   c.fees.ShippingCost(newPrice),
				NewCommission: c.fees.CommissionAmount(newPrice, usage.Rate),
				NewProfit:     newProfit,
				ProfitDiff:    newProfit - currentProfit,
				IsProfitable:  newProfit > 0,
				IsBetter:      newProfit > currentProfit,
			})
		}
		scenario.Best = pickBestDrop(scenario.Drops)

		out.Scenarios = append(out.Scenarios, scenario)
	}

	for i := range out.Scenarios {
		s := &out.Scenarios[i]
		if s.ProfitGainSamePrice > 0 || (s.Best != nil && s.Best.IsBetter) {
			out.HasOpportunity = true
			if out.Best == nil {
				out.Best = s
			}
		}
	}

	return out
}

// pickBestDrop prefiere un escenario mejor que el kâr actual, después uno
// al menos rentable, después el primero disponible.
func pickBestDrop(drops []PriceDropScenario) *PriceDropScenario {
	for i := range drops {
		if drops[i].IsBetter {
			return &drops[i]
		}
	}
	for i := range drops {
		if drops[i].IsProfitable {
			return &drops[i]
		}
	}
	if len(drops) > 0 {
		return &drops[0]
	}
	return nil
}
