package domain

import "math"

// ShippingTier es un barem de kargo: una banda de precio de venta con un
// coste de envío fijo. MaxPrice = +Inf en el último tier (sin límite superior).
type ShippingTier struct {
	MinPrice float64
	MaxPrice float64
	Cost     float64
}

// Contains devuelve true si el precio cae dentro de la banda [min, max].
func (t ShippingTier) Contains(price float64) bool {
	return price >= t.MinPrice && price <= t.MaxPrice
}

// FeeSchedule es el modelo de deducciones del marketplace: la partición
// ordenada de [0,∞) en tiers de envío más el cargo fijo por venta.
// Se carga una vez desde config y nunca muta en runtime.
type FeeSchedule struct {
	tiers       []ShippingTier
	platformFee float64
}

// NewFeeSchedule construye un FeeSchedule con los tiers dados (ya ordenados
// por MinPrice). Un MaxPrice <= 0 se normaliza a +Inf.
func NewFeeSchedule(tiers []ShippingTier, platformFee float64) FeeSchedule {
	normalized := make([]ShippingTier, len(tiers))
	copy(normalized, tiers)
	for i := range normalized {
		if normalized[i].MaxPrice <= 0 {
			normalized[i].MaxPrice = math.Inf(1)
		}
	}
	return FeeSchedule{tiers: normalized, platformFee: platformFee}
}

// DefaultFeeSchedule devuelve la tarifa 2026 de Trendyol.
//
//	  0 - 149.99  → 58.50
//	150 - 299.99  → 95.50
//	300 - 399.99  → 110.00
//	400+          → 130.00
//	cargo fijo por venta: 13.80
func DefaultFeeSchedule() FeeSchedule {
	return NewFeeSchedule([]ShippingTier{
		{MinPrice: 0, MaxPrice: 149.99, Cost: 58.50},
		{MinPrice: 150, MaxPrice: 299.99, Cost: 95.50},
		{MinPrice: 300, MaxPrice: 399.99, Cost: 110},
		{MinPrice: 400, MaxPrice: math.Inf(1), Cost: 130},
	}, 13.80)
}

// Tiers devuelve una copia de los tiers de envío.
func (f FeeSchedule) Tiers() []ShippingTier {
	out := make([]ShippingTier, len(f.tiers))
	copy(out, f.tiers)
	return out
}

// PlatformFee devuelve el cargo fijo por venta.
func (f FeeSchedule) PlatformFee() float64 {
	return f.platformFee
}

// ShippingCost devuelve el coste de envío del tier que contiene el precio.
// Si ningún tier matchea (inalcanzable con una tarifa sin huecos) devuelve
// el coste del tier más alto como fallback.
func (f FeeSchedule) ShippingCost(price float64) float64 {
	for _, t := range f.tiers {
		if t.Contains(price) {
			return t.Cost
		}
	}
	if len(f.tiers) == 0 {
		return 0
	}
	return f.tiers[len(f.tiers)-1].Cost
}

// CommissionAmount devuelve el importe de comisión: price × rate / 100.
func (f FeeSchedule) CommissionAmount(price, rate float64) float64 {
	return price * rate / 100
}

// TotalDeductions devuelve envío + comisión + cargo de plataforma.
func (f FeeSchedule) TotalDeductions(price, rate float64) float64 {
	return f.ShippingCost(price) + f.CommissionAmount(price, rate) + f.platformFee
}

// Breakdown devuelve el desglose de deducciones para un precio y comisión.
// Se recalcula en cada evaluación, nunca se cachea entre cambios de precio.
func (f FeeSchedule) Breakdown(price, rate float64) DeductionBreakdown {
	shipping := f.ShippingCost(price)
	commission := f.CommissionAmount(price, rate)
	return DeductionBreakdown{
		Shipping:       shipping,
		Commission:     commission,
		CommissionRate: rate,
		PlatformFee:    f.platformFee,
		Total:          shipping + commission + f.platformFee,
	}
}

// ProfitAt devuelve el kâr neto a un precio dado: precio − deducciones − coste.
func (f FeeSchedule) ProfitAt(price, cost, rate float64) float64 {
	return price - f.TotalDeductions(price, rate) - cost
}

// Boundaries devuelve los breakpoints de la tarifa: el inicio de cada tier
// salvo el primero. Justo por debajo de cada breakpoint el envío es más barato.
func (f FeeSchedule) Boundaries() []float64 {
	var out []float64
	for i, t := range f.tiers {
		if i == 0 {
			continue
		}
		out = append(out, t.MinPrice)
	}
	return out
}

// DeductionBreakdown es el desglose de deducciones de una venta.
type DeductionBreakdown struct {
	Shipping       float64
	Commission     float64
	CommissionRate float64
	PlatformFee    float64
	Total          float64
}

// ProfitResult es el resultado de rentabilidad de una venta.
type ProfitResult struct {
	NetRevenue          float64 // precio − deducciones
	NetProfit           float64 // netRevenue − coste
	ProfitMarginPercent float64 // relativo al precio de venta; 0 si precio = 0
}

// Profit calcula el ProfitResult para un precio, coste y comisión dados.
func (f FeeSchedule) Profit(price, cost, rate float64) ProfitResult {
	netRevenue := price - f.TotalDeductions(price, rate)
	netProfit := netRevenue - cost
	var margin float64
	if price > 0 {
		margin = netProfit / price * 100
	}
	return ProfitResult{
		NetRevenue:          netRevenue,
		NetProfit:           netProfit,
		ProfitMarginPercent: margin,
	}
}
