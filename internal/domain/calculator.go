package domain

import "math"

const (
	// solveTolerance es la tolerancia de convergencia del solver, en
	// sub-unidades de moneda (un kuruş).
	solveTolerance = 0.01
	// solveMaxIterations acota el coste del peor caso y corta oscilaciones
	// en los bordes de los tiers de envío.
	solveMaxIterations = 15
)

// Calculator combina la tarifa de deducciones con la tabla de márgenes.
// Todas sus operaciones son puras: seguro invocarlo concurrentemente.
type Calculator struct {
	fees    FeeSchedule
	margins MarginTable
}

// NewCalculator crea un Calculator con la tarifa y tabla de márgenes dadas.
func NewCalculator(fees FeeSchedule, margins MarginTable) *Calculator {
	return &Calculator{fees: fees, margins: margins}
}

// Fees devuelve la tarifa de deducciones.
func (c *Calculator) Fees() FeeSchedule {
	return c.fees
}

// IdealMargin devuelve el margen objetivo para un coste dado.
func (c *Calculator) IdealMargin(cost float64) float64 {
	return c.margins.IdealMargin(cost)
}

// SolveResult es el resultado del solver de precio.
// Converged es false cuando se agotó el presupuesto de iteraciones; en ese
// caso Price es la última iterada, no un error: un lote entero no debe
// abortar por una entrada rara.
type SolveResult struct {
	Price      float64
	Converged  bool
	Iterations int
}

// solvePrice encuentra por punto fijo el precio de venta que deja un kâr neto
// igual a target. La dificultad: el coste de envío es una función escalonada
// del propio precio que buscamos, así que
//
//	price = (cost + platformFee + shipping(price) + target) / (1 − rate/100)
//
// no tiene forma cerrada. Se itera desde una semilla sin envío y se redondea
// el resultado hacia arriba al céntimo: el precio reportado nunca queda corto
// de cubrir los costes tras el redondeo.
func (c *Calculator) solvePrice(cost, rate, target float64) SolveResult {
	if rate >= 100 {
		// El punto fijo solo es atractor con rate < 100.
		return SolveResult{}
	}

	price := cost + c.fees.platformFee + target
	converged := false
	iterations := 0

	for i := 0; i < solveMaxIterations; i++ {
		iterations = i + 1
		shipping := c.fees.ShippingCost(price)
		next := (cost + c.fees.platformFee + shipping + target) / (1 - rate/100)
		if math.Abs(next-price) < solveTolerance {
			converged = true
			break
		}
		price = next
	}

	return SolveResult{
		Price:      math.Ceil(price*100) / 100,
		Converged:  converged,
		Iterations: iterations,
	}
}

// MinPrice devuelve el precio mínimo de venta (başabaş): kâr neto cero.
func (c *Calculator) MinPrice(cost, rate float64) SolveResult {
	return c.solvePrice(cost, rate, 0)
}

// MinPriceWithTarget devuelve el precio mínimo para un kâr objetivo dado.
func (c *Calculator) MinPriceWithTarget(cost, rate, target float64) SolveResult {
	return c.solvePrice(cost, rate, target)
}

// RecommendedPrice devuelve el precio recomendado usando el margen ideal de
// la banda de coste. Con coste <= 0 no hay recomendación posible.
func (c *Calculator) RecommendedPrice(cost, rate float64) SolveResult {
	if cost <= 0 {
		return SolveResult{}
	}
	target := cost * c.margins.IdealMargin(cost)
	return c.solvePrice(cost, rate, target)
}

// ProductAnalysis es el resultado de analizar un solo producto.
type ProductAnalysis struct {
	Product Product

	Deductions DeductionBreakdown
	Profit     ProfitResult

	RecommendedPrice   float64
	RecommendedProfit  float64
	IdealMarginPercent float64
	MinPrice           float64
	Converged          bool
}

// AnalyzeProduct calcula el desglose completo para un producto: deducciones,
// rentabilidad al precio actual, y precios mínimo/recomendado si hay coste.
// Total en sus entradas: nunca falla, los campos ausentes valen cero.
func (c *Calculator) AnalyzeProduct(p Product) ProductAnalysis {
	out := ProductAnalysis{
		Product:    p,
		Deductions: c.fees.Breakdown(p.SalePrice, p.CommissionRate),
		Profit:     c.fees.Profit(p.SalePrice, p.Cost(), p.CommissionRate),
		Converged:  true,
	}

	if !p.HasCost() || p.Cost() <= 0 {
		return out
	}

	cost := p.Cost()
	recommended := c.RecommendedPrice(cost, p.CommissionRate)
	minimum := c.MinPrice(cost, p.CommissionRate)

	out.RecommendedPrice = recommended.Price
	out.MinPrice = minimum.Price
	out.Converged = recommended.Converged && minimum.Converged
	out.IdealMarginPercent = c.margins.IdealMargin(cost) * 100
	if recommended.Price > 0 {
		out.RecommendedProfit = c.fees.ProfitAt(recommended.Price, cost, p.CommissionRate)
	}
	return out
}

// OrderLineAnalysis es el desglose de una línea de pedido, multiplicado por
// la cantidad vendida.
type OrderLineAnalysis struct {
	SalePrice        float64
	ListPrice        float64
	CostPrice        float64
	CommissionRate   float64
	CommissionAmount float64
	ShippingCost     float64
	PlatformFee      float64
	TotalDeductions  float64
	NetRevenue       float64
	NetProfit        float64
	Quantity         int
}

// AnalyzeOrderLine calcula la rentabilidad de una línea de pedido con el
// coste resuelto por el caller (0 si es desconocido).
func (c *Calculator) AnalyzeOrderLine(line OrderLine, cost float64) OrderLineAnalysis {
	price := line.SalePrice()
	rate := line.Commission

	qty := line.Quantity
	if qty <= 0 {
		qty = 1
	}
	q := float64(qty)

	shipping := c.fees.ShippingCost(price)
	commission := c.fees.CommissionAmount(price, rate)
	total := shipping + commission + c.fees.platformFee
	netRevenue := price - total
	netProfit := netRevenue - cost

	listPrice := line.Price
	if listPrice <= 0 {
		listPrice = price
	}

	return OrderLineAnalysis{
		SalePrice:        price,
		ListPrice:        listPrice,
		CostPrice:        cost,
		CommissionRate:   rate,
		CommissionAmount: commission * q,
		ShippingCost:     shipping * q,
		PlatformFee:      c.fees.platformFee * q,
		TotalDeductions:  total * q,
		NetRevenue:       netRevenue * q,
		NetProfit:        netProfit * q,
		Quantity:         qty,
	}
}

// PricePoint es un punto de la simulación de precios.
type PricePoint struct {
	SalePrice  float64
	NetRevenue float64
	NetProfit  float64
}

// SimulatePrices evalúa la rentabilidad en un rango de precios con paso fijo.
func (c *Calculator) SimulatePrices(cost, rate, from, to, step float64) []PricePoint {
	if step <= 0 || to < from {
		return nil
	}
	var out []PricePoint
	for price := from; price <= to; price += step {
		p := c.fees.Profit(price, cost, rate)
		out = append(out, PricePoint{SalePrice: price, NetRevenue: p.NetRevenue, NetProfit: p.NetProfit})
	}
	return out
}
