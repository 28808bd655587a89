package domain

import (
	"fmt"
	"math"
	"sort"
)

// CompetitiveParams son los umbrales del análisis competitivo.
// Constantes de negocio sin derivación formal: viven en config, no aquí.
type CompetitiveParams struct {
	MeanDeviationPct      float64 // desviación vs media que dispara recomendación
	NearestCount          int     // competidores más cercanos a reportar
	TierBoundaryMargin    float64 // margen sobre un breakpoint de envío
	DefaultCommissionRate float64 // % asumido si el producto no trae comisión
}

// PriceStatistics son estadísticas descriptivas sobre los precios de venta
// filtrados (> 0) y ordenados de los competidores.
type PriceStatistics struct {
	Avg    float64
	Median float64
	Min    float64
	Max    float64
	Count  int
	StdDev float64 // desviación estándar poblacional
}

// PricePosition es el rank percentil del precio propio dentro del set.
type PricePosition struct {
	Percentile     int // fracción de competidores estrictamente más baratos, 0-100
	CheaperCount   int
	ExpensiveCount int
	Label          string
}

// RankedCompetitor es un competidor anotado con su distancia de precio.
type RankedCompetitor struct {
	Listing          CompetitorListing
	PriceDiff        float64 // firmado: competidor − propio
	PriceDiffPercent float64
	HasDiscount      bool
	DiscountPercent  float64
}

// DiscountStats resume la prevalencia de descuentos entre competidores.
type DiscountStats struct {
	DiscountedCount    int
	DiscountedShare    float64 // fracción 0-1 de competidores rebajados
	AvgDiscountPercent float64
}

// PriceRecommendation es la recomendación de posicionamiento de precio.
type PriceRecommendation struct {
	Type           string // "high" | "low" | "good"
	Text           string
	SuggestedPrice float64
}

// PriceSegment es un bucket de precios basado en cuartiles empíricos.
type PriceSegment struct {
	Label           string
	From            float64
	To              float64
	Count           int
	ContainsSubject bool
}

// TierOpportunity señala que el precio propio está justo encima de un
// breakpoint de envío: bajar al breakpoint ahorra coste de kargo.
// Optimización local, independiente de los competidores.
type TierOpportunity struct {
	BreakpointPrice float64 // precio exacto justo bajo el breakpoint
	CurrentShipping float64
	TargetShipping  float64
	Saving          float64
}

// CompetitiveAnalysis es el resultado completo del análisis competitivo.
type CompetitiveAnalysis struct {
	HasData bool
	Message string

	// BreakEvenPrice se calcula siempre que el coste sea conocido,
	// con o sin competidores.
	BreakEvenPrice float64

	Stats          PriceStatistics
	Position       PricePosition
	Discounts      DiscountStats
	Nearest        []RankedCompetitor
	Recommendation *PriceRecommendation
	Segments       []PriceSegment
	Tier           *TierOpportunity
}

// AnalyzeCompetitors evalúa el posicionamiento del producto frente a los
// listings de su categoría. Con un set vacío devuelve HasData=false con un
// mensaje explicativo en vez de fallar: una entrada sin datos no debe
// abortar un análisis en lote.
func (c *Calculator) AnalyzeCompetitors(subject Product, listings []CompetitorListing, params CompetitiveParams) CompetitiveAnalysis {
	out := CompetitiveAnalysis{}

	rate := subject.CommissionRate
	if rate <= 0 {
		rate = params.DefaultCommissionRate
	}
	if subject.HasCost() && subject.Cost() > 0 {
		out.BreakEvenPrice = c.MinPrice(subject.Cost(), rate).Price
	}

	out.Tier = c.tierOpportunity(subject.SalePrice, params.TierBoundaryMargin)

	prices := make([]float64, 0, len(listings))
	valid := make([]CompetitorListing, 0, len(listings))
	for _, l := range listings {
		if l.SalePrice <= 0 {
			continue
		}
		prices = append(prices, l.SalePrice)
		valid = append(valid, l)
	}
	sort.Float64s(prices)

	if len(prices) == 0 {
		out.Message = fmt.Sprintf("no other listings found in category %q to compare against", subject.CategoryName)
		return out
	}

	out.HasData = true
	out.Stats = computeStats(prices)
	out.Position = computePosition(prices, subject.SalePrice)
	out.Discounts = computeDiscounts(valid)
	out.Nearest = rankNearest(valid, subject.SalePrice, params.NearestCount)
	out.Recommendation = recommendPrice(subject.SalePrice, out.Stats.Avg, params.MeanDeviationPct)
	out.Segments = segmentPrices(prices, subject.SalePrice)

	return out
}

// tierOpportunity detecta si el precio está a menos de margin por encima de
// un breakpoint de la tarifa de envío.
func (c *Calculator) tierOpportunity(price, margin float64) *TierOpportunity {
	if price <= 0 || margin <= 0 {
		return nil
	}
	for _, boundary := range c.fees.Boundaries() {
		if price < boundary || price > boundary+margin {
			continue
		}
		target := boundary - 0.01
		saving := c.fees.ShippingCost(price) - c.fees.ShippingCost(target)
		if saving <= 0 {
			continue
		}
		return &TierOpportunity{
			BreakpointPrice: math.Round(target*100) / 100,
			CurrentShipping: c.fees.ShippingCost(price),
			TargetShipping:  c.fees.ShippingCost(target),
			Saving:          saving,
		}
	}
	return nil
}

func computeStats(sorted []float64) PriceStatistics {
	n := len(sorted)
	var sum float64
	for _, p := range sorted {
		sum += p
	}
	avg := sum / float64(n)

	var variance float64
	for _, p := range sorted {
		variance += (p - avg) * (p - avg)
	}
	variance /= float64(n)

	return PriceStatistics{
		Avg:    math.Round(avg*100) / 100,
		Median: math.Round(median(sorted)*100) / 100,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Count:  n,
		StdDev: math.Round(math.Sqrt(variance)*100) / 100,
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// quantile devuelve el cuantil q (0-1) por interpolación lineal.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func computePosition(sorted []float64, price float64) PricePosition {
	cheaper := 0
	for _, p := range sorted {
		if p < price {
			cheaper++
		}
	}
	count := len(sorted)
	percentile := int(math.Round(float64(cheaper) / float64(count) * 100))

	var label string
	switch {
	case percentile <= 25:
		label = "among the cheapest"
	case percentile <= 50:
		label = "below average"
	case percentile <= 75:
		label = "above average"
	default:
		label = "among the most expensive"
	}

	return PricePosition{
		Percentile:     percentile,
		CheaperCount:   cheaper,
		ExpensiveCount: count - cheaper,
		Label:          label,
	}
}

func computeDiscounts(listings []CompetitorListing) DiscountStats {
	var discounted int
	var totalPct float64
	for _, l := range listings {
		if l.HasDiscount() {
			discounted++
			totalPct += l.DiscountPercent()
		}
	}
	out := DiscountStats{DiscountedCount: discounted}
	if len(listings) > 0 {
		out.DiscountedShare = float64(discounted) / float64(len(listings))
	}
	if discounted > 0 {
		out.AvgDiscountPercent = math.Round(totalPct/float64(discounted)*10) / 10
	}
	return out
}

func rankNearest(listings []CompetitorListing, price float64, limit int) []RankedCompetitor {
	ranked := make([]RankedCompetitor, 0, len(listings))
	for _, l := range listings {
		diff := l.SalePrice - price
		var diffPct float64
		if price > 0 {
			diffPct = math.Round(diff / price * 100)
		}
		ranked = append(ranked, RankedCompetitor{
			Listing:          l,
			PriceDiff:        diff,
			PriceDiffPercent: diffPct,
			HasDiscount:      l.HasDiscount(),
			DiscountPercent:  math.Round(l.DiscountPercent()),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].PriceDiff) < math.Abs(ranked[j].PriceDiff)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func recommendPrice(price, avg, deviationPct float64) *PriceRecommendation {
	var diffPct float64
	if avg > 0 {
		diffPct = math.Round((price - avg) / avg * 100)
	}

	switch {
	case diffPct > deviationPct:
		return &PriceRecommendation{
			Type: "high",
			Text: fmt.Sprintf(
				"price is %.0f%% above the category average; consider moving into the %.2f - %.2f band to stay competitive",
				diffPct, avg*1.05, avg*1.15),
			SuggestedPrice: math.Round(avg*1.10*100) / 100,
		}
	case diffPct < -deviationPct:
		return &PriceRecommendation{
			Type: "low",
			Text: fmt.Sprintf(
				"price is %.0f%% below the category average; raising into the %.2f - %.2f band would recover margin",
				-diffPct, avg*0.90, avg),
			SuggestedPrice: math.Round(avg*0.95*100) / 100,
		}
	default:
		return &PriceRecommendation{
			Type:           "good",
			Text:           "price is close to the category average and well positioned",
			SuggestedPrice: price,
		}
	}
}

// segmentPrices agrupa los precios en cuatro segmentos por cuartiles
// empíricos y marca el segmento que contiene el precio propio.
func segmentPrices(sorted []float64, price float64) []PriceSegment {
	q1 := quantile(sorted, 0.25)
	q2 := quantile(sorted, 0.50)
	q3 := quantile(sorted, 0.75)
	minP := sorted[0]
	maxP := sorted[len(sorted)-1]

	segments := []PriceSegment{
		{Label: "cheap", From: minP, To: q1},
		{Label: "mid-low", From: q1, To: q2},
		{Label: "mid-high", From: q2, To: q3},
		{Label: "expensive", From: q3, To: maxP},
	}

	// Intervalos semiabiertos [from, to); el último cerrado.
	inSegment := func(i int, p float64) bool {
		s := segments[i]
		if i == len(segments)-1 {
			return p >= s.From
		}
		if i == 0 && p < s.From {
			return true
		}
		return p >= s.From && p < s.To
	}

	for i := range segments {
		for _, p := range sorted {
			if inSegment(i, p) {
				segments[i].Count++
			}
		}
		if inSegment(i, price) {
			segments[i].ContainsSubject = true
		}
	}

	// El precio propio cae exactamente en un segmento.
	marked := false
	for i := range segments {
		if segments[i].ContainsSubject {
			if marked {
				segments[i].ContainsSubject = false
			}
			marked = true
		}
	}

	return segments
}
