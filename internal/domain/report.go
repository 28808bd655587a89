package domain

import (
	"time"

	"github.com/alejandrodnm/sellerbot/internal/domain/rubric"
)

// BatchSummary resume un análisis de catálogo completo.
type BatchSummary struct {
	TotalProducts int
	WithCost      int
	Profitable    int
	Unprofitable  int
	NoCost        int
	TotalProfit   float64
}

// BatchAnalysis es el resultado de analizar el catálogo entero.
// Una entrada malformada nunca aborta el lote: cada producto produce su
// propio ProductAnalysis con defaults defensivos.
type BatchAnalysis struct {
	Products []ProductAnalysis
	Summary  BatchSummary
}

// Summarize calcula el resumen agregado de un lote de análisis.
func Summarize(products []ProductAnalysis) BatchSummary {
	s := BatchSummary{TotalProducts: len(products)}
	for _, p := range products {
		if !p.Product.HasCost() || p.Product.Cost() <= 0 {
			s.NoCost++
			continue
		}
		s.WithCost++
		s.TotalProfit += p.Profit.NetProfit
		if p.Profit.NetProfit > 0 {
			s.Profitable++
		} else if p.Profit.NetProfit < 0 {
			s.Unprofitable++
		}
	}
	return s
}

// SalesLine es una línea de venta analizada con su metadata de pedido.
type SalesLine struct {
	OrderNumber string
	OrderDate   time.Time
	Status      string
	Barcode     string
	ProductName string
	Analysis    OrderLineAnalysis
}

// SalesSummary agrega la rentabilidad de un rango de ventas.
type SalesSummary struct {
	TotalOrders      int
	TotalItems       int
	TotalRevenue     float64
	TotalShipping    float64
	TotalCommission  float64
	TotalPlatformFee float64
	TotalCost        float64
	TotalProfit      float64
	TotalDeductions  float64
}

// SalesReport es el informe de ventas de un rango de fechas.
type SalesReport struct {
	From    time.Time
	To      time.Time
	Lines   []SalesLine
	Summary SalesSummary
}

// ResearchReport es el resultado combinado de research de un producto:
// scoring de título más análisis competitivo.
type ResearchReport struct {
	ID           string
	Barcode      string
	Title        string
	Brand        string
	CategoryName string
	SalePrice    float64

	TitleScore  rubric.Result
	Competitive CompetitiveAnalysis

	TotalCategoryListings int

	// AISuggestedTitle viene del colaborador generativo opcional; vacío si
	// está deshabilitado. El título sugerido determinista del rubric no
	// depende nunca de este campo.
	AISuggestedTitle string

	GeneratedAt time.Time
}
