package advisor

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// commissionIndex resuelve la tasa de comisión real de un producto a partir
// del historial de pedidos. El marketplace no expone la comisión por producto
// en la API de catálogo, pero sí la aplicada en cada venta: de ahí se
// reconstruye. Cadena de resolución: ventas del propio barcode → ventas del
// mismo stock code → media de la categoría → default.
type commissionIndex struct {
	byBarcode   map[string][]float64
	byStock     map[string][]float64
	byCategory  map[string][]float64
	defaultRate float64
}

// buildCommissionIndex indexa las comisiones reales de las líneas de pedido.
// Las líneas canceladas o sin comisión no aportan señal.
func buildCommissionIndex(products []domain.Product, orders []domain.Order, defaultRate float64) *commissionIndex {
	stockOf := make(map[string]string, len(products))
	categoryOf := make(map[string]string, len(products))
	for _, p := range products {
		stockOf[p.Barcode] = p.StockCode
		categoryOf[p.Barcode] = p.CategoryName
	}

	idx := &commissionIndex{
		byBarcode:   make(map[string][]float64),
		byStock:     make(map[string][]float64),
		byCategory:  make(map[string][]float64),
		defaultRate: defaultRate,
	}

	for _, order := range orders {
		for _, line := range order.Lines {
			if line.Commission <= 0 || line.Status == "Cancelled" {
				continue
			}
			idx.byBarcode[line.Barcode] = append(idx.byBarcode[line.Barcode], line.Commission)
			if stock := stockOf[line.Barcode]; stock != "" {
				idx.byStock[stock] = append(idx.byStock[stock], line.Commission)
			}
			if category := categoryOf[line.Barcode]; category != "" {
				idx.byCategory[category] = append(idx.byCategory[category], line.Commission)
			}
		}
	}
	return idx
}

// Resolve devuelve la tasa de comisión de un producto y la fuente de la
// resolución: "order", "category" o "default".
func (idx *commissionIndex) Resolve(p domain.Product) (float64, string) {
	if rates := idx.byBarcode[p.Barcode]; len(rates) > 0 {
		return roundRate(avg(rates)), "order"
	}
	if rates := idx.byStock[p.StockCode]; len(rates) > 0 {
		return roundRate(avg(rates)), "order"
	}
	if rates := idx.byCategory[p.CategoryName]; len(rates) > 0 {
		return roundRate(avg(rates)), "category"
	}
	return idx.defaultRate, "default"
}

// ProductRates devuelve las tasas distintas vistas en el historial del propio
// barcode, de menor a mayor.
func (idx *commissionIndex) ProductRates(barcode string) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, r := range idx.byBarcode[barcode] {
		key := roundRate(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Float64s(out)
	return out
}

func avg(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// roundRate redondea una tasa a un decimal, como la publica el marketplace.
func roundRate(r float64) float64 {
	return math.Round(r*10) / 10
}

// rateUsages agrega el uso real de cada tasa de comisión en el historial:
// cuántas ventas y productos distintos la tienen aplicada, y en qué rango de
// precios. Entrada del análisis de tarifas.
func rateUsages(orders []domain.Order) []domain.RateUsage {
	type acc struct {
		sales    int
		barcodes map[string]bool
		minPrice float64
		maxPrice float64
	}
	byRate := make(map[float64]*acc)

	for _, order := range orders {
		for _, line := range order.Lines {
			if line.Commission <= 0 || line.Status == "Cancelled" {
				continue
			}
			key := roundRate(line.Commission)
			a := byRate[key]
			if a == nil {
				a = &acc{barcodes: make(map[string]bool), minPrice: math.Inf(1)}
				byRate[key] = a
			}
			a.sales++
			a.barcodes[line.Barcode] = true
			price := line.SalePrice()
			if price > 0 {
				a.minPrice = math.Min(a.minPrice, price)
				a.maxPrice = math.Max(a.maxPrice, price)
			}
		}
	}

	out := make([]domain.RateUsage, 0, len(byRate))
	for rate, a := range byRate {
		minPrice := a.minPrice
		if math.IsInf(minPrice, 1) {
			minPrice = 0
		}
		out = append(out, domain.RateUsage{
			Rate:         rate,
			SalesCount:   a.sales,
			ProductCount: len(a.barcodes),
			MinPrice:     minPrice,
			MaxPrice:     a.maxPrice,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rate < out[j].Rate })
	return out
}

// Tariff compara la comisión actual de un producto contra las tasas reales
// más bajas observadas en la tienda. Requiere coste registrado.
func (s *Service) Tariff(ctx context.Context, barcode string) (*domain.TariffAnalysis, error) {
	products, orders, err := s.enrichedProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("advisor.Tariff: %w", err)
	}
	subject, err := findProduct(products, barcode)
	if err != nil {
		return nil, fmt.Errorf("advisor.Tariff: %w", err)
	}

	idx := buildCommissionIndex(products, orders, s.cfg.DefaultCommissionRate)
	analysis := s.calc.AnalyzeTariff(subject, rateUsages(orders), idx.ProductRates(subject.Barcode))
	if analysis == nil {
		return nil, fmt.Errorf("advisor.Tariff: product %q needs a registered cost and a sale price", barcode)
	}
	return analysis, nil
}
