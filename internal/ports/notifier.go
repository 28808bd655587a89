package ports

import (
	"context"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// Notifier presenta los resultados de los análisis al usuario.
// En la implementación de consola, imprime tablas formateadas.
type Notifier interface {
	// NotifyCatalog muestra el análisis de rentabilidad del catálogo.
	NotifyCatalog(ctx context.Context, batch domain.BatchAnalysis) error

	// NotifyResearch muestra un informe de research de producto: scoring de
	// título, desglose del rubric y análisis competitivo.
	NotifyResearch(ctx context.Context, report domain.ResearchReport) error

	// NotifySales muestra el informe de ventas de un rango de fechas.
	NotifySales(ctx context.Context, report domain.SalesReport) error

	// NotifyStrategy muestra la estrategia de precios de un producto.
	NotifyStrategy(ctx context.Context, strategy domain.PricingStrategy) error
}
