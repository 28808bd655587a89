package ports

import (
	"context"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// CatalogProvider obtiene el catálogo del vendedor y su historial de pedidos.
type CatalogProvider interface {
	// FetchProducts devuelve todos los productos aprobados del vendedor.
	// Pagina automáticamente hasta obtener todos los resultados.
	FetchProducts(ctx context.Context) ([]domain.Product, error)

	// FetchOrders devuelve los pedidos del rango de tiempo dado, con sus
	// líneas y comisiones reales.
	FetchOrders(ctx context.Context, fromMillis, toMillis int64) ([]domain.Order, error)
}
