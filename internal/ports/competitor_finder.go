package ports

import (
	"context"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// CompetitorFinder descubre listados competidores en el marketplace.
type CompetitorFinder interface {
	// SearchListings busca listados por término de búsqueda. El resultado
	// puede solapar con los listados de categoría; el llamador deduplica.
	SearchListings(ctx context.Context, query string) ([]domain.CompetitorListing, error)

	// TrendingTerms devuelve sugerencias de búsqueda populares para un
	// término semilla. Vacío sin error cuando no hay sugerencias.
	TrendingTerms(ctx context.Context, seed string) ([]string, error)
}
