package discovery

// file.go — CompetitorFinder sobre un fixture JSON de listados por query.
// Mismo shape que devolvería el buscador del marketplace; sin red.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// FileDiscovery implementa ports.CompetitorFinder leyendo un archivo JSON.
// El archivo se carga una vez y se cachea.
type FileDiscovery struct {
	path string

	once sync.Once
	data fixtureJSON
	err  error
}

type fixtureJSON struct {
	Listings map[string][]listingJSON `json:"listings"` // query → listados
	Trending map[string][]string      `json:"trending"` // semilla → términos
}

type listingJSON struct {
	Title     string  `json:"title"`
	Brand     string  `json:"brand"`
	SalePrice float64 `json:"salePrice"`
	ListPrice float64 `json:"listPrice"`
}

// NewFileDiscovery crea un finder sobre el archivo dado.
func NewFileDiscovery(path string) *FileDiscovery {
	return &FileDiscovery{path: path}
}

func (d *FileDiscovery) load() error {
	d.once.Do(func() {
		data, err := os.ReadFile(d.path)
		if err != nil {
			d.err = fmt.Errorf("discovery: read %q: %w", d.path, err)
			return
		}
		if err := json.Unmarshal(data, &d.data); err != nil {
			d.err = fmt.Errorf("discovery: parse %q: %w", d.path, err)
		}
	})
	return d.err
}

// SearchListings devuelve los listados del fixture para la query exacta.
// Query desconocida devuelve vacío sin error, como un buscador sin resultados.
func (d *FileDiscovery) SearchListings(_ context.Context, query string) ([]domain.CompetitorListing, error) {
	if err := d.load(); err != nil {
		return nil, err
	}

	raw := d.data.Listings[query]
	listings := make([]domain.CompetitorListing, 0, len(raw))
	for _, l := range raw {
		listings = append(listings, domain.CompetitorListing{
			Title:     l.Title,
			Brand:     l.Brand,
			SalePrice: l.SalePrice,
			ListPrice: l.ListPrice,
		})
	}
	return listings, nil
}

// TrendingTerms devuelve los términos sugeridos del fixture para la semilla.
func (d *FileDiscovery) TrendingTerms(_ context.Context, seed string) ([]string, error) {
	if err := d.load(); err != nil {
		return nil, err
	}
	return d.data.Trending[seed], nil
}
