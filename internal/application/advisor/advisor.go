package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/sellerbot/internal/domain"
	"github.com/alejandrodnm/sellerbot/internal/domain/rubric"
	"github.com/alejandrodnm/sellerbot/internal/ports"
)

// commissionLookbackMonths es la ventana de historial de pedidos usada para
// resolver comisiones reales.
const commissionLookbackMonths = 3

// Config contiene la configuración del advisor.
type Config struct {
	DefaultCommissionRate float64
	MeanDeviationPct      float64
	NearestCompetitors    int
	TierBoundaryMargin    float64
	Workers               int // goroutines para análisis paralelo (0 = NumCPU*2)
	SearchRatePerSec      float64
	AIEnabled             bool
}

// Service es el orquestador principal: junta catálogo, costes locales,
// historial de pedidos y descubrimiento de competidores, y delega el cálculo
// al domain.
type Service struct {
	cfg      Config
	calc     *domain.Calculator
	scorer   *rubric.Scorer
	catalog  ports.CatalogProvider
	finder   ports.CompetitorFinder
	ai       ports.TitleAdvisor
	costs    ports.CostStore
	reports  ports.ReportStore
	notifier ports.Notifier

	// searchLimiter protege al colaborador de descubrimiento durante el
	// fan-out de research en lote.
	searchLimiter *rate.Limiter
}

// New crea un Service con todas las dependencias inyectadas.
// finder, ai, reports y notifier pueden ser nil: cada uno degrada a no-op.
func New(
	cfg Config,
	calc *domain.Calculator,
	scorer *rubric.Scorer,
	catalog ports.CatalogProvider,
	finder ports.CompetitorFinder,
	ai ports.TitleAdvisor,
	costs ports.CostStore,
	reports ports.ReportStore,
	notifier ports.Notifier,
) *Service {
	perSec := cfg.SearchRatePerSec
	if perSec <= 0 {
		perSec = 2
	}
	if cfg.AIEnabled && ai == nil {
		slog.Warn("ai_enabled set but no title advisor is configured; disabling")
		cfg.AIEnabled = false
	}
	return &Service{
		cfg:           cfg,
		calc:          calc,
		scorer:        scorer,
		catalog:       catalog,
		finder:        finder,
		ai:            ai,
		costs:         costs,
		reports:       reports,
		notifier:      notifier,
		searchLimiter: rate.NewLimiter(rate.Limit(perSec), 1),
	}
}

// competitiveParams traduce la config a los umbrales del domain.
func (s *Service) competitiveParams() domain.CompetitiveParams {
	return domain.CompetitiveParams{
		MeanDeviationPct:      s.cfg.MeanDeviationPct,
		NearestCount:          s.cfg.NearestCompetitors,
		TierBoundaryMargin:    s.cfg.TierBoundaryMargin,
		DefaultCommissionRate: s.cfg.DefaultCommissionRate,
	}
}

// enrichedProducts devuelve el catálogo con coste local y comisión resueltos,
// más el historial de pedidos usado para la resolución.
func (s *Service) enrichedProducts(ctx context.Context) ([]domain.Product, []domain.Order, error) {
	products, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("advisor.enrichedProducts: fetch products: %w", err)
	}

	now := time.Now()
	from := now.AddDate(0, -commissionLookbackMonths, 0)
	orders, err := s.catalog.FetchOrders(ctx, from.UnixMilli(), now.UnixMilli())
	if err != nil {
		return nil, nil, fmt.Errorf("advisor.enrichedProducts: fetch orders: %w", err)
	}

	costs, err := s.costs.AllCosts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("advisor.enrichedProducts: load costs: %w", err)
	}

	idx := buildCommissionIndex(products, orders, s.cfg.DefaultCommissionRate)
	for i := range products {
		if cost, ok := costs[products[i].Barcode]; ok {
			products[i].CostPrice = domain.CostOf(cost)
		}
		rate, source := idx.Resolve(products[i])
		products[i].CommissionRate = rate
		products[i].CommissionSource = source
	}
	return products, orders, nil
}

// findProduct localiza un producto por barcode (o stock code como fallback).
func findProduct(products []domain.Product, key string) (domain.Product, error) {
	for _, p := range products {
		if p.Barcode == key {
			return p, nil
		}
	}
	for _, p := range products {
		if p.StockCode == key {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("advisor.findProduct: product %q not found in catalog", key)
}
