package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// Strategy genera la estrategia de precios de un producto. Requiere coste
// registrado: sin él no hay kâr que optimizar.
func (s *Service) Strategy(ctx context.Context, barcode string) (*domain.PricingStrategy, error) {
	products, _, err := s.enrichedProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("advisor.Strategy: %w", err)
	}
	subject, err := findProduct(products, barcode)
	if err != nil {
		return nil, fmt.Errorf("advisor.Strategy: %w", err)
	}

	strategy := s.calc.GenerateStrategy(subject)
	if strategy == nil {
		return nil, fmt.Errorf("advisor.Strategy: product %q has no registered cost; set one with the cost command", barcode)
	}
	return strategy, nil
}

// RunStrategy genera la estrategia de un producto y la notifica.
func (s *Service) RunStrategy(ctx context.Context, barcode string) error {
	start := time.Now()

	strategy, err := s.Strategy(ctx, barcode)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyStrategy(ctx, *strategy); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("strategy complete",
		"barcode", barcode,
		"sweet_spots", len(strategy.SweetSpots),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
