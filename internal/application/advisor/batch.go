package advisor

// batch.go — worker pool para análisis paralelo del catálogo.
//
// El análisis por producto es puro CPU, pero el research en lote golpea al
// colaborador de descubrimiento: ahí el pool se combina con el rate limiter.

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// AnalyzeCatalog analiza la rentabilidad de todo el catálogo en paralelo.
// Una entrada malformada produce su análisis con defaults, nunca aborta el lote.
func (s *Service) AnalyzeCatalog(ctx context.Context) (domain.BatchAnalysis, error) {
	products, _, err := s.enrichedProducts(ctx)
	if err != nil {
		return domain.BatchAnalysis{}, fmt.Errorf("advisor.AnalyzeCatalog: %w", err)
	}

	analyses := mapConcurrent(ctx, products, s.cfg.Workers, func(ctx context.Context, p domain.Product) (domain.ProductAnalysis, bool) {
		return s.calc.AnalyzeProduct(p), true
	})

	// Los problemas primero: kâr ascendente.
	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].Profit.NetProfit < analyses[j].Profit.NetProfit
	})

	return domain.BatchAnalysis{
		Products: analyses,
		Summary:  domain.Summarize(analyses),
	}, nil
}

// RunCatalog analiza el catálogo y notifica el resultado.
func (s *Service) RunCatalog(ctx context.Context) error {
	start := time.Now()

	batch, err := s.AnalyzeCatalog(ctx)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyCatalog(ctx, batch); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("catalog analysis complete",
		"products", batch.Summary.TotalProducts,
		"profitable", batch.Summary.Profitable,
		"unprofitable", batch.Summary.Unprofitable,
		"no_cost", batch.Summary.NoCost,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// ResearchAll ejecuta el research de cada producto del catálogo en paralelo.
// El rate limiter compartido serializa el tráfico hacia el colaborador de
// descubrimiento aunque haya muchos workers.
func (s *Service) ResearchAll(ctx context.Context) ([]domain.ResearchReport, error) {
	products, _, err := s.enrichedProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("advisor.ResearchAll: %w", err)
	}

	reports := mapConcurrent(ctx, products, s.cfg.Workers, func(ctx context.Context, p domain.Product) (domain.ResearchReport, bool) {
		report, err := s.researchProduct(ctx, p)
		if err != nil {
			slog.Warn("research failed", "barcode", p.Barcode, "err", err)
			return domain.ResearchReport{}, false
		}
		return report, true
	})

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].TitleScore.Score < reports[j].TitleScore.Score
	})
	return reports, nil
}

// mapConcurrent aplica fn a cada elemento con un worker pool.
// Si workers <= 0 usa runtime.NumCPU() × 2 para saturar los cores disponibles.
func mapConcurrent[In, Out any](ctx context.Context, items []In, workers int, fn func(context.Context, In) (Out, bool)) []Out {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	workCh := make(chan In, len(items))
	resultCh := make(chan Out, len(items))

	// Worker pool: cada worker toma tareas de workCh y envía resultados a resultCh.
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workCh {
				if out, ok := fn(ctx, item); ok {
					resultCh <- out
				}
			}
		}()
	}

	for _, item := range items {
		workCh <- item
	}
	close(workCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]Out, 0, len(items))
	for out := range resultCh {
		results = append(results, out)
	}
	return results
}
