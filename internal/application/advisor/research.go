package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// maxTrendingQueries acota las búsquedas extra por producto: la query de
// categoría más este número de términos sugeridos.
const maxTrendingQueries = 2

// Research genera el informe completo de un producto: scoring de título
// contra el corpus de competidores y análisis competitivo de precios.
func (s *Service) Research(ctx context.Context, barcode string) (domain.ResearchReport, error) {
	products, _, err := s.enrichedProducts(ctx)
	if err != nil {
		return domain.ResearchReport{}, fmt.Errorf("advisor.Research: %w", err)
	}
	subject, err := findProduct(products, barcode)
	if err != nil {
		return domain.ResearchReport{}, fmt.Errorf("advisor.Research: %w", err)
	}
	return s.researchProduct(ctx, subject)
}

// RunResearch ejecuta el research de un producto y lo notifica y persiste.
func (s *Service) RunResearch(ctx context.Context, barcode string) error {
	start := time.Now()

	report, err := s.Research(ctx, barcode)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyResearch(ctx, report); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("research complete",
		"barcode", report.Barcode,
		"score", report.TitleScore.Score,
		"competitors", report.TotalCategoryListings,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// History devuelve los informes de research persistidos en el rango dado,
// más recientes primero.
func (s *Service) History(ctx context.Context, from, to time.Time) ([]domain.ResearchReport, error) {
	if s.reports == nil {
		return nil, fmt.Errorf("advisor.History: no report storage configured")
	}
	reports, err := s.reports.ResearchHistory(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("advisor.History: %w", err)
	}
	return reports, nil
}

// researchProduct hace discover → score → competitive → persist para un
// producto ya enriquecido.
func (s *Service) researchProduct(ctx context.Context, subject domain.Product) (domain.ResearchReport, error) {
	listings := s.searchCompetitors(ctx, subject)

	titles := make([]string, 0, len(listings))
	for _, l := range listings {
		titles = append(titles, l.Title)
	}

	report := domain.ResearchReport{
		ID:                    uuid.NewString(),
		Barcode:               subject.Barcode,
		Title:                 subject.Title,
		Brand:                 subject.Brand,
		CategoryName:          subject.CategoryName,
		SalePrice:             subject.SalePrice,
		TitleScore:            s.scorer.Score(subject.Title, subject.Brand, subject.CategoryName, titles),
		Competitive:           s.calc.AnalyzeCompetitors(subject, listings, s.competitiveParams()),
		TotalCategoryListings: len(listings),
		GeneratedAt:           time.Now(),
	}

	if s.ai != nil && s.cfg.AIEnabled {
		suggestion, err := s.ai.SuggestTitle(ctx, subject.Title, subject.Brand, subject.CategoryName, report.TitleScore)
		if err != nil {
			slog.Warn("title advisor error", "barcode", subject.Barcode, "err", err)
		} else {
			report.AISuggestedTitle = suggestion
		}
	}

	if s.reports != nil {
		if err := s.reports.SaveResearch(ctx, report); err != nil {
			slog.Warn("report storage error", "barcode", subject.Barcode, "err", err)
		}
	}

	return report, nil
}

// searchCompetitors descubre listados competidores: la query de categoría más
// hasta maxTrendingQueries términos sugeridos, deduplicados. Cada llamada al
// colaborador pasa por el rate limiter. Los errores de descubrimiento degradan
// a menos datos, nunca abortan el research.
func (s *Service) searchCompetitors(ctx context.Context, subject domain.Product) []domain.CompetitorListing {
	if s.finder == nil || subject.CategoryName == "" {
		return nil
	}

	queries := []string{subject.CategoryName}
	if err := s.searchLimiter.Wait(ctx); err != nil {
		return nil
	}
	trending, err := s.finder.TrendingTerms(ctx, subject.CategoryName)
	if err != nil {
		slog.Debug("trending terms failed", "category", subject.CategoryName, "err", err)
	}
	for i, term := range trending {
		if i >= maxTrendingQueries {
			break
		}
		queries = append(queries, term)
	}

	type listingKey struct {
		title string
		price float64
	}
	seen := make(map[listingKey]bool)
	var out []domain.CompetitorListing

	for _, query := range queries {
		if err := s.searchLimiter.Wait(ctx); err != nil {
			break
		}
		listings, err := s.finder.SearchListings(ctx, query)
		if err != nil {
			slog.Debug("search failed", "query", query, "err", err)
			continue
		}
		for _, l := range listings {
			key := listingKey{title: l.Title, price: l.SalePrice}
			if seen[key] || l.Title == subject.Title {
				continue
			}
			seen[key] = true
			out = append(out, l)
		}
	}
	return out
}
