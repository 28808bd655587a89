package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/alejandrodnm/sellerbot/internal/application/advisor"
)

func runResearch(ctx context.Context, service *advisor.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sellerbot research <barcode>")
	}
	return service.RunResearch(ctx, args[0])
}

func runResearchAll(ctx context.Context, service *advisor.Service) error {
	reports, err := service.ResearchAll(ctx)
	if err != nil {
		return err
	}

	// Resumen por producto; el detalle de cada informe queda en el histórico.
	for _, report := range reports {
		slog.Info("researched",
			"barcode", report.Barcode,
			"score", report.TitleScore.Score,
			"label", report.TitleScore.Label,
			"competitors", report.TotalCategoryListings,
		)
	}
	slog.Info("research-all complete", "products", len(reports))
	return nil
}

const defaultHistoryDays = 30

// runHistory imprime el histórico de research persistido: solo las columnas
// de resumen, el informe completo se regenera con `research`.
func runHistory(ctx context.Context, service *advisor.Service, args []string) error {
	days := defaultHistoryDays
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed <= 0 {
			return fmt.Errorf("usage: sellerbot history <days> (got %q)", args[0])
		}
		days = parsed
	}

	to := time.Now()
	reports, err := service.History(ctx, to.AddDate(0, 0, -days), to)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Printf("no research reports stored in the last %d days\n", days)
		return nil
	}

	for _, report := range reports {
		fmt.Printf("%s  %s  score %d/100 (%s)  %d competitors  avg %.2f  median %.2f  percentile %d\n",
			report.GeneratedAt.Format("2006-01-02 15:04"),
			report.Barcode,
			report.TitleScore.Score, report.TitleScore.Label,
			report.TotalCategoryListings,
			report.Competitive.Stats.Avg, report.Competitive.Stats.Median,
			report.Competitive.Position.Percentile,
		)
	}
	return nil
}

func runStrategy(ctx context.Context, service *advisor.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sellerbot strategy <barcode>")
	}
	return service.RunStrategy(ctx, args[0])
}

func runTariff(ctx context.Context, service *advisor.Service, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: sellerbot tariff <barcode>")
	}

	analysis, err := service.Tariff(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("current: %.1f%% commission, %.2f profit\n", analysis.CurrentRate, analysis.CurrentProfit)
	if !analysis.HasOpportunity {
		fmt.Println("no lower commission tariff observed in your order history beats the current one")
		return nil
	}
	for _, s := range analysis.Scenarios {
		fmt.Printf("at %.1f%% (seen in %d sales / %d products): profit %.2f at the same price (%+.2f)\n",
			s.Rate, s.SalesCount, s.ProductCount, s.ProfitAtSamePrice, s.ProfitGainSamePrice)
		if s.Best != nil {
			fmt.Printf("  best price drop: -%.0f%% → %.2f, profit %.2f (%+.2f vs current)\n",
				s.Best.DropPercent, s.Best.NewPrice, s.Best.NewProfit, s.Best.ProfitDiff)
		}
	}
	return nil
}
