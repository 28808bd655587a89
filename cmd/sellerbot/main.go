package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/sellerbot/config"
	"github.com/alejandrodnm/sellerbot/internal/adapters/catalog"
	"github.com/alejandrodnm/sellerbot/internal/adapters/discovery"
	"github.com/alejandrodnm/sellerbot/internal/adapters/notify"
	"github.com/alejandrodnm/sellerbot/internal/adapters/storage"
	"github.com/alejandrodnm/sellerbot/internal/application/advisor"
	"github.com/alejandrodnm/sellerbot/internal/domain"
	"github.com/alejandrodnm/sellerbot/internal/domain/rubric"
)

const usage = `usage: sellerbot [flags] <command> [args]

commands:
  analyze                 profitability analysis of the whole catalog
  research <barcode>      title score + competitive analysis for one product
  research-all            research every product in the catalog
  history <days>          stored research summaries for the last N days
  strategy <barcode>      pricing strategy report (requires a registered cost)
  tariff <barcode>        commission tariff comparison (requires a registered cost)
  sales <days>            sales profitability report for the last N days
  cost <barcode> [value]  show or set the cost of a product (value 0 deletes)
`

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full tables (default: compact summaries)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	store, err := storage.NewSQLiteStore(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	calc := domain.NewCalculator(newFeeSchedule(cfg.Fees), newMarginTable(cfg.Margins))
	scorer := rubric.NewScorer(rubric.Config{
		MinLength:           cfg.Rubric.MinLength,
		IdealMinLength:      cfg.Rubric.IdealMinLength,
		IdealMaxLength:      cfg.Rubric.IdealMaxLength,
		TopKeywords:         cfg.Rubric.TopKeywords,
		MinUsagePercent:     cfg.Rubric.MinUsagePercent,
		AppendUsagePercent:  cfg.Rubric.AppendUsagePercent,
		MaxAppendedKeywords: cfg.Rubric.MaxAppendedKeywords,
	})

	service := advisor.New(
		advisor.Config{
			DefaultCommissionRate: cfg.Advisor.DefaultCommissionRate,
			MeanDeviationPct:      cfg.Advisor.MeanDeviationPct,
			NearestCompetitors:    cfg.Advisor.NearestCompetitors,
			TierBoundaryMargin:    cfg.Advisor.TierBoundaryMargin,
			Workers:               cfg.Advisor.Workers,
			SearchRatePerSec:      cfg.Advisor.SearchRatePerSec,
			AIEnabled:             cfg.Advisor.AIEnabled,
		},
		calc,
		scorer,
		catalog.NewFileCatalog(cfg.Catalog.ProductsPath, cfg.Catalog.OrdersPath),
		discovery.NewFileDiscovery(cfg.Catalog.ListingsPath),
		nil, // colaborador generativo: sin implementación local
		store,
		store,
		notify.NewConsoleWriter(os.Stdout, *table),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := dispatch(ctx, service, store, flag.Args()); err != nil {
		slog.Error("command failed", "command", flag.Arg(0), "err", err)
		os.Exit(1)
	}
}

// dispatch enruta el subcomando a su run function.
func dispatch(ctx context.Context, service *advisor.Service, store *storage.SQLiteStore, args []string) error {
	switch args[0] {
	case "analyze":
		return service.RunCatalog(ctx)
	case "research":
		return runResearch(ctx, service, args[1:])
	case "research-all":
		return runResearchAll(ctx, service)
	case "history":
		return runHistory(ctx, service, args[1:])
	case "strategy":
		return runStrategy(ctx, service, args[1:])
	case "tariff":
		return runTariff(ctx, service, args[1:])
	case "sales":
		return runSales(ctx, service, args[1:])
	case "cost":
		return runCost(ctx, store, args[1:])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// newFeeSchedule traduce la config a la tarifa del domain.
func newFeeSchedule(cfg config.FeesConfig) domain.FeeSchedule {
	tiers := make([]domain.ShippingTier, 0, len(cfg.ShippingTiers))
	for _, t := range cfg.ShippingTiers {
		tiers = append(tiers, domain.ShippingTier{MinPrice: t.Min, MaxPrice: t.Max, Cost: t.Cost})
	}
	return domain.NewFeeSchedule(tiers, cfg.PlatformFee)
}

// newMarginTable traduce la config a la tabla de márgenes del domain.
func newMarginTable(cfg config.MarginsConfig) domain.MarginTable {
	bands := make([]domain.MarginBand, 0, len(cfg.Bands))
	for _, b := range cfg.Bands {
		bands = append(bands, domain.MarginBand{MaxCost: b.MaxCost, Margin: b.Margin})
	}
	return domain.NewMarginTable(bands, cfg.Default, cfg.Neutral)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
