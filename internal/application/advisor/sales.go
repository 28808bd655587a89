package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// Sales construye el informe de rentabilidad de las ventas del rango dado.
// Las líneas usan la comisión real aplicada en cada venta; el coste sale del
// cost store local (0 si es desconocido, y la línea solo suma deducciones).
func (s *Service) Sales(ctx context.Context, from, to time.Time) (domain.SalesReport, error) {
	orders, err := s.catalog.FetchOrders(ctx, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("advisor.Sales: fetch orders: %w", err)
	}
	costs, err := s.costs.AllCosts(ctx)
	if err != nil {
		return domain.SalesReport{}, fmt.Errorf("advisor.Sales: load costs: %w", err)
	}

	report := domain.SalesReport{From: from, To: to}
	seenOrders := make(map[string]bool, len(orders))

	for _, order := range orders {
		for _, line := range order.Lines {
			if line.Status == "Cancelled" {
				continue
			}
			cost := costs[line.Barcode]
			analysis := s.calc.AnalyzeOrderLine(line, cost)

			report.Lines = append(report.Lines, domain.SalesLine{
				OrderNumber: order.OrderNumber,
				OrderDate:   time.UnixMilli(order.OrderDate),
				Status:      line.Status,
				Barcode:     line.Barcode,
				ProductName: line.ProductName,
				Analysis:    analysis,
			})

			if !seenOrders[order.OrderNumber] {
				seenOrders[order.OrderNumber] = true
				report.Summary.TotalOrders++
			}
			q := float64(analysis.Quantity)
			report.Summary.TotalItems += analysis.Quantity
			report.Summary.TotalRevenue += analysis.SalePrice * q
			report.Summary.TotalShipping += analysis.ShippingCost
			report.Summary.TotalCommission += analysis.CommissionAmount
			report.Summary.TotalPlatformFee += analysis.PlatformFee
			report.Summary.TotalCost += cost * q
			report.Summary.TotalProfit += analysis.NetProfit
			report.Summary.TotalDeductions += analysis.TotalDeductions
		}
	}

	// Más recientes primero.
	sort.SliceStable(report.Lines, func(i, j int) bool {
		return report.Lines[i].OrderDate.After(report.Lines[j].OrderDate)
	})

	return report, nil
}

// RunSales genera el informe de ventas y lo notifica.
func (s *Service) RunSales(ctx context.Context, from, to time.Time) error {
	start := time.Now()

	report, err := s.Sales(ctx, from, to)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySales(ctx, report); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}

	slog.Info("sales report complete",
		"orders", report.Summary.TotalOrders,
		"items", report.Summary.TotalItems,
		"profit", fmt.Sprintf("%.2f", report.Summary.TotalProfit),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
