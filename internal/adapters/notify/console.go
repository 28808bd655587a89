package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyCatalog imprime el análisis de rentabilidad del catálogo.
func (c *Console) NotifyCatalog(_ context.Context, batch domain.BatchAnalysis) error {
	s := batch.Summary
	fmt.Fprintf(c.out, "\n[%s] %d products — profitable:%d unprofitable:%d no-cost:%d total profit:%.2f\n",
		time.Now().Format("15:04:05"),
		s.TotalProducts, s.Profitable, s.Unprofitable, s.NoCost, s.TotalProfit)

	if !c.table {
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Barcode", "Title", "Price", "Cost", "Commission", "Shipping", "Profit", "Margin%", "Min", "Recommended")

	for _, a := range batch.Products {
		p := a.Product
		cost := "-"
		minPrice := "-"
		recommended := "-"
		if p.HasCost() && p.Cost() > 0 {
			cost = fmt.Sprintf("%.2f", p.Cost())
			minPrice = fmt.Sprintf("%.2f", a.MinPrice)
			recommended = fmt.Sprintf("%.2f", a.RecommendedPrice)
		}
		table.Append(
			p.Barcode,
			compactName(p.Title, 32),
			fmt.Sprintf("%.2f", p.SalePrice),
			cost,
			fmt.Sprintf("%.2f (%.1f%% %s)", a.Deductions.Commission, p.CommissionRate, p.CommissionSource),
			fmt.Sprintf("%.2f", a.Deductions.Shipping),
			fmt.Sprintf("%.2f", a.Profit.NetProfit),
			fmt.Sprintf("%.1f", a.Profit.ProfitMarginPercent),
			minPrice,
			recommended,
		)
	}
	table.Render()
	return nil
}

// NotifyResearch imprime el informe de research: score de título con su
// desglose, keywords, y el análisis competitivo.
func (c *Console) NotifyResearch(_ context.Context, report domain.ResearchReport) error {
	score := report.TitleScore

	fmt.Fprintf(c.out, "\n=== research %s — %q ===\n", report.Barcode, compactName(report.Title, 60))
	fmt.Fprintf(c.out, "title score: %d/100 (%s) — %d chars, %d words (%d unique), %d competitor titles\n",
		score.Score, score.Label, score.TitleLength, score.WordCount, score.UniqueWordCount, score.CompetitorTitleCount)

	if c.table {
		breakdown := tablewriter.NewWriter(c.out)
		breakdown.Header("Rule", "Score", "Max")
		for _, row := range score.Breakdown {
			breakdown.Append(row.Label, fmt.Sprintf("%d", row.Score), fmt.Sprintf("%d", row.Max))
		}
		breakdown.Render()
	}

	for _, issue := range score.Issues {
		fmt.Fprintf(c.out, "  [%s] %s\n", issue.Severity, issue.Text)
	}
	for _, tip := range score.Tips {
		fmt.Fprintf(c.out, "  tip: %s\n", tip)
	}
	if len(score.MissingKeywords) > 0 {
		var words []string
		for _, k := range score.MissingKeywords {
			words = append(words, fmt.Sprintf("%s (%d%%)", k.Word, k.UsagePercent))
		}
		fmt.Fprintf(c.out, "missing keywords: %s\n", strings.Join(words, ", "))
	}
	if score.SuggestedTitle != "" && score.SuggestedTitle != report.Title {
		fmt.Fprintf(c.out, "suggested title: %s\n", score.SuggestedTitle)
	}
	if report.AISuggestedTitle != "" {
		fmt.Fprintf(c.out, "ai suggestion:   %s\n", report.AISuggestedTitle)
	}

	c.printCompetitive(report)
	return nil
}

// printCompetitive imprime la sección de precios del informe de research.
func (c *Console) printCompetitive(report domain.ResearchReport) {
	comp := report.Competitive

	if comp.BreakEvenPrice > 0 {
		fmt.Fprintf(c.out, "break-even price: %.2f\n", comp.BreakEvenPrice)
	}
	if !comp.HasData {
		fmt.Fprintf(c.out, "%s\n", comp.Message)
		return
	}

	fmt.Fprintf(c.out, "competitors: %d — avg %.2f, median %.2f, min %.2f, max %.2f (stddev %.2f)\n",
		comp.Stats.Count, comp.Stats.Avg, comp.Stats.Median, comp.Stats.Min, comp.Stats.Max, comp.Stats.StdDev)
	fmt.Fprintf(c.out, "your price %.2f is %s (percentile %d, %d cheaper / %d more expensive)\n",
		report.SalePrice, comp.Position.Label, comp.Position.Percentile,
		comp.Position.CheaperCount, comp.Position.ExpensiveCount)
	if comp.Discounts.DiscountedCount > 0 {
		fmt.Fprintf(c.out, "%d competitors discounted (%.0f%%), avg discount %.1f%%\n",
			comp.Discounts.DiscountedCount, comp.Discounts.DiscountedShare*100, comp.Discounts.AvgDiscountPercent)
	}
	if comp.Recommendation != nil {
		fmt.Fprintf(c.out, "recommendation [%s]: %s\n", comp.Recommendation.Type, comp.Recommendation.Text)
	}
	if comp.Tier != nil {
		fmt.Fprintf(c.out, "shipping tier: dropping to %.2f cuts shipping from %.2f to %.2f (saves %.2f)\n",
			comp.Tier.BreakpointPrice, comp.Tier.CurrentShipping, comp.Tier.TargetShipping, comp.Tier.Saving)
	}

	for _, seg := range comp.Segments {
		marker := " "
		if seg.ContainsSubject {
			marker = "*"
		}
		fmt.Fprintf(c.out, " %s %-9s %.2f - %.2f (%d listings)\n", marker, seg.Label, seg.From, seg.To, seg.Count)
	}

	if c.table && len(comp.Nearest) > 0 {
		nearest := tablewriter.NewWriter(c.out)
		nearest.Header("Competitor", "Brand", "Price", "Diff", "Diff%", "Discount")
		for _, r := range comp.Nearest {
			discount := "-"
			if r.HasDiscount {
				discount = fmt.Sprintf("%.0f%%", r.DiscountPercent)
			}
			nearest.Append(
				compactName(r.Listing.Title, 40),
				r.Listing.Brand,
				fmt.Sprintf("%.2f", r.Listing.SalePrice),
				fmt.Sprintf("%+.2f", r.PriceDiff),
				fmt.Sprintf("%+.0f%%", r.PriceDiffPercent),
				discount,
			)
		}
		nearest.Render()
	}
}

// NotifySales imprime el informe de ventas del rango.
func (c *Console) NotifySales(_ context.Context, report domain.SalesReport) error {
	s := report.Summary
	fmt.Fprintf(c.out, "\n=== sales %s - %s ===\n",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02"))
	fmt.Fprintf(c.out, "%d orders, %d items — revenue %.2f, deductions %.2f (shipping %.2f, commission %.2f, platform %.2f), cost %.2f, profit %.2f\n",
		s.TotalOrders, s.TotalItems, s.TotalRevenue, s.TotalDeductions,
		s.TotalShipping, s.TotalCommission, s.TotalPlatformFee, s.TotalCost, s.TotalProfit)

	if !c.table {
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Order", "Product", "Qty", "Price", "Commission", "Shipping", "Profit")
	for _, line := range report.Lines {
		a := line.Analysis
		table.Append(
			line.OrderDate.Format("2006-01-02"),
			line.OrderNumber,
			compactName(line.ProductName, 32),
			fmt.Sprintf("%d", a.Quantity),
			fmt.Sprintf("%.2f", a.SalePrice),
			fmt.Sprintf("%.2f", a.CommissionAmount),
			fmt.Sprintf("%.2f", a.ShippingCost),
			fmt.Sprintf("%.2f", a.NetProfit),
		)
	}
	table.Render()
	return nil
}

// NotifyStrategy imprime la estrategia de precios de un producto.
func (c *Console) NotifyStrategy(_ context.Context, strategy domain.PricingStrategy) error {
	p := strategy.Current.Product
	fmt.Fprintf(c.out, "\n=== pricing strategy %s — %q ===\n", p.Barcode, compactName(p.Title, 60))
	fmt.Fprintf(c.out, "current: price %.2f, cost %.2f, profit %.2f (%.1f%% margin)\n",
		p.SalePrice, p.Cost(), strategy.Current.Profit.NetProfit, strategy.Current.Profit.ProfitMarginPercent)

	if c.table {
		for _, grid := range strategy.TierGrids {
			fmt.Fprintf(c.out, "\nshipping tier %s (%.2f):\n", grid.Range, grid.ShippingCost)
			table := tablewriter.NewWriter(c.out)
			table.Header("Point", "Price", "Shipping", "Profit")
			for _, pt := range grid.PricePoints {
				table.Append(pt.Label,
					fmt.Sprintf("%.2f", pt.Price),
					fmt.Sprintf("%.2f", pt.Shipping),
					fmt.Sprintf("%.2f", pt.Profit))
			}
			table.Render()
		}
	}

	if len(strategy.SweetSpots) > 0 {
		fmt.Fprintf(c.out, "\nsweet spots:\n")
		for _, spot := range strategy.SweetSpots {
			fmt.Fprintf(c.out, "  %.2f → profit %.2f (%s)\n", spot.Price, spot.Profit, spot.Note)
		}
	}

	if coupon := strategy.Coupon; coupon != nil {
		fmt.Fprintf(c.out, "\ncoupon play: show %.2f with a %.2f coupon → buyer pays %.2f, profit %.2f, shipping saved %.2f\n",
			coupon.ShowPrice, coupon.CouponAmount, coupon.FinalPrice, coupon.ProfitAtFinal, coupon.ShippingSaved)
	}

	if len(strategy.Campaigns) > 0 {
		fmt.Fprintf(c.out, "\ncampaign ideas:\n")
		for _, campaign := range strategy.Campaigns {
			fmt.Fprintf(c.out, "  %s (%s) — %s\n", campaign.Title, campaign.Value, campaign.Desc)
		}
	}

	fmt.Fprintln(c.out)
	for _, rec := range strategy.Recommendations {
		fmt.Fprintf(c.out, "%s: %s — %s\n", rec.Title, rec.Value, rec.Desc)
	}
	return nil
}

// compactName trunca un nombre largo para las tablas.
func compactName(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
