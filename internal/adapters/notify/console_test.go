package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

func TestNotifyCatalog_SummaryLine(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf, false)

	batch := domain.BatchAnalysis{
		Summary: domain.BatchSummary{
			TotalProducts: 5,
			Profitable:    3,
			Unprofitable:  1,
			NoCost:        1,
			TotalProfit:   123.45,
		},
	}
	require.NoError(t, console.NotifyCatalog(context.Background(), batch))

	out := buf.String()
	assert.Contains(t, out, "5 products")
	assert.Contains(t, out, "profitable:3")
	assert.Contains(t, out, "no-cost:1")
	assert.Contains(t, out, "total profit:123.45")
	// Sin modo tabla no hay filas por producto.
	assert.NotContains(t, out, "Barcode")
}

func TestNotifyCatalog_TableRows(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf, true)

	product := domain.Product{
		Barcode:          "8681234567011",
		Title:            "Mutfak Düzenleyici Raf",
		SalePrice:        149.90,
		CostPrice:        domain.CostOf(45),
		CommissionRate:   21.5,
		CommissionSource: "order",
	}
	batch := domain.BatchAnalysis{
		Products: []domain.ProductAnalysis{{
			Product:          product,
			MinPrice:         132.10,
			RecommendedPrice: 171.53,
		}},
		Summary: domain.BatchSummary{TotalProducts: 1, WithCost: 1, Profitable: 1},
	}
	require.NoError(t, console.NotifyCatalog(context.Background(), batch))

	out := buf.String()
	assert.Contains(t, out, "8681234567011")
	assert.Contains(t, out, "21.5% order")
	assert.Contains(t, out, "132.10")
	assert.Contains(t, out, "171.53")
}

func TestNotifyCatalog_NoCostShowsDash(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf, true)

	batch := domain.BatchAnalysis{
		Products: []domain.ProductAnalysis{{
			Product: domain.Product{Barcode: "111", Title: "Raf", SalePrice: 80, CommissionSource: "default"},
		}},
	}
	require.NoError(t, console.NotifyCatalog(context.Background(), batch))

	// Coste, mínimo y recomendado quedan en "-" cuando no hay coste.
	assert.GreaterOrEqual(t, strings.Count(buf.String(), "-"), 3)
}

func TestNotifyResearch_ScoreAndCompetitive(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf, false)

	report := domain.ResearchReport{
		Barcode:   "111",
		Title:     "Mutfak Düzenleyici Raf",
		SalePrice: 150,
	}
	report.TitleScore.Score = 72
	report.TitleScore.Label = "good"
	require.NoError(t, console.NotifyResearch(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "research 111")
	assert.Contains(t, out, "title score: 72/100 (good)")
}

func TestNotifyResearch_NoDataMessage(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf, false)

	report := domain.ResearchReport{Barcode: "111", Title: "Raf"}
	report.Competitive.HasData = false
	report.Competitive.Message = "no competitor listings found"
	report.Competitive.BreakEvenPrice = 120.45

	require.NoError(t, console.NotifyResearch(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "break-even price: 120.45")
	assert.Contains(t, out, "no competitor listings found")
}

func TestNotifySales_Summary(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf, false)

	report := domain.SalesReport{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Summary: domain.SalesSummary{
			TotalOrders:  2,
			TotalItems:   3,
			TotalRevenue: 300,
			TotalProfit:  -6.90,
		},
	}
	require.NoError(t, console.NotifySales(context.Background(), report))

	out := buf.String()
	assert.Contains(t, out, "sales 2026-08-01 - 2026-08-31")
	assert.Contains(t, out, "2 orders, 3 items")
	assert.Contains(t, out, "profit -6.90")
}

func TestNotifyStrategy_SpotsAndCoupon(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsoleWriter(&buf, false)

	strategy := domain.PricingStrategy{
		Current: domain.ProductAnalysis{
			Product: domain.Product{Barcode: "111", Title: "Raf", SalePrice: 160, CostPrice: domain.CostOf(30)},
		},
		SweetSpots: []domain.SweetSpot{
			{Price: 149.99, Profit: 27.39, Note: "last price before shipping jumps"},
		},
		Coupon: &domain.CouponStrategy{
			ShowPrice:     184,
			CouponAmount:  35,
			FinalPrice:    149.99,
			ProfitAtFinal: 17.69,
			ShippingSaved: 37,
		},
		Campaigns: []domain.StrategyRecommendation{
			{Title: "2 Al 1 Öde", Value: "19.40 per pair", Desc: "high margin"},
		},
		Recommendations: []domain.StrategyRecommendation{
			{Title: "minimum price", Value: "132.10", Desc: "break-even floor"},
		},
	}
	require.NoError(t, console.NotifyStrategy(context.Background(), strategy))

	out := buf.String()
	assert.Contains(t, out, "pricing strategy 111")
	assert.Contains(t, out, "149.99 → profit 27.39")
	assert.Contains(t, out, "show 184.00 with a 35.00 coupon")
	assert.Contains(t, out, "2 Al 1 Öde (19.40 per pair)")
	assert.Contains(t, out, "minimum price: 132.10")
}

func TestCompactName(t *testing.T) {
	assert.Equal(t, "kısa", compactName("kısa", 10))
	got := compactName("çok uzun bir ürün başlığı", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}
