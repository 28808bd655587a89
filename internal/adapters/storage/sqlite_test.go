package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/sellerbot/internal/domain"
	"github.com/alejandrodnm/sellerbot/internal/domain/rubric"
)

func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSetCost_UpsertAndDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetCost(ctx, "8681234567011", 45.50))

	cost, ok, err := store.GetCost(ctx, "8681234567011")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 45.50, cost)

	// Segunda escritura sobre el mismo barcode actualiza en vez de duplicar.
	require.NoError(t, store.SetCost(ctx, "8681234567011", 52))
	cost, ok, err = store.GetCost(ctx, "8681234567011")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 52.0, cost)

	// Un coste <= 0 elimina la entrada.
	require.NoError(t, store.SetCost(ctx, "8681234567011", 0))
	_, ok, err = store.GetCost(ctx, "8681234567011")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetCost_Missing(t *testing.T) {
	store := testStore(t)

	cost, ok, err := store.GetCost(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, cost)
}

func TestAllCosts(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetCost(ctx, "111", 10))
	require.NoError(t, store.SetCost(ctx, "222", 20))

	costs, err := store.AllCosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"111": 10, "222": 20}, costs)
}

func TestResearchRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	report := domain.ResearchReport{
		ID:           "rep-1",
		Barcode:      "8681234567011",
		Title:        "Mutfak Düzenleyici Raf",
		Brand:        "EvimShop",
		CategoryName: "Mutfak Düzenleyici",
		SalePrice:    149.90,
		TitleScore: rubric.Result{
			Score:          72,
			Label:          "good",
			SuggestedTitle: "Mutfak Düzenleyici Raf Metal",
		},
		AISuggestedTitle:      "Metal Mutfak Düzenleyici Raf Tezgah Üstü",
		TotalCategoryListings: 14,
		GeneratedAt:           now,
	}
	report.Competitive.Stats.Avg = 140
	report.Competitive.Stats.Median = 135.50
	report.Competitive.Position.Percentile = 60
	report.Competitive.BreakEvenPrice = 120.45

	require.NoError(t, store.SaveResearch(ctx, report))

	history, err := store.ResearchHistory(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history[0]
	assert.Equal(t, report.ID, got.ID)
	assert.Equal(t, report.Barcode, got.Barcode)
	assert.Equal(t, report.Title, got.Title)
	assert.Equal(t, report.CategoryName, got.CategoryName)
	assert.Equal(t, report.SalePrice, got.SalePrice)
	assert.Equal(t, 72, got.TitleScore.Score)
	assert.Equal(t, "good", got.TitleScore.Label)
	assert.Equal(t, report.Title, got.TitleScore.Title)
	assert.Equal(t, report.AISuggestedTitle, got.AISuggestedTitle)
	assert.Equal(t, 14, got.TotalCategoryListings)
	assert.Equal(t, 135.50, got.Competitive.Stats.Median)
	assert.Equal(t, 60, got.Competitive.Position.Percentile)
	assert.Equal(t, 120.45, got.Competitive.BreakEvenPrice)
}

func TestResearchHistory_RangeAndOrder(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, store.SaveResearch(ctx, domain.ResearchReport{
			ID:          id,
			Barcode:     "111",
			GeneratedAt: base.AddDate(0, 0, i*7),
		}))
	}

	// Solo los dos últimos caen dentro del rango; más recientes primero.
	history, err := store.ResearchHistory(ctx, base.AddDate(0, 0, 3), base.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "new", history[0].ID)
	assert.Equal(t, "mid", history[1].ID)
}
