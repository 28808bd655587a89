package rubric

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var competitorTitles = []string{
	"Siyah Metal Mutfak Düzenleyici Raf Tezgah Üstü",
	"Mutfak Düzenleyici Metal Raf Beyaz",
	"Tezgah Üstü Mutfak Düzenleyici Organizer Siyah",
}

func TestScore_WellFormedTitle(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score(
		"EvimShop Siyah Metal Mutfak Düzenleyici Raf 3 Adet 25 cm Tezgah Üstü Organizer",
		"EvimShop", "Mutfak Düzenleyici", competitorTitles)

	assert.GreaterOrEqual(t, result.Score, 85)
	assert.Equal(t, "excellent", result.Label)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 3, result.CompetitorTitleCount)
}

func TestScore_ClampedToFloor(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	// Corto, con caracteres prohibidos, mayúsculas corridas, puntuación
	// repetida y palabra duplicada: todas las reglas a cero.
	result := scorer.Score("!! AAAAAA AAAAAA 123", "Marka", "Mutfak", competitorTitles)

	assert.Equal(t, 5, result.Score)
	assert.Equal(t, "critical", result.Label)
	assert.NotEmpty(t, result.Issues)
}

func TestScore_ShortTitleHitsMinLengthBand(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	title := "Mutfak Rafı Metal 20c" // 21 caracteres, bajo el mínimo de 25
	result := scorer.Score(title, "", "", nil)

	row := breakdownRow(t, result, "length")
	assert.Equal(t, 0, row.Score)
	assert.Equal(t, 15, row.Max)
}

func TestScore_IdealLengthGetsFullCredit(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	title := strings.Repeat("mutfak rafı ", 7) + "organizer" // ~93 caracteres
	require.GreaterOrEqual(t, len([]rune(title)), 40)
	require.LessOrEqual(t, len([]rune(title)), 150)

	result := scorer.Score(title, "", "", nil)
	row := breakdownRow(t, result, "length")
	assert.Equal(t, 15, row.Score)
}

func TestScore_BreakdownRowsNeverExceedMax(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	titles := []string{
		"",
		"Raf",
		"EvimShop Siyah Metal Mutfak Düzenleyici Raf 3 Adet 25 cm",
		"ahşap ahşap ahşap AHŞAPLIK !!! TY-9932 8681234567011",
	}
	for _, title := range titles {
		result := scorer.Score(title, "EvimShop", "Mutfak", competitorTitles)

		totalMax := 0
		for _, row := range result.Breakdown {
			assert.LessOrEqual(t, row.Score, row.Max, "rule %q on %q", row.Label, title)
			assert.GreaterOrEqual(t, row.Score, 0)
			totalMax += row.Max
		}
		assert.LessOrEqual(t, totalMax, 100)
		assert.GreaterOrEqual(t, result.Score, 5)
		assert.LessOrEqual(t, result.Score, 100)
	}
}

func TestScore_DuplicatesAreAllOrNothing(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score("Mutfak Rafı Mutfak Düzenleyici Metal Tezgah Organizer Beyaz", "", "", nil)

	assert.Equal(t, []string{"mutfak"}, result.DuplicateWords)
	row := breakdownRow(t, result, "duplicates")
	assert.Equal(t, 0, row.Score)
	assert.Equal(t, 10, row.Max)
}

func TestScore_InternalCodeLeak(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score("Makrome Duvar Süsü El Yapımı MKR-3001 Bohem Dekor", "", "", nil)

	row := breakdownRow(t, result, "codes")
	assert.Equal(t, 0, row.Score)
	assert.NotContains(t, result.SuggestedTitle, "MKR-3001")
}

func TestScore_KeywordRuleSilentWithoutCorpus(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score("Mutfak Düzenleyici Raf", "", "", nil)

	row := breakdownRow(t, result, "keywords")
	assert.Equal(t, 0, row.Score)
	assert.Equal(t, 0, row.Max) // sin corpus no premia ni castiga
}

func TestScore_MissingKeywordsFromCorpus(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	result := scorer.Score(
		"EvimShop Siyah Metal Mutfak Düzenleyici Raf 3 Adet 25 cm Tezgah Üstü Organizer",
		"EvimShop", "Mutfak", competitorTitles)

	// "beyaz" se usa en 1/3 de los títulos competidores (33% ≥ 20%) y falta.
	require.Len(t, result.MissingKeywords, 1)
	assert.Equal(t, "beyaz", result.MissingKeywords[0].Word)
	assert.Equal(t, 33, result.MissingKeywords[0].UsagePercent)
}

func TestScoreBand_Labels(t *testing.T) {
	for _, tc := range []struct {
		score int
		label string
	}{
		{100, "excellent"}, {85, "excellent"},
		{84, "good"}, {65, "good"},
		{64, "average"}, {45, "average"},
		{44, "weak"}, {30, "weak"},
		{29, "critical"}, {5, "critical"},
	} {
		label, color := scoreBand(tc.score)
		assert.Equalf(t, tc.label, label, "score %d", tc.score)
		assert.NotEmpty(t, color)
	}
}

func breakdownRow(t *testing.T, result Result, label string) BreakdownRow {
	t.Helper()
	for _, row := range result.Breakdown {
		if row.Label == label {
			return row
		}
	}
	t.Fatalf("breakdown has no row %q", label)
	return BreakdownRow{}
}
