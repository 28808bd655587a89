package rubric

const (
	scoreFloor   = 5
	scoreCeiling = 100
)

// Config controla las ventanas y umbrales del rubric. Viene de la config de
// la aplicación; DefaultConfig replica los valores de producción.
type Config struct {
	MinLength           int
	IdealMinLength      int
	IdealMaxLength      int
	TopKeywords         int
	MinUsagePercent     int
	AppendUsagePercent  int
	MaxAppendedKeywords int
}

// DefaultConfig devuelve los umbrales de producción del rubric.
func DefaultConfig() Config {
	return Config{
		MinLength:           25,
		IdealMinLength:      40,
		IdealMaxLength:      150,
		TopKeywords:         20,
		MinUsagePercent:     20,
		AppendUsagePercent:  30,
		MaxAppendedKeywords: 3,
	}
}

// BreakdownRow es una fila auditable del desglose: qué regla, cuánto sumó y
// cuánto podía sumar.
type BreakdownRow struct {
	Label string
	Score int
	Max   int
}

// Result es el resultado completo del scoring de un título.
type Result struct {
	Title           string
	TitleLength     int
	WordCount       int
	UniqueWordCount int

	Score int // clamped a [5,100]
	Label string
	Color string

	Issues    []Issue
	Tips      []string
	Breakdown []BreakdownRow

	PopularKeywords []Keyword
	MissingKeywords []Keyword
	DuplicateWords  []string

	SuggestedTitle string

	CompetitorTitleCount int
}

// Scorer evalúa títulos contra el corpus de una categoría. Sin estado entre
// llamadas: seguro para invocación concurrente.
type Scorer struct {
	cfg   Config
	rules []Rule
}

// NewScorer crea un Scorer con la tabla de reglas por defecto.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg, rules: defaultRules()}
}

// Score evalúa el título candidato contra los títulos competidores de la
// misma categoría y propone un título sustituto determinista.
func (s *Scorer) Score(title, brand, categoryName string, competitorTitles []string) Result {
	tokens := tokenize(title)
	meaningful := meaningfulTokens(tokens)
	duplicates := duplicateTokens(meaningful)

	inTitle := make(map[string]bool, len(meaningful))
	for _, t := range meaningful {
		inTitle[t] = true
	}

	corpus := BuildCorpus(competitorTitles)
	popular := corpus.Popular(s.cfg.TopKeywords, inTitle)
	missing := missingKeywords(popular, s.cfg.MinUsagePercent, 8)

	ctx := &Context{
		Title:        title,
		Brand:        brand,
		CategoryName: categoryName,
		Tokens:       tokens,
		Meaningful:   meaningful,
		Duplicates:   duplicates,
		Popular:      popular,
		Config:       s.cfg,
	}

	result := Result{
		Title:                title,
		TitleLength:          len([]rune(title)),
		WordCount:            len(tokens),
		DuplicateWords:       duplicates,
		PopularKeywords:      popular,
		MissingKeywords:      missing,
		CompetitorTitleCount: corpus.Size(),
	}

	unique := make(map[string]bool, len(meaningful))
	for _, t := range meaningful {
		unique[t] = true
	}
	result.UniqueWordCount = len(unique)

	total := 0
	for _, rule := range s.rules {
		r := rule.Evaluate(ctx)
		total += r.Score
		result.Issues = append(result.Issues, r.Issues...)
		result.Tips = append(result.Tips, r.Tips...)
		result.Breakdown = append(result.Breakdown, BreakdownRow{
			Label: rule.Name,
			Score: r.Score,
			Max:   r.Max,
		})
	}

	if total > scoreCeiling {
		total = scoreCeiling
	}
	if total < scoreFloor {
		total = scoreFloor
	}
	result.Score = total
	result.Label, result.Color = scoreBand(total)

	result.SuggestedTitle = s.Synthesize(title, brand, missing, duplicates)

	return result
}

// scoreBand clasifica el score en bandas fijas. Puramente presentacional.
func scoreBand(score int) (label, color string) {
	switch {
	case score >= 85:
		return "excellent", "#00d68f"
	case score >= 65:
		return "good", "#4dabf7"
	case score >= 45:
		return "average", "#ffa94d"
	case score >= 30:
		return "weak", "#f0932b"
	default:
		return "critical", "#ff6b6b"
	}
}
