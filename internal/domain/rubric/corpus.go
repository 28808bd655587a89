package rubric

import "sort"

// Keyword es un token del corpus de títulos competidores con su frecuencia.
type Keyword struct {
	Word         string
	Count        int
	UsagePercent int // % de títulos competidores que lo usan
	InTitle      bool
}

// Corpus es la tabla de frecuencias de tokens sobre los títulos competidores
// de la categoría.
type Corpus struct {
	titles int
	freq   map[string]int
}

// BuildCorpus construye la tabla de frecuencias: tokens en minúsculas, sin
// stop words ni numéricos puros. Cada título cuenta un token una sola vez
// para que UsagePercent sea una tasa de uso real.
func BuildCorpus(titles []string) Corpus {
	freq := make(map[string]int)
	counted := 0
	for _, title := range titles {
		if title == "" {
			continue
		}
		counted++
		seen := make(map[string]bool)
		for _, t := range meaningfulTokens(tokenize(title)) {
			if seen[t] {
				continue
			}
			seen[t] = true
			freq[t]++
		}
	}
	return Corpus{titles: counted, freq: freq}
}

// Size devuelve cuántos títulos no vacíos alimentaron el corpus.
func (c Corpus) Size() int {
	return c.titles
}

// Popular devuelve los topN tokens más frecuentes, marcando cuáles aparecen
// en el set de tokens del título candidato. Orden determinista: frecuencia
// descendente, después alfabético.
func (c Corpus) Popular(topN int, titleTokens map[string]bool) []Keyword {
	words := make([]string, 0, len(c.freq))
	for w := range c.freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if c.freq[words[i]] != c.freq[words[j]] {
			return c.freq[words[i]] > c.freq[words[j]]
		}
		return words[i] < words[j]
	})
	if topN > 0 && len(words) > topN {
		words = words[:topN]
	}

	out := make([]Keyword, 0, len(words))
	for _, w := range words {
		pct := 0
		if c.titles > 0 {
			pct = int(float64(c.freq[w])/float64(c.titles)*100 + 0.5)
		}
		out = append(out, Keyword{
			Word:         w,
			Count:        c.freq[w],
			UsagePercent: pct,
			InTitle:      titleTokens[w],
		})
	}
	return out
}

// missingKeywords filtra las keywords populares ausentes del título cuya tasa
// de uso supera el mínimo. Entrada directa del synthesizer.
func missingKeywords(popular []Keyword, minUsagePct, limit int) []Keyword {
	var out []Keyword
	for _, k := range popular {
		if k.InTitle || k.UsagePercent < minUsagePct {
			continue
		}
		out = append(out, k)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
