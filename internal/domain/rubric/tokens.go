package rubric

import (
	"regexp"
	"strings"
	"unicode"
)

// splitPattern separa un título en tokens por espacios y puntuación ligera.
var splitPattern = regexp.MustCompile(`[\s,\-/+()]+`)

// numericPattern matchea tokens puramente numéricos (se excluyen del análisis léxico).
var numericPattern = regexp.MustCompile(`^[0-9.,]+$`)

// stopWords son las palabras vacías del corpus (turco + inglés residual de
// títulos mixtos). No aportan señal de keyword.
var stopWords = map[string]struct{}{
	"ve": {}, "ile": {}, "için": {}, "bir": {}, "bu": {}, "da": {}, "de": {},
	"den": {}, "dan": {}, "mi": {}, "mu": {}, "mı": {}, "mü": {}, "ki": {},
	"ne": {}, "ya": {}, "hem": {}, "ama": {}, "fakat": {}, "veya": {},
	"her": {}, "tüm": {}, "daha": {}, "en": {}, "çok": {}, "az": {},
	"gibi": {}, "kadar": {}, "adet": {}, "lü": {}, "li": {}, "lu": {},
	"lı": {}, "set": {}, "seti": {}, "x": {}, "olan": {}, "olarak": {},
	"the": {}, "of": {}, "and": {}, "size": {}, "one": {},
}

// lower pasa a minúsculas con reglas turcas (İ→i, I→ı).
func lower(s string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, s)
}

// titleCase pone en mayúscula la primera runa con reglas turcas.
func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.TurkishCase.ToUpper(runes[0])
	return string(runes)
}

// tokenize separa el título en tokens crudos de más de un carácter.
func tokenize(title string) []string {
	var out []string
	for _, w := range splitPattern.Split(title, -1) {
		if len([]rune(w)) > 1 {
			out = append(out, w)
		}
	}
	return out
}

// meaningfulTokens devuelve los tokens en minúsculas sin stop words ni
// tokens puramente numéricos.
func meaningfulTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		lt := lower(t)
		if _, stop := stopWords[lt]; stop {
			continue
		}
		if numericPattern.MatchString(lt) {
			continue
		}
		out = append(out, lt)
	}
	return out
}

// duplicateTokens devuelve los tokens significativos que aparecen más de una
// vez, en orden de primera aparición.
func duplicateTokens(meaningful []string) []string {
	counts := make(map[string]int, len(meaningful))
	for _, t := range meaningful {
		counts[t]++
	}
	var out []string
	seen := make(map[string]bool)
	for _, t := range meaningful {
		if counts[t] > 1 && !seen[t] {
			out = append(out, t)
			seen[t] = true
		}
	}
	return out
}
